// vcube - a virtual twisty puzzle for the terminal.
package main

import (
	"github.com/SeamusWaldron/virtualcube/internal/cli"
)

func main() {
	cli.Execute()
}
