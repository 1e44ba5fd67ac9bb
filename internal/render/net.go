package render

import "github.com/SeamusWaldron/virtualcube"

// Net layout: U above L F R B, D below. Each facelet is two cells wide.
const (
	NetWidth  = 12 * 2
	NetHeight = 9
)

var netOrigins = map[virtualcube.Face][2]int{
	virtualcube.Up:    {3, 0},
	virtualcube.Left:  {0, 3},
	virtualcube.Front: {3, 3},
	virtualcube.Right: {6, 3},
	virtualcube.Back:  {9, 3},
	virtualcube.Down:  {3, 6},
}

// Net draws the unfolded state. Each facelet is its color letter followed
// by a space, both on the sticker's color.
func Net(s *virtualcube.State) *Canvas {
	c := NewCanvas(NetWidth, NetHeight)
	for _, f := range virtualcube.Faces() {
		o := netOrigins[f]
		for i := 0; i < 9; i++ {
			col, row := o[0]+i%3, o[1]+i/3
			color := s.Facelet(f, i)
			c.Set(col*2, row, []rune(color.String())[0], Palette[color])
			c.Set(col*2+1, row, ' ', Palette[color])
		}
	}
	return c
}
