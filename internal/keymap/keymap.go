// Package keymap maps key names to session commands. Key names follow
// bubbletea's KeyMsg.String() form: "f", "F", "!", "right", "ctrl+c".
package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/virtualcube"
)

// Keymap holds one binding table per mode.
type Keymap struct {
	tables map[virtualcube.Mode]map[string]virtualcube.Command
}

// shifted is the character a US keyboard types for shift+digit.
var shifted = map[string]string{
	"1": "!", "2": "@", "3": "#", "4": "$", "5": "%", "6": "^",
}

// Default returns the built-in bindings: f b l r u d and 1-6 turn
// F B L R U D clockwise, with shift reversing; 0 resets; s solves;
// right or n steps a sequence; h toggles help; q or ctrl+c quits.
func Default() *Keymap {
	free := map[string]virtualcube.Command{}
	order := []virtualcube.Face{
		virtualcube.Front, virtualcube.Back, virtualcube.Left,
		virtualcube.Right, virtualcube.Up, virtualcube.Down,
	}
	for i, face := range order {
		lower := strings.ToLower(face.Letter())
		digit := fmt.Sprint(i + 1)
		free[lower] = virtualcube.Turn(face, false)
		free[face.Letter()] = virtualcube.Turn(face, true)
		free[digit] = virtualcube.Turn(face, false)
		free[shifted[digit]] = virtualcube.Turn(face, true)
	}
	free["s"] = virtualcube.Command{Kind: virtualcube.CmdSolve}

	solving := map[string]virtualcube.Command{
		"right": {Kind: virtualcube.CmdNext},
		"n":     {Kind: virtualcube.CmdNext},
	}

	for _, t := range []map[string]virtualcube.Command{free, solving} {
		t["0"] = virtualcube.Command{Kind: virtualcube.CmdReset}
		t["h"] = virtualcube.Command{Kind: virtualcube.CmdToggleHelp}
		t["q"] = virtualcube.Command{Kind: virtualcube.CmdQuit}
		t["ctrl+c"] = virtualcube.Command{Kind: virtualcube.CmdQuit}
	}

	return &Keymap{tables: map[virtualcube.Mode]map[string]virtualcube.Command{
		virtualcube.ModeFree:    free,
		virtualcube.ModeSolving: solving,
	}}
}

// Lookup returns the command bound to key in mode.
func (k *Keymap) Lookup(mode virtualcube.Mode, key string) (virtualcube.Command, bool) {
	cmd, ok := k.tables[mode][key]
	return cmd, ok
}

// Bind binds key to cmd in mode. The mode must accept the command.
func (k *Keymap) Bind(mode virtualcube.Mode, key string, cmd virtualcube.Command) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if !mode.Accepts(cmd.Kind) {
		return fmt.Errorf("%s mode does not accept %q", mode, cmd)
	}
	t, ok := k.tables[mode]
	if !ok {
		return fmt.Errorf("unknown mode %v", mode)
	}
	t[key] = cmd
	return nil
}

// Unbind removes key from mode.
func (k *Keymap) Unbind(mode virtualcube.Mode, key string) {
	delete(k.tables[mode], key)
}

// Binding is one key and its command.
type Binding struct {
	Key     string
	Command virtualcube.Command
}

// Bindings returns the table for mode sorted by command, then key.
func (k *Keymap) Bindings(mode virtualcube.Mode) []Binding {
	out := make([]Binding, 0, len(k.tables[mode]))
	for key, cmd := range k.tables[mode] {
		out = append(out, Binding{Key: key, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Command.String(), out[j].Command.String()
		if a != b {
			return a < b
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Describe lists the bindings of mode, one command per line with every key
// bound to it.
func (k *Keymap) Describe(mode virtualcube.Mode) string {
	var sb strings.Builder
	bindings := k.Bindings(mode)
	for i := 0; i < len(bindings); {
		cmd := bindings[i].Command.String()
		var keys []string
		for ; i < len(bindings) && bindings[i].Command.String() == cmd; i++ {
			keys = append(keys, bindings[i].Key)
		}
		fmt.Fprintf(&sb, "%-10s %s\n", cmd, strings.Join(keys, " "))
	}
	return sb.String()
}

// file is the YAML layout of a keymap file:
//
//	replace: false   # true drops the defaults first
//	free:
//	  x: turn R'
//	  "1": none      # unbinds
//	solving:
//	  space: next
type file struct {
	Replace bool              `yaml:"replace"`
	Free    map[string]string `yaml:"free"`
	Solving map[string]string `yaml:"solving"`
}

// Load reads a keymap file and applies it over the defaults.
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a keymap YAML document and applies it over the defaults.
// Unknown fields and commands a mode cannot take are errors.
func Parse(data []byte) (*Keymap, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse keymap YAML: %w", err)
	}

	k := Default()
	if f.Replace {
		for mode := range k.tables {
			k.tables[mode] = map[string]virtualcube.Command{}
		}
	}

	for mode, entries := range map[virtualcube.Mode]map[string]string{
		virtualcube.ModeFree:    f.Free,
		virtualcube.ModeSolving: f.Solving,
	} {
		for key, value := range entries {
			value = strings.TrimSpace(value)
			if value == "" || value == "none" {
				k.Unbind(mode, key)
				continue
			}
			cmd, err := virtualcube.ParseCommand(value)
			if err != nil {
				return nil, fmt.Errorf("%s key %q: %w", mode, key, err)
			}
			if err := k.Bind(mode, key, cmd); err != nil {
				return nil, fmt.Errorf("%s key %q: %w", mode, key, err)
			}
		}
	}
	return k, nil
}
