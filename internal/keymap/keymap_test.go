package keymap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/virtualcube"
)

func TestDefaultBindings(t *testing.T) {
	k := Default()

	tests := []struct {
		mode virtualcube.Mode
		key  string
		want virtualcube.Command
	}{
		{virtualcube.ModeFree, "f", virtualcube.Turn(virtualcube.Front, false)},
		{virtualcube.ModeFree, "F", virtualcube.Turn(virtualcube.Front, true)},
		{virtualcube.ModeFree, "3", virtualcube.Turn(virtualcube.Left, false)},
		{virtualcube.ModeFree, "#", virtualcube.Turn(virtualcube.Left, true)},
		{virtualcube.ModeFree, "6", virtualcube.Turn(virtualcube.Down, false)},
		{virtualcube.ModeFree, "0", virtualcube.Command{Kind: virtualcube.CmdReset}},
		{virtualcube.ModeFree, "s", virtualcube.Command{Kind: virtualcube.CmdSolve}},
		{virtualcube.ModeSolving, "right", virtualcube.Command{Kind: virtualcube.CmdNext}},
		{virtualcube.ModeSolving, "h", virtualcube.Command{Kind: virtualcube.CmdToggleHelp}},
		{virtualcube.ModeSolving, "ctrl+c", virtualcube.Command{Kind: virtualcube.CmdQuit}},
	}

	for _, tt := range tests {
		got, ok := k.Lookup(tt.mode, tt.key)
		require.True(t, ok, "%s %q", tt.mode, tt.key)
		assert.Equal(t, tt.want, got, "%s %q", tt.mode, tt.key)
	}
}

func TestSolvingTableRejectsTurns(t *testing.T) {
	k := Default()
	for _, key := range []string{"f", "r", "1", "s"} {
		_, ok := k.Lookup(virtualcube.ModeSolving, key)
		assert.False(t, ok, key)
	}
	_, ok := k.Lookup(virtualcube.ModeFree, "right")
	assert.False(t, ok)
}

func TestEveryDefaultBindingIsAccepted(t *testing.T) {
	k := Default()
	for _, mode := range []virtualcube.Mode{virtualcube.ModeFree, virtualcube.ModeSolving} {
		for _, b := range k.Bindings(mode) {
			assert.True(t, mode.Accepts(b.Command.Kind), "%s %q -> %s", mode, b.Key, b.Command)
		}
	}
}

func TestDescribe(t *testing.T) {
	g := goldie.New(t)
	k := Default()
	g.Assert(t, "free", []byte(k.Describe(virtualcube.ModeFree)))
	g.Assert(t, "solving", []byte(k.Describe(virtualcube.ModeSolving)))
}

func TestParseOverlay(t *testing.T) {
	k, err := Parse([]byte(`
free:
  x: turn R'
  "1": none
solving:
  space: next
`))
	require.NoError(t, err)

	cmd, ok := k.Lookup(virtualcube.ModeFree, "x")
	require.True(t, ok)
	assert.Equal(t, virtualcube.Turn(virtualcube.Right, true), cmd)

	_, ok = k.Lookup(virtualcube.ModeFree, "1")
	assert.False(t, ok)

	_, ok = k.Lookup(virtualcube.ModeFree, "f")
	assert.True(t, ok, "defaults survive an overlay")

	cmd, ok = k.Lookup(virtualcube.ModeSolving, "space")
	require.True(t, ok)
	assert.Equal(t, virtualcube.CmdNext, cmd.Kind)
}

func TestParseReplace(t *testing.T) {
	k, err := Parse([]byte(`
replace: true
free:
  a: turn U
`))
	require.NoError(t, err)

	assert.Len(t, k.Bindings(virtualcube.ModeFree), 1)
	assert.Empty(t, k.Bindings(virtualcube.ModeSolving))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "fre:\n  a: turn U\n"},
		{"bad command", "free:\n  a: spin\n"},
		{"bad move", "free:\n  a: turn X\n"},
		{"double turn", "free:\n  a: turn U2\n"},
		{"turn while solving", "solving:\n  a: turn U\n"},
		{"solve while solving", "solving:\n  a: solve\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("free:\n  z: reset\n"), 0o644))

	k, err := Load(path)
	require.NoError(t, err)
	cmd, ok := k.Lookup(virtualcube.ModeFree, "z")
	require.True(t, ok)
	assert.Equal(t, virtualcube.CmdReset, cmd.Kind)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	k, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Describe(virtualcube.ModeFree), k.Describe(virtualcube.ModeFree))
}
