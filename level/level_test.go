package level

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/liquid-sort/core"
)

func TestParse(t *testing.T) {
	lvl, err := Parse([]byte(`
name: two tone
containers:
  - [Red, blue]
  - [blue, red]
  - []
`), 2)
	require.NoError(t, err)

	assert.Equal(t, "two tone", lvl.Name)
	assert.Equal(t, 2, lvl.Capacity, "missing capacity takes the default")
	want := [][]core.Color{
		{core.ColorRed, core.ColorBlue},
		{core.ColorBlue, core.ColorRed},
		{},
	}
	if diff := cmp.Diff(want, lvl.Initial(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("containers mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "name: x\nbottles: []\n"},
		{"unknown color", "capacity: 1\ncontainers: [[red], [mauve]]\n"},
		{"none is not a color", "capacity: 1\ncontainers: [[red], [none]]\n"},
		{"one container", "capacity: 1\ncontainers: [[red]]\n"},
		{"too many containers", "capacity: 1\ncontainers: [[red],[],[],[],[],[],[],[],[],[],[]]\n"},
		{"overfull", "capacity: 2\ncontainers: [[red, red, red], [red]]\n"},
		{"partial color", "capacity: 2\ncontainers: [[red, blue], [blue]]\n"},
		{"no colors", "capacity: 2\ncontainers: [[], []]\n"},
		{"negative capacity", "capacity: -1\ncontainers: [[red], []]\n"},
		{"not yaml", "containers: [[red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), 4)
			assert.ErrorIs(t, err, ErrInvalidLevel)
		})
	}
}

func TestLoadFileNamesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("containers: [[red, red], [], [red, red]]\n"), 0o644))

	lvl, err := LoadFile(path, 4)
	require.NoError(t, err)
	assert.Equal(t, "sunset", lvl.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), 4)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuiltinLevels(t *testing.T) {
	names := BuiltinNames()
	require.Contains(t, names, DefaultName)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, lvl.Name)
			assert.NoError(t, lvl.Validate())
		})
	}

	_, err := Builtin("nope")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestMarshalParses(t *testing.T) {
	lvl, err := Builtin(DefaultName)
	require.NoError(t, err)

	data, err := lvl.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "yellow")

	again, err := Parse(data, 0)
	require.NoError(t, err)
	assert.Equal(t, lvl.Name, again.Name)
	assert.Equal(t, lvl.Capacity, again.Capacity)
	assert.Equal(t, len(lvl.Containers), len(again.Containers))
}

func TestInitialIsACopy(t *testing.T) {
	lvl, err := Builtin("tutorial")
	require.NoError(t, err)

	init := lvl.Initial()
	init[0][0] = core.ColorNavy
	assert.Equal(t, core.ColorRed, lvl.Containers[0][0])
}
