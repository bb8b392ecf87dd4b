package container

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/liquid-sort/core"
)

const (
	R = core.ColorRed
	B = core.ColorBlue
	G = core.ColorGreen
)

func TestNewClampsInitialColors(t *testing.T) {
	c := New(0, 4, []core.Color{R, R, B, B, G})
	assert.Equal(t, 4, c.Len())
	assert.True(t, c.IsFull())
	assert.Equal(t, B, c.TopColor())
}

func TestNewPanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { New(0, 0, nil) })
}

func TestDerivedQueries(t *testing.T) {
	tests := []struct {
		name    string
		layers  []core.Color
		top     core.Color
		run     int
		empty   bool
		full    bool
		fill    float64
		receive map[core.Color]bool
	}{
		{
			name:    "empty",
			layers:  nil,
			top:     core.ColorNone,
			run:     0,
			empty:   true,
			fill:    0,
			receive: map[core.Color]bool{R: true, B: true},
		},
		{
			name:    "mixed",
			layers:  []core.Color{R, R, B},
			top:     B,
			run:     1,
			fill:    0.75,
			receive: map[core.Color]bool{R: false, B: true},
		},
		{
			name:    "run of three",
			layers:  []core.Color{G, R, R, R},
			top:     R,
			run:     3,
			full:    true,
			fill:    1,
			receive: map[core.Color]bool{R: false, G: false},
		},
		{
			name:    "monochrome full",
			layers:  []core.Color{B, B, B, B},
			top:     B,
			run:     4,
			full:    true,
			fill:    1,
			receive: map[core.Color]bool{B: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, 4, tt.layers)
			assert.Equal(t, tt.top, c.TopColor())
			assert.Equal(t, tt.run, c.TopRunLength())
			assert.Equal(t, tt.empty, c.IsEmpty())
			assert.Equal(t, tt.full, c.IsFull())
			assert.InDelta(t, tt.fill, c.Fill(), 1e-9)
			for color, want := range tt.receive {
				assert.Equal(t, want, c.CanReceive(color), "CanReceive(%s)", color)
			}
		})
	}
}

func TestTakeTopRun(t *testing.T) {
	tests := []struct {
		name      string
		layers    []core.Color
		maxCount  int
		wantTaken []core.Color
		wantLeft  []core.Color
	}{
		{"whole run", []core.Color{R, B, B}, 4, []core.Color{B, B}, []core.Color{R}},
		{"limited by max", []core.Color{R, B, B, B}, 2, []core.Color{B, B}, []core.Color{R, B}},
		{"zero max", []core.Color{R}, 0, nil, []core.Color{R}},
		{"negative max", []core.Color{R}, -1, nil, []core.Color{R}},
		{"empty", nil, 3, nil, []core.Color{}},
		{"all", []core.Color{G, G}, 2, []core.Color{G, G}, []core.Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0, 4, tt.layers)
			runBefore := c.TopRunLength()

			taken := c.TakeTopRun(tt.maxCount)

			if diff := cmp.Diff(tt.wantTaken, taken); diff != "" {
				t.Errorf("taken mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantLeft, c.Layers()); diff != "" {
				t.Errorf("remaining mismatch (-want +got):\n%s", diff)
			}

			assert.LessOrEqual(t, len(taken), runBefore)
			for _, color := range taken {
				assert.Equal(t, taken[0], color, "removed run must be monochrome")
			}
		})
	}
}

func TestAddLayersOrientation(t *testing.T) {
	c := New(0, 4, []core.Color{R})
	require.NoError(t, c.AddLayers([]core.Color{B, G}, true))
	assert.Equal(t, []core.Color{R, B, G}, c.Layers())

	c = New(0, 4, []core.Color{R})
	require.NoError(t, c.AddLayers([]core.Color{B, G}, false))
	assert.Equal(t, []core.Color{R, G, B}, c.Layers())
}

func TestAddLayersClampsAndSignals(t *testing.T) {
	c := New(0, 4, []core.Color{R, R, R})

	err := c.AddLayers([]core.Color{B, G}, true)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, []core.Color{R, R, R, B}, c.Layers())
	assert.Equal(t, 4, c.Len())

	// Top-to-bottom input keeps the bottom-most incoming unit
	c = New(0, 4, []core.Color{R, R, R})
	err = c.AddLayers([]core.Color{B, G}, false)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, []core.Color{R, R, R, G}, c.Layers())

	// Full container accepts nothing and does not repaint
	repaints := 0
	c = New(0, 2, []core.Color{R, R}, WithRepaint(func(Repaint) { repaints++ }))
	err = c.AddLayers([]core.Color{R}, true)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, repaints)
	assert.Equal(t, 2, c.Len())
}

func TestAddLayersEmptyIsNoop(t *testing.T) {
	repaints := 0
	c := New(0, 4, nil, WithRepaint(func(Repaint) { repaints++ }))
	require.NoError(t, c.AddLayers(nil, true))
	assert.Equal(t, 0, repaints)
}

func TestRepaintOnMutation(t *testing.T) {
	var got []Repaint
	c := New(7, 4, []core.Color{R, B}, WithRepaint(func(r Repaint) { got = append(got, r) }))

	c.TakeTopRun(1)
	require.NoError(t, c.AddLayers([]core.Color{G, G}, true))
	c.TakeTopRun(0) // no-op, no repaint

	require.Len(t, got, 2)
	assert.Equal(t, core.ContainerID(7), got[0].ID)
	assert.Equal(t, []core.Color{R}, got[0].Colors)
	assert.InDelta(t, 0.25, got[0].Fill, 1e-9)
	assert.Equal(t, []core.Color{R, G, G}, got[1].Colors)
	assert.InDelta(t, 0.75, got[1].Fill, 1e-9)
	assert.Equal(t, 1.0, got[1].Scale)
	assert.Equal(t, core.NoContainer, got[1].Toward)
}

func TestLayersIsCopy(t *testing.T) {
	c := New(0, 4, []core.Color{R, B})
	layers := c.Layers()
	layers[0] = G
	assert.Equal(t, R, c.Layers()[0])
}

func TestReset(t *testing.T) {
	initial := []core.Color{R, B, B}
	c := New(0, 4, initial)
	c.TakeTopRun(2)
	require.NoError(t, c.AddLayers([]core.Color{G, G, G}, true))

	c.Reset()
	assert.Equal(t, initial, c.Layers())

	// Mutating the caller's slice must not leak into the container
	initial[0] = G
	c.Reset()
	assert.Equal(t, R, c.Layers()[0])
}

// TestLengthInvariant drives random mutations and checks 0 <= len <= capacity
func TestLengthInvariant(t *testing.T) {
	c := New(0, 4, []core.Color{R})
	colors := []core.Color{R, B, G}
	for i := 0; i < 200; i++ {
		if i%3 == 0 {
			c.TakeTopRun(i % 5)
		} else {
			_ = c.AddLayers([]core.Color{colors[i%3], colors[(i+1)%3]}, i%2 == 0)
		}
		require.GreaterOrEqual(t, c.Len(), 0)
		require.LessOrEqual(t, c.Len(), c.Capacity())
	}
}
