package pour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/liquid-sort/container"
	"github.com/lixenwraith/liquid-sort/core"
)

const (
	R = core.ColorRed
	B = core.ColorBlue
	G = core.ColorGreen
	Y = core.ColorYellow
)

func newC(id int, layers ...core.Color) *container.Container {
	return container.New(core.ContainerID(id), 4, layers)
}

func TestResolveLegalityTable(t *testing.T) {
	tests := []struct {
		name   string
		src    []core.Color
		dst    []core.Color
		want   Plan
		wantOK bool
	}{
		{"into empty", []core.Color{R, R, B}, nil, Plan{B, 1}, true},
		{"whole run fits", []core.Color{R, R, R}, []core.Color{R}, Plan{R, 3}, true},
		{"matching top", []core.Color{G, B, B}, []core.Color{R, B}, Plan{B, 2}, true},
		{"free space limits run", []core.Color{B, B, B}, []core.Color{R, R, B}, Plan{B, 1}, true},
		{"top colors differ", []core.Color{B}, []core.Color{R}, Plan{}, false},
		{"empty source", nil, nil, Plan{}, false},
		{"empty source into partial", nil, []core.Color{R}, Plan{}, false},
		{"destination full", []core.Color{R}, []core.Color{R, R, R, R}, Plan{}, false},
		{"destination full mixed", []core.Color{B}, []core.Color{R, G, Y, B}, Plan{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := newC(0, tt.src...), newC(1, tt.dst...)
			plan, ok := Resolve(src, dst)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, plan)
		})
	}
}

func TestResolveSameContainer(t *testing.T) {
	c := newC(0, R, R)
	_, ok := Resolve(c, c)
	assert.False(t, ok)

	// Distinct instances sharing an ID are the same container
	_, ok = Resolve(newC(3, R), newC(3))
	assert.False(t, ok)

	_, ok = Resolve(nil, c)
	assert.False(t, ok)
}

func TestResolveIsPureAndIdempotent(t *testing.T) {
	src, dst := newC(0, G, B, B), newC(1, R, B)
	srcBefore, dstBefore := src.Layers(), dst.Layers()

	first, ok1 := Resolve(src, dst)
	second, ok2 := Resolve(src, dst)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, srcBefore, src.Layers())
	assert.Equal(t, dstBefore, dst.Layers())
}

func TestResolvePlanMatchesCanReceive(t *testing.T) {
	palette := []core.Color{R, B}
	// Every stack of up to capacity units over two colors
	var stacks [][]core.Color
	var gen func(prefix []core.Color)
	gen = func(prefix []core.Color) {
		stacks = append(stacks, append([]core.Color(nil), prefix...))
		if len(prefix) == 4 {
			return
		}
		for _, c := range palette {
			gen(append(prefix, c))
		}
	}
	gen(nil)

	for _, a := range stacks {
		for _, b := range stacks {
			src, dst := newC(0, a...), newC(1, b...)
			plan, ok := Resolve(src, dst)
			wantOK := !src.IsEmpty() && dst.CanReceive(src.TopColor())
			require.Equal(t, wantOK, ok, "src=%v dst=%v", a, b)
			if ok {
				assert.Equal(t, src.TopColor(), plan.Color)
				assert.Positive(t, plan.Count)
				assert.LessOrEqual(t, plan.Count, src.TopRunLength())
				assert.LessOrEqual(t, plan.Count, dst.FreeSpace())
			}
		}
	}
}

func TestRotationIndex(t *testing.T) {
	tests := []struct {
		capacity, lenBefore, count, want int
	}{
		{4, 4, 1, 0}, // leaves 3
		{4, 3, 1, 1}, // leaves 2
		{4, 3, 3, 3}, // empties
		{4, 2, 1, 2}, // leaves 1
		{4, 1, 1, 3},
		{4, 4, 4, 3},
		{4, 2, 5, 3}, // count clamped to lenBefore
		{1, 1, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RotationIndex(tt.capacity, tt.lenBefore, tt.count), "%+v", tt)
	}
}

func TestCheckSolved(t *testing.T) {
	tests := []struct {
		name       string
		containers []*container.Container
		want       bool
	}{
		{"all empty", []*container.Container{newC(0), newC(1)}, true},
		{"full monochrome and empty", []*container.Container{newC(0, R, R, R, R), newC(1), newC(2, B, B, B, B)}, true},
		{"partial monochrome", []*container.Container{newC(0, R, R, R), newC(1, R)}, false},
		{"full mixed", []*container.Container{newC(0, R, R, R, B)}, false},
		{"none", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckSolved(tt.containers))
		})
	}
}

func TestHasLegalMove(t *testing.T) {
	tests := []struct {
		name       string
		containers []*container.Container
		want       bool
	}{
		{"pour into matching", []*container.Container{newC(0, R, B), newC(1, G, B)}, true},
		{"pour into empty", []*container.Container{newC(0, R, B), newC(1)}, true},
		{"all full mismatched", []*container.Container{newC(0, R, B, R, B), newC(1, B, R, B, R)}, false},
		{"only relocating a monochrome stack", []*container.Container{newC(0, R, R), newC(1), newC(2, B, B, B, B)}, false},
		{"solved", []*container.Container{newC(0, R, R, R, R), newC(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasLegalMove(tt.containers))
		})
	}
}

func TestValidTargets(t *testing.T) {
	src := newC(0, R, B)
	all := []*container.Container{src, newC(1, B), newC(2, R), newC(3), newC(4, B, B, B, B)}
	assert.Equal(t, []core.ContainerID{1, 3}, ValidTargets(src, all))

	assert.Nil(t, ValidTargets(newC(5), all))
}
