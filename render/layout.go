package render

import (
	"sync/atomic"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/core"
)

// Layout places containers in one centered row
// A container spans ContainerWidth cells plus a wall on each side
type Layout struct {
	OriginX  int // Left wall of container 0
	RimY     int // Top row of an at-rest container
	Count    int
	Capacity int
}

// slot is the horizontal distance between neighboring left walls
const slot = constants.ContainerWidth + 2 + constants.ContainerGap

// NewLayout centers count containers on a screen width cells wide
func NewLayout(width, count, capacity int) Layout {
	total := count*(constants.ContainerWidth+2) + max(count-1, 0)*constants.ContainerGap
	return Layout{
		OriginX:  max((width-total)/2, 0),
		RimY:     constants.BoardTopMargin + constants.ApproachLift,
		Count:    count,
		Capacity: capacity,
	}
}

// ContainerX returns the left wall column of id
func (l Layout) ContainerX(id core.ContainerID) int {
	return l.OriginX + int(id)*slot
}

// BottomY is the row of the container floor
func (l Layout) BottomY() int {
	return l.RimY + l.Capacity
}

// LabelY is the row of the key labels under the containers
func (l Layout) LabelY() int {
	return l.BottomY() + 1
}

// HitTest maps a screen cell to the at-rest container drawn there
// The rows a container rises through while approaching also count
func (l Layout) HitTest(x, y int) (core.ContainerID, bool) {
	if y < l.RimY-constants.ApproachLift || y > l.LabelY() || x < l.OriginX {
		return core.NoContainer, false
	}
	rel := x - l.OriginX
	idx := rel / slot
	if idx >= l.Count || rel%slot >= constants.ContainerWidth+2 {
		return core.NoContainer, false
	}
	return core.ContainerID(idx), true
}

// KeyLabel is the digit that picks id from the keyboard
func KeyLabel(id core.ContainerID) rune {
	switch {
	case id >= 0 && id < 9:
		return rune('1' + id)
	case id == 9:
		return '0'
	default:
		return ' '
	}
}

type atomicLayout struct {
	p atomic.Pointer[Layout]
}

func newAtomicLayout() *atomicLayout {
	a := &atomicLayout{}
	a.p.Store(&Layout{})
	return a
}

func (a *atomicLayout) Load() Layout   { return *a.p.Load() }
func (a *atomicLayout) Store(l Layout) { a.p.Store(&l) }
