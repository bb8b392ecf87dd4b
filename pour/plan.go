package pour

import (
	"github.com/lixenwraith/liquid-sort/container"
	"github.com/lixenwraith/liquid-sort/core"
)

// Intent names the two containers of a requested pour
type Intent struct {
	Source      core.ContainerID
	Destination core.ContainerID
}

// Plan is the exact run a legal pour moves
type Plan struct {
	Color core.Color
	Count int
}

// Resolve computes the pour from source into destination without mutating either
// Returns false when the pour is illegal
func Resolve(source, destination *container.Container) (Plan, bool) {
	if source == nil || destination == nil {
		return Plan{}, false
	}
	if source == destination || source.ID() == destination.ID() {
		return Plan{}, false
	}
	if source.IsEmpty() || destination.IsFull() {
		return Plan{}, false
	}

	color := source.TopColor()
	if !destination.IsEmpty() && destination.TopColor() != color {
		return Plan{}, false
	}

	count := min(source.TopRunLength(), destination.FreeSpace())
	return Plan{Color: color, Count: count}, true
}

// RotationIndex selects the rotation-angle table entry for a pour
// The index grows as fewer layers are left behind in the source: a pour leaving
// capacity-1 layers uses index 0, a pour emptying the source uses capacity-1
func RotationIndex(capacity, lenBefore, count int) int {
	remaining := lenBefore - min(count, lenBefore)
	idx := capacity - 1 - remaining
	return max(0, min(idx, capacity-1))
}

// CheckSolved reports whether every container is empty or a full monochrome stack
func CheckSolved(containers []*container.Container) bool {
	for _, c := range containers {
		if c.IsEmpty() {
			continue
		}
		if c.Len() != c.Capacity() || c.TopRunLength() != c.Capacity() {
			return false
		}
	}
	return true
}

// HasLegalMove reports whether any ordered pair of containers resolves to a pour
// that changes the puzzle, so moving a complete stack into an empty container does not count
func HasLegalMove(containers []*container.Container) bool {
	for _, src := range containers {
		if src.IsEmpty() {
			continue
		}
		complete := src.Len() == src.Capacity() && src.TopRunLength() == src.Capacity()
		if complete {
			continue
		}
		onlyRun := src.TopRunLength() == src.Len()
		for _, dst := range containers {
			if _, ok := Resolve(src, dst); !ok {
				continue
			}
			// Moving a monochrome stack into an empty container just relocates it
			if onlyRun && dst.IsEmpty() {
				continue
			}
			return true
		}
	}
	return false
}

// ValidTargets lists the containers source can legally pour into
func ValidTargets(source *container.Container, containers []*container.Container) []core.ContainerID {
	var out []core.ContainerID
	for _, dst := range containers {
		if _, ok := Resolve(source, dst); ok {
			out = append(out, dst.ID())
		}
	}
	return out
}
