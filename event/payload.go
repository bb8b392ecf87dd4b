package event

import "github.com/lixenwraith/liquid-sort/core"

// PourPayload describes a pour attempt or an in-flight pour
type PourPayload struct {
	PourID      string
	Source      core.ContainerID
	Destination core.ContainerID
	Color       core.Color
	Count       int
}

// SelectionPayload carries the selection after a pick
// Selected is core.NoContainer when the selection is empty
type SelectionPayload struct {
	Selected core.ContainerID
	Picked   core.ContainerID
	Targets  []core.ContainerID
}

// LevelPayload describes the board at a level milestone
type LevelPayload struct {
	Name       string
	Containers int
	Capacity   int
	Moves      int
}
