package core

import "strconv"

// ContainerID identifies a container by its index on the board
type ContainerID int

// NoContainer is the sentinel for "no container"
const NoContainer ContainerID = -1

func (id ContainerID) String() string {
	if id == NoContainer {
		return "none"
	}
	return "#" + strconv.Itoa(int(id))
}
