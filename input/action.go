package input

import (
	"sort"
	"strconv"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/event"
)

// Action is what a key does
type Action uint8

const (
	ActionNone Action = iota
	ActionPick
	ActionRestart
	ActionPause
	ActionQuit
)

// KeyEntry binds a key to an action; Container is used by ActionPick
type KeyEntry struct {
	Action    Action
	Container core.ContainerID
}

// actionRegistry maps config action names to entries
var actionRegistry = func() map[string]KeyEntry {
	m := map[string]KeyEntry{
		"none":    {},
		"restart": {Action: ActionRestart},
		"pause":   {Action: ActionPause},
		"quit":    {Action: ActionQuit},
	}
	for i := 1; i <= constants.MaxContainers; i++ {
		m["pick_"+strconv.Itoa(i)] = KeyEntry{Action: ActionPick, Container: core.ContainerID(i - 1)}
	}
	return m
}()

// ActionEntry resolves an action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}

// ActionNames returns every bindable action name, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for n := range actionRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// event converts an entry to the game event it produces
func (e KeyEntry) event() (event.GameEvent, bool) {
	switch e.Action {
	case ActionPick:
		return event.GameEvent{Type: event.EventInputPick, Payload: e.Container}, true
	case ActionRestart:
		return event.GameEvent{Type: event.EventInputRestart}, true
	case ActionPause:
		return event.GameEvent{Type: event.EventInputPause}, true
	case ActionQuit:
		return event.GameEvent{Type: event.EventInputQuit}, true
	default:
		return event.GameEvent{}, false
	}
}
