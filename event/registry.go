package event

import (
	"strconv"
	"strings"
)

var typeToName = [eventTypeCount]string{
	EventTick:             "Tick",
	EventRepaint:          "EventRepaint",
	EventPourCommit:       "EventPourCommit",
	EventPourStarted:      "EventPourStarted",
	EventPourComplete:     "EventPourComplete",
	EventPourRejected:     "EventPourRejected",
	EventSelectionChanged: "EventSelectionChanged",
	EventPickBusy:         "EventPickBusy",
	EventLevelLoaded:      "EventLevelLoaded",
	EventLevelSolved:      "EventLevelSolved",
	EventLevelStuck:       "EventLevelStuck",
	EventLevelReload:      "EventLevelReload",
	EventInputPick:        "EventInputPick",
	EventInputRestart:     "EventInputRestart",
	EventInputPause:       "EventInputPause",
	EventInputQuit:        "EventInputQuit",
	EventInputResize:      "EventInputResize",
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if et >= 0 && et < eventTypeCount {
		return typeToName[et]
	}
	return "Event(" + strconv.Itoa(int(et)) + ")"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	for i, n := range typeToName {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

func (et EventType) String() string {
	return GetEventName(et)
}
