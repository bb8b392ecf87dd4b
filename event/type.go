package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved for FSM auto-transitions and is never emitted
	EventTick EventType = iota

	// === Render Events ===

	// EventRepaint carries a container's visual state
	// Trigger: Container mutation, Sequencer tick
	// Consumer: Renderer | Payload: *container.Repaint
	EventRepaint

	// === Pour Events ===

	// EventPourCommit moves a sequencer out of Idle
	// Trigger: Sequencer.Start | Consumer: Sequencer FSM | Payload: nil
	EventPourCommit

	// EventPourStarted signals a sequencer entered Approaching
	// Trigger: Board.StartPour | Consumer: Audio, Renderer | Payload: *PourPayload
	EventPourStarted

	// EventPourComplete signals a sequencer returned to Idle
	// Trigger: Sequencer Idle entry | Consumer: Board, Renderer | Payload: *PourPayload
	EventPourComplete

	// EventPourRejected signals the resolver found no legal transfer
	// Trigger: Selection | Consumer: Audio, Renderer | Payload: *PourPayload (Count 0)
	EventPourRejected

	// === Selection Events ===

	// EventSelectionChanged signals the selected source changed
	// Trigger: Selection | Consumer: Renderer | Payload: *SelectionPayload
	EventSelectionChanged

	// EventPickBusy signals a pick was ignored because the container is mid-pour
	// Trigger: Selection | Consumer: Renderer | Payload: *SelectionPayload
	EventPickBusy

	// === Level Events ===

	// EventLevelLoaded signals a board was (re)built from a level
	// Trigger: Board construction, Restart | Consumer: Renderer | Payload: *LevelPayload
	EventLevelLoaded

	// EventLevelSolved signals every container is empty or a full monochrome stack
	// Trigger: Board after pour complete | Consumer: Audio, Renderer | Payload: *LevelPayload
	EventLevelSolved

	// EventLevelStuck signals no legal pour remains
	// Trigger: Board after pour complete | Consumer: Renderer | Payload: *LevelPayload
	EventLevelStuck

	// EventLevelReload replaces the board with an edited level once no pour is in flight
	// Trigger: level.Watcher | Consumer: Game loop | Payload: *level.Level
	EventLevelReload

	// === Input Events ===

	// EventInputPick selects a container
	// Trigger: Input poller | Consumer: Game loop | Payload: core.ContainerID
	EventInputPick

	// EventInputRestart restores the level's initial colors
	EventInputRestart

	// EventInputPause toggles game time
	EventInputPause

	// EventInputQuit ends the game loop
	EventInputQuit

	// EventInputResize signals the terminal size changed
	EventInputResize

	eventTypeCount
)

// GameEvent is a typed event with an optional payload
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
