package fsm

import (
	"time"

	"github.com/lixenwraith/liquid-sort/event"
)

// StateID is a unique identifier for a node
type StateID int

// StateNone marks an uninitialized machine
const StateNone StateID = 0

// Machine is a flat finite state machine advanced by an external tick
// T is the context type passed to actions and guards (e.g., *pour.Sequencer)
type Machine[T any] struct {
	// Graph Data (immutable after build)
	nodes map[StateID]*Node[T]

	// Runtime State
	activeStateID StateID
	timeInState   time.Duration // Game time elapsed in current state
	transitions   int           // Completed transitions since Init
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // 0 = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)
