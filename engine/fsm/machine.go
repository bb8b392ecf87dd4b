package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/liquid-sort/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if err := m.Validate(); err != nil {
		return err
	}
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}

	m.activeStateID = initialID
	m.timeInState = 0
	m.transitions = 0
	runActions(ctx, node.OnEnter)
	return nil
}

// Update advances the FSM by delta time: OnUpdate actions first, then tick transitions
// At most one transition fires per Update
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	node := m.nodes[m.activeStateID]
	runActions(ctx, node.OnUpdate)

	for _, trans := range node.Transitions {
		if trans.Event == 0 && (trans.Guard == nil || trans.Guard(ctx)) {
			m.transition(ctx, trans.TargetID)
			return
		}
	}
}

// HandleEvent routes an external event to the active state
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == 0 {
		return false
	}

	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event == eventType && (trans.Guard == nil || trans.Guard(ctx)) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// transition performs the state change: OnExit of current, OnEnter of target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	runActions(ctx, m.nodes[m.activeStateID].OnExit)

	// State is switched before OnEnter so actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.transitions++

	runActions(ctx, targetNode.OnEnter)
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// State returns the active StateID
func (m *Machine[T]) State() StateID {
	return m.activeStateID
}

// StateName returns the active state's name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the active state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Transitions returns the number of transitions since Init
func (m *Machine[T]) Transitions() int {
	return m.transitions
}
