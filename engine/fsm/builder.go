package fsm

import "fmt"

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	if id == StateNone {
		panic("FSM: StateNone is reserved")
	}
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0, 2),
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Enter appends an OnEnter action
func (n *Node[T]) Enter(fn ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, Action[T]{Func: fn})
	return n
}

// Update appends an OnUpdate action
func (n *Node[T]) Update(fn ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, Action[T]{Func: fn})
	return n
}

// Exit appends an OnExit action
func (n *Node[T]) Exit(fn ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, Action[T]{Func: fn})
	return n
}

// Validate checks every transition targets a known state
func (m *Machine[T]) Validate() error {
	for id, node := range m.nodes {
		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %d (%s) transitions to missing state %d", id, node.Name, t.TargetID)
			}
		}
	}
	return nil
}
