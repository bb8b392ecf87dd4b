package engine

import "errors"

var (
	// ErrUnknownContainer signals an ID outside the board
	ErrUnknownContainer = errors.New("unknown container")

	// ErrContainerBusy signals a container already owned by an in-flight pour
	ErrContainerBusy = errors.New("container busy")

	// ErrPourInFlight signals an operation that requires every pour to be finished
	ErrPourInFlight = errors.New("pour in flight")

	// ErrInvalidBoard wraps board construction failures
	ErrInvalidBoard = errors.New("invalid board")
)
