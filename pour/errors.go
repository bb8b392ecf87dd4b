package pour

import "errors"

var (
	// ErrIllegalPour signals the resolver found no valid transfer
	ErrIllegalPour = errors.New("illegal pour")

	// ErrAlreadyStarted signals Start on a sequencer that already left Idle
	ErrAlreadyStarted = errors.New("sequencer already started")

	// ErrInvalidConfig wraps pour configuration validation failures
	ErrInvalidConfig = errors.New("invalid pour config")
)
