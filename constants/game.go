package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the tick interval of the game loop (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxTickDelta caps a single tick's game-time delta after a stall (resume, debugger)
	MaxTickDelta = 100 * time.Millisecond
)

// Board Constants
const (
	// DefaultCapacity is the number of units a container holds
	DefaultCapacity = 4

	// MaxContainers is the most containers a level may define (keys 1..9,0 pick them)
	MaxContainers = 10

	// InputQueueSize is the capacity of the input event ring buffer, must be a power of 2
	InputQueueSize = 64

	// InputQueueMask is the index mask for InputQueueSize
	InputQueueMask = InputQueueSize - 1
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "liquid-sort.log"

	// MaxLogSizeMB is the debug log size in megabytes that triggers rotation
	MaxLogSizeMB = 10
	// MaxLogBackups is how many rotated logs are kept
	MaxLogBackups = 3
)
