package constants

import "time"

// Container Layout
const (
	// ContainerWidth is the inner width of a drawn container in cells
	ContainerWidth = 4

	// ContainerGap is the horizontal gap between containers
	ContainerGap = 3

	// BoardTopMargin is the row the first container's rim is drawn on
	BoardTopMargin = 3

	// ApproachLift is how many rows the source rises while approaching
	ApproachLift = 2

	// PourStreamAngle is the tilt in degrees from which a stream is drawn
	PourStreamAngle = 45.0
)

// UI Timing Constants
const (
	// RejectFlashTimeout is how long a container flashes after an illegal pour
	RejectFlashTimeout = 300 * time.Millisecond

	// StatusMessageTimeout is how long status messages are displayed
	StatusMessageTimeout = 2 * time.Second
)

// Status text
const (
	StatusSolved = "SOLVED! press r to replay, q to quit"
	StatusStuck  = "No moves left. press r to restart"
	StatusPaused = "PAUSED"
	StatusHelp   = "1-9,0/click: pick   r: restart   p: pause   q: quit"
)
