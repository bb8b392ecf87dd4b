package constants

import "time"

// Pour Animation Timing
const (
	// PourApproachDuration moves the source container to the destination's edge
	PourApproachDuration = 250 * time.Millisecond

	// PourRotateDuration tilts the source to its target angle
	PourRotateDuration = 1 * time.Second

	// PourSettleDuration tilts the source back to upright
	PourSettleDuration = 600 * time.Millisecond

	// PourReturnDuration moves the source container home
	PourReturnDuration = 250 * time.Millisecond
)

// PourFillEpsilon is the tolerance applied when comparing curve fill with displayed fill
const PourFillEpsilon = 1e-4

// DefaultRotationAngles are the tilt angles in degrees, indexed by how many layers the pour
// leaves behind in the source: index 0 leaves capacity-1, the last index empties it
var DefaultRotationAngles = []float64{54, 71, 83, 90}

// DefaultFillLevels are the visual fill amounts per layer count, index = layer count
var DefaultFillLevels = []float64{0, 0.25, 0.5, 0.75, 1}

// Curves are {angle, value} keys

// DefaultFillCurve maps tilt angle to the fill the source can still hold
// Aligned with DefaultRotationAngles so each target angle lands on a DefaultFillLevels step
var DefaultFillCurve = [][2]float64{
	{0, 1},
	{54, 0.75},
	{71, 0.5},
	{83, 0.25},
	{90, 0},
}

// DefaultScaleCurve maps tilt angle to the scale/rotation visual multiplier
var DefaultScaleCurve = [][2]float64{
	{0, 1},
	{90, 0.6},
}

// DefaultSpeedCurve maps tilt angle to the rotation speed multiplier
var DefaultSpeedCurve = [][2]float64{
	{0, 1.4},
	{54, 1},
	{90, 0.8},
}
