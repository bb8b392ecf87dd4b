package pour

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/liquid-sort/constants"
)

// Config holds the timing and calibration data of the pour animation
// Curve shapes are art-tuned data; only their contract is enforced by Validate
type Config struct {
	ApproachDuration time.Duration
	PourDuration     time.Duration
	SettleDuration   time.Duration
	ReturnDuration   time.Duration

	// RotationAngles is indexed by RotationIndex
	RotationAngles []float64

	// FillLevels maps layer count to visual fill, length capacity+1
	FillLevels []float64

	FillCurve  Curve // angle -> source fill, non-increasing
	ScaleCurve Curve // angle -> scale/rotation visual multiplier
	SpeedCurve Curve // angle -> rotation speed multiplier

	Epsilon float64
}

// DefaultConfig returns the built-in calibration
func DefaultConfig() Config {
	return Config{
		ApproachDuration: constants.PourApproachDuration,
		PourDuration:     constants.PourRotateDuration,
		SettleDuration:   constants.PourSettleDuration,
		ReturnDuration:   constants.PourReturnDuration,
		RotationAngles:   append([]float64(nil), constants.DefaultRotationAngles...),
		FillLevels:       append([]float64(nil), constants.DefaultFillLevels...),
		FillCurve:        NewCurve(constants.DefaultFillCurve),
		ScaleCurve:       NewCurve(constants.DefaultScaleCurve),
		SpeedCurve:       NewCurve(constants.DefaultSpeedCurve),
		Epsilon:          constants.PourFillEpsilon,
	}
}

// Validate checks the calibration contract
func (c Config) Validate() error {
	for name, d := range map[string]time.Duration{
		"approach": c.ApproachDuration,
		"pour":     c.PourDuration,
		"settle":   c.SettleDuration,
		"return":   c.ReturnDuration,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s duration %v is negative", ErrInvalidConfig, name, d)
		}
	}

	if len(c.RotationAngles) == 0 {
		return fmt.Errorf("%w: rotation angles empty", ErrInvalidConfig)
	}
	for i, a := range c.RotationAngles {
		if a <= 0 || a > 180 || math.IsNaN(a) {
			return fmt.Errorf("%w: rotation angle %d out of range: %v", ErrInvalidConfig, i, a)
		}
		if i > 0 && a < c.RotationAngles[i-1] {
			return fmt.Errorf("%w: rotation angles must be non-decreasing at %d", ErrInvalidConfig, i)
		}
	}

	if len(c.FillLevels) < 2 {
		return fmt.Errorf("%w: need at least 2 fill levels", ErrInvalidConfig)
	}
	for i, f := range c.FillLevels {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: fill level %d out of [0,1]: %v", ErrInvalidConfig, i, f)
		}
		if i > 0 && f <= c.FillLevels[i-1] {
			return fmt.Errorf("%w: fill levels must be strictly increasing at %d", ErrInvalidConfig, i)
		}
	}

	if len(c.FillCurve) == 0 {
		return fmt.Errorf("%w: fill curve empty", ErrInvalidConfig)
	}
	for name, curve := range map[string]Curve{"fill": c.FillCurve, "scale": c.ScaleCurve, "speed": c.SpeedCurve} {
		if err := curve.Validate(); err != nil {
			return fmt.Errorf("%w: %s curve: %v", ErrInvalidConfig, name, err)
		}
	}
	if !c.FillCurve.NonIncreasing() {
		return fmt.Errorf("%w: fill curve must be non-increasing", ErrInvalidConfig)
	}
	if len(c.SpeedCurve) > 0 && c.SpeedCurve.Min() <= 0 {
		return fmt.Errorf("%w: speed curve must stay positive", ErrInvalidConfig)
	}

	if c.Epsilon < 0 || c.Epsilon >= 0.5 {
		return fmt.Errorf("%w: epsilon %v out of [0,0.5)", ErrInvalidConfig, c.Epsilon)
	}
	return nil
}

// FillLevel returns the visual fill for n layers in a container of capacity
// Falls back to n/capacity when the table does not match the capacity
func (c Config) FillLevel(n, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	n = max(0, min(n, capacity))
	if len(c.FillLevels) == capacity+1 {
		return c.FillLevels[n]
	}
	return float64(n) / float64(capacity)
}

// TargetAngle returns the tilt for a pour of count units from a source holding lenBefore
// Tables sized for another capacity are sampled proportionally
func (c Config) TargetAngle(capacity, lenBefore, count int) float64 {
	if len(c.RotationAngles) == 0 {
		return 90
	}
	idx := RotationIndex(capacity, lenBefore, count)
	if len(c.RotationAngles) == capacity {
		return c.RotationAngles[idx]
	}

	last := len(c.RotationAngles) - 1
	if capacity <= 1 || last == 0 {
		return c.RotationAngles[last]
	}
	pos := float64(idx) / float64(capacity-1) * float64(last)
	lo := int(math.Floor(pos))
	hi := min(lo+1, last)
	return lerp(c.RotationAngles[lo], c.RotationAngles[hi], pos-float64(lo))
}

// speed returns the rotation speed multiplier at angle, 1 without a curve
func (c Config) speed(angle float64) float64 {
	if len(c.SpeedCurve) == 0 {
		return 1
	}
	return c.SpeedCurve.Evaluate(angle)
}

// scale returns the visual multiplier at angle, 1 without a curve
func (c Config) scale(angle float64) float64 {
	if len(c.ScaleCurve) == 0 {
		return 1
	}
	return c.ScaleCurve.Evaluate(angle)
}
