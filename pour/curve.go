package pour

import (
	"fmt"
	"sort"
)

// Key is one calibration point of a Curve
type Key struct {
	Angle float64
	Value float64
}

// Curve is a piecewise-linear calibration keyed by tilt angle in degrees
// Keys are sorted by Angle; evaluation clamps outside the keyed range
type Curve []Key

// NewCurve builds a curve from {angle, value} pairs, sorting by angle
func NewCurve(pairs [][2]float64) Curve {
	c := make(Curve, len(pairs))
	for i, p := range pairs {
		c[i] = Key{Angle: p[0], Value: p[1]}
	}
	sort.SliceStable(c, func(i, j int) bool { return c[i].Angle < c[j].Angle })
	return c
}

// Evaluate returns the interpolated value at angle, 0 for an empty curve
func (c Curve) Evaluate(angle float64) float64 {
	switch len(c) {
	case 0:
		return 0
	case 1:
		return c[0].Value
	}

	if angle <= c[0].Angle {
		return c[0].Value
	}
	last := c[len(c)-1]
	if angle >= last.Angle {
		return last.Value
	}

	// First key strictly past angle
	i := sort.Search(len(c), func(i int) bool { return c[i].Angle > angle })
	a, b := c[i-1], c[i]
	span := b.Angle - a.Angle
	if span <= 0 {
		return b.Value
	}
	return lerp(a.Value, b.Value, (angle-a.Angle)/span)
}

// Validate checks keys are strictly increasing in angle
func (c Curve) Validate() error {
	for i := 1; i < len(c); i++ {
		if c[i].Angle <= c[i-1].Angle {
			return fmt.Errorf("key %d: angle %.3f not above previous %.3f", i, c[i].Angle, c[i-1].Angle)
		}
	}
	return nil
}

// NonIncreasing reports whether values never rise as angle grows
func (c Curve) NonIncreasing() bool {
	for i := 1; i < len(c); i++ {
		if c[i].Value > c[i-1].Value {
			return false
		}
	}
	return true
}

// Min returns the smallest value, 0 for an empty curve
func (c Curve) Min() float64 {
	if len(c) == 0 {
		return 0
	}
	m := c[0].Value
	for _, k := range c[1:] {
		m = min(m, k.Value)
	}
	return m
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
