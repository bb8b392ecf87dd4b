package pour

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative duration", func(c *Config) { c.SettleDuration = -time.Millisecond }},
		{"no rotation angles", func(c *Config) { c.RotationAngles = nil }},
		{"zero angle", func(c *Config) { c.RotationAngles = []float64{0, 45} }},
		{"decreasing angles", func(c *Config) { c.RotationAngles = []float64{80, 60} }},
		{"one fill level", func(c *Config) { c.FillLevels = []float64{1} }},
		{"flat fill levels", func(c *Config) { c.FillLevels = []float64{0, 0.5, 0.5, 1} }},
		{"fill level above one", func(c *Config) { c.FillLevels = []float64{0, 1.5} }},
		{"empty fill curve", func(c *Config) { c.FillCurve = nil }},
		{"rising fill curve", func(c *Config) { c.FillCurve = NewCurve([][2]float64{{0, 0.5}, {90, 1}}) }},
		{"duplicate curve angle", func(c *Config) { c.ScaleCurve = Curve{{Angle: 10, Value: 1}, {Angle: 10, Value: 0.5}} }},
		{"stalling speed", func(c *Config) { c.SpeedCurve = NewCurve([][2]float64{{0, 1}, {90, 0}}) }},
		{"epsilon too large", func(c *Config) { c.Epsilon = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigFillLevel(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.0, cfg.FillLevel(0, 4))
	assert.Equal(t, 0.75, cfg.FillLevel(3, 4))
	assert.Equal(t, 1.0, cfg.FillLevel(9, 4), "clamped to capacity")

	// Table sized for capacity 4 falls back to uniform levels
	assert.Equal(t, 0.5, cfg.FillLevel(3, 6))
	assert.Equal(t, 0.0, cfg.FillLevel(1, 0))

	cfg.FillLevels = []float64{0, 0.3, 0.55, 0.8, 1}
	assert.Equal(t, 0.55, cfg.FillLevel(2, 4))
}

func TestConfigTargetAngle(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name                       string
		capacity, lenBefore, count int
		want                       float64
	}{
		{"leaves three", 4, 4, 1, 54},
		{"leaves two", 4, 3, 1, 71},
		{"leaves one", 4, 2, 1, 83},
		{"empties", 4, 3, 3, 90},
		{"larger capacity first entry", 7, 7, 1, 54},
		{"larger capacity last entry", 7, 2, 2, 90},
		{"larger capacity between entries", 7, 7, 4, 77},
		{"single unit container", 1, 1, 1, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cfg.TargetAngle(tt.capacity, tt.lenBefore, tt.count), 1e-9)
		})
	}

	cfg.RotationAngles = nil
	assert.Equal(t, 90.0, cfg.TargetAngle(4, 4, 1))
}

func TestCurveEvaluate(t *testing.T) {
	c := NewCurve([][2]float64{{90, 0}, {0, 1}, {45, 0.8}})
	require.NoError(t, c.Validate())
	require.Equal(t, 0.0, c[0].Angle, "keys sorted by angle")

	tests := []struct {
		angle, want float64
	}{
		{-10, 1},
		{0, 1},
		{22.5, 0.9},
		{45, 0.8},
		{67.5, 0.4},
		{90, 0},
		{120, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Evaluate(tt.angle), 1e-9, "angle %v", tt.angle)
	}

	assert.Equal(t, 0.0, Curve(nil).Evaluate(30))
	assert.Equal(t, 0.7, NewCurve([][2]float64{{10, 0.7}}).Evaluate(80))
}

func TestCurveShape(t *testing.T) {
	falling := NewCurve([][2]float64{{0, 1}, {30, 1}, {90, 0.2}})
	assert.True(t, falling.NonIncreasing())
	assert.Equal(t, 0.2, falling.Min())

	rising := NewCurve([][2]float64{{0, 0.1}, {90, 0.9}})
	assert.False(t, rising.NonIncreasing())
	assert.Equal(t, 0.0, Curve(nil).Min())
}
