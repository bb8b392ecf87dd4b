package container

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/core"
)

// ErrCapacityExceeded signals a mutation that would overflow a container
// Indicates a caller ordering bug: pours must be resolved before layers are added
var ErrCapacityExceeded = errors.New("container capacity exceeded")

// Repaint is the render collaborator's view of one container
// Colors are bottom to top; Fill is normalized 0..1
type Repaint struct {
	ID     core.ContainerID
	Colors []core.Color
	Fill   float64

	// Animation state, zero when at rest
	Angle  float64          // Tilt in degrees
	Scale  float64          // Scale/rotation visual multiplier, 1 at rest
	Offset float64          // 0 at home, 1 at the pour position
	Toward core.ContainerID // Pour partner while Offset > 0
}

// RepaintFunc receives repaint notifications
type RepaintFunc func(Repaint)

// Container is a fixed-capacity stack of color units, index 0 is the bottom
type Container struct {
	id       core.ContainerID
	capacity int
	layers   []core.Color
	initial  []core.Color

	// busy is set while the container takes part in an in-flight pour
	busy bool

	onRepaint RepaintFunc
	logger    *zap.Logger
}

// Option configures a Container
type Option func(*Container)

// WithRepaint registers the repaint notification target
func WithRepaint(fn RepaintFunc) Option {
	return func(c *Container) {
		c.onRepaint = fn
	}
}

// WithLogger sets the logger used for capacity warnings
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a container from its initial bottom-to-top colors
// Initial colors beyond capacity are dropped with a warning
func New(id core.ContainerID, capacity int, initial []core.Color, opts ...Option) *Container {
	if capacity <= 0 {
		panic(fmt.Sprintf("container %s: capacity must be positive, got %d", id, capacity))
	}

	c := &Container{
		id:       id,
		capacity: capacity,
		layers:   make([]core.Color, 0, capacity),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	n := len(initial)
	if n > capacity {
		c.logger.Warn("initial colors exceed capacity, clamping",
			zap.Stringer("container", id),
			zap.Int("count", n),
			zap.Int("capacity", capacity))
		n = capacity
	}
	c.initial = append(make([]core.Color, 0, n), initial[:n]...)
	c.layers = append(c.layers, c.initial...)

	return c
}

// SetRepaint replaces the repaint target
func (c *Container) SetRepaint(fn RepaintFunc) {
	c.onRepaint = fn
}

func (c *Container) ID() core.ContainerID { return c.id }
func (c *Container) Capacity() int        { return c.capacity }
func (c *Container) Len() int             { return len(c.layers) }
func (c *Container) IsEmpty() bool        { return len(c.layers) == 0 }
func (c *Container) IsFull() bool         { return len(c.layers) >= c.capacity }
func (c *Container) FreeSpace() int       { return c.capacity - len(c.layers) }

// Busy reports whether an in-flight pour owns this container
func (c *Container) Busy() bool { return c.busy }

// SetBusy is called by the pour sequencer on Approaching entry and Idle entry
func (c *Container) SetBusy(busy bool) { c.busy = busy }

// TopColor returns the top color, ColorNone if empty
func (c *Container) TopColor() core.Color {
	if len(c.layers) == 0 {
		return core.ColorNone
	}
	return c.layers[len(c.layers)-1]
}

// TopRunLength counts consecutive units equal to the top color, 0 if empty
func (c *Container) TopRunLength() int {
	n := len(c.layers)
	if n == 0 {
		return 0
	}
	top := c.layers[n-1]
	run := 1
	for i := n - 2; i >= 0; i-- {
		if c.layers[i] != top {
			break
		}
		run++
	}
	return run
}

// Layers returns a bottom-to-top copy of the stack
func (c *Container) Layers() []core.Color {
	out := make([]core.Color, len(c.layers))
	copy(out, c.layers)
	return out
}

// Fill is the normalized fill level: length / capacity
func (c *Container) Fill() float64 {
	return float64(len(c.layers)) / float64(c.capacity)
}

// CanReceive reports whether a unit of color may be poured in
func (c *Container) CanReceive(color core.Color) bool {
	if c.IsFull() {
		return false
	}
	if c.IsEmpty() {
		return true
	}
	return c.TopColor() == color
}

// TakeTopRun removes up to maxCount units of the top run
// Returns the removed units bottom to top; empty when nothing was removed
func (c *Container) TakeTopRun(maxCount int) []core.Color {
	if len(c.layers) == 0 || maxCount <= 0 {
		return nil
	}

	run := min(c.TopRunLength(), maxCount)
	start := len(c.layers) - run

	taken := make([]core.Color, run)
	copy(taken, c.layers[start:])
	c.layers = c.layers[:start]

	c.logger.Debug("take top run",
		zap.Stringer("container", c.id),
		zap.Int("run", run),
		zap.Int("len", len(c.layers)))

	c.repaint()
	return taken
}

// AddLayers appends units on top
// bottomToTop reports the orientation of colors; it is normalized before appending
// Units that do not fit are dropped with a warning and ErrCapacityExceeded is returned
func (c *Container) AddLayers(colors []core.Color, bottomToTop bool) error {
	if len(colors) == 0 {
		return nil
	}

	free := c.capacity - len(c.layers)
	accepted := min(len(colors), free)

	if bottomToTop {
		c.layers = append(c.layers, colors[:accepted]...)
	} else {
		for i := len(colors) - 1; i >= len(colors)-accepted; i-- {
			c.layers = append(c.layers, colors[i])
		}
	}

	var err error
	if accepted < len(colors) {
		c.logger.Warn("over capacity, clamping",
			zap.Stringer("container", c.id),
			zap.Int("incoming", len(colors)),
			zap.Int("accepted", accepted),
			zap.Int("capacity", c.capacity))
		err = fmt.Errorf("container %s: %d incoming, %d free: %w", c.id, len(colors), free, ErrCapacityExceeded)
	}

	if accepted > 0 {
		c.logger.Debug("add layers",
			zap.Stringer("container", c.id),
			zap.Int("added", accepted),
			zap.Int("len", len(c.layers)))
		c.repaint()
	}
	return err
}

// Reset restores the initial colors
func (c *Container) Reset() {
	c.layers = append(c.layers[:0], c.initial...)
	c.repaint()
}

// Snapshot returns the at-rest repaint for the current stack
func (c *Container) Snapshot() Repaint {
	return Repaint{
		ID:     c.id,
		Colors: c.Layers(),
		Fill:   c.Fill(),
		Scale:  1,
		Toward: core.NoContainer,
	}
}

func (c *Container) repaint() {
	if c.onRepaint != nil {
		c.onRepaint(c.Snapshot())
	}
}
