// Package selection turns discrete container picks into pour requests
package selection

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/container"
	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/event"
	"github.com/lixenwraith/liquid-sort/pour"
)

// Board is the part of the game board the controller drives
type Board interface {
	Container(id core.ContainerID) (*container.Container, bool)
	Containers() []*container.Container
	StartPour(intent pour.Intent) (pour.Plan, error)
}

// Outcome reports what a pick did
type Outcome int

const (
	OutcomeIgnored    Outcome = iota // Unknown container ID
	OutcomeSelected                  // Source chosen
	OutcomeDeselected                // Source picked again
	OutcomePoured                    // Pour committed to the board
	OutcomeRejected                  // No legal transfer, selection cleared
	OutcomeBusy                      // Container mid-pour, pick dropped
)

var outcomeNames = [...]string{
	OutcomeIgnored:    "Ignored",
	OutcomeSelected:   "Selected",
	OutcomeDeselected: "Deselected",
	OutcomePoured:     "Poured",
	OutcomeRejected:   "Rejected",
	OutcomeBusy:       "Busy",
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Controller holds the two-slot selection: empty, or one chosen source
// Game-loop owned: not safe for concurrent use
type Controller struct {
	board  Board
	bus    *event.Bus
	logger *zap.Logger

	source core.ContainerID // core.NoContainer when empty
	frame  int64
}

// New creates a controller with an empty selection; bus and logger may be nil
func New(board Board, bus *event.Bus, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		board:  board,
		bus:    bus,
		logger: logger,
		source: core.NoContainer,
	}
}

// Selected returns the chosen source, false when the selection is empty
func (c *Controller) Selected() (core.ContainerID, bool) {
	return c.source, c.source != core.NoContainer
}

// Pick applies one discrete pick to the selection
func (c *Controller) Pick(id core.ContainerID) Outcome {
	c.frame++
	picked, ok := c.board.Container(id)
	if !ok {
		c.logger.Debug("pick ignored, unknown container", zap.Stringer("container", id))
		return OutcomeIgnored
	}

	if c.source == core.NoContainer {
		return c.pickSource(picked)
	}

	if id == c.source {
		c.source = core.NoContainer
		c.logger.Debug("deselected", zap.Stringer("container", id))
		c.emitSelection(event.EventSelectionChanged, id)
		return OutcomeDeselected
	}

	if picked.Busy() {
		c.logger.Debug("destination busy", zap.Stringer("container", id))
		c.emitSelection(event.EventPickBusy, id)
		return OutcomeBusy
	}

	return c.pickDestination(picked)
}

func (c *Controller) pickSource(picked *container.Container) Outcome {
	id := picked.ID()
	if picked.Busy() {
		c.logger.Debug("source busy", zap.Stringer("container", id))
		c.emitSelection(event.EventPickBusy, id)
		return OutcomeBusy
	}
	c.source = id
	c.logger.Debug("source selected", zap.Stringer("container", id))
	c.emitSelection(event.EventSelectionChanged, id)
	return OutcomeSelected
}

func (c *Controller) pickDestination(dst *container.Container) Outcome {
	src, ok := c.board.Container(c.source)
	c.source = core.NoContainer
	if !ok {
		c.emitSelection(event.EventSelectionChanged, dst.ID())
		return OutcomeIgnored
	}

	intent := pour.Intent{Source: src.ID(), Destination: dst.ID()}
	if _, legal := pour.Resolve(src, dst); !legal {
		c.reject(src, intent, pour.ErrIllegalPour)
		return OutcomeRejected
	}

	plan, err := c.board.StartPour(intent)
	if err != nil {
		c.reject(src, intent, err)
		return OutcomeRejected
	}

	c.logger.Debug("pour committed",
		zap.Stringer("source", intent.Source),
		zap.Stringer("destination", intent.Destination),
		zap.Stringer("color", plan.Color),
		zap.Int("count", plan.Count))
	c.emitSelection(event.EventSelectionChanged, dst.ID())
	return OutcomePoured
}

func (c *Controller) reject(src *container.Container, intent pour.Intent, err error) {
	if errors.Is(err, pour.ErrIllegalPour) {
		c.logger.Debug("pour rejected",
			zap.Stringer("source", intent.Source),
			zap.Stringer("destination", intent.Destination))
	} else {
		c.logger.Warn("board refused pour", zap.Error(err))
	}

	c.emit(event.EventPourRejected, &event.PourPayload{
		Source:      intent.Source,
		Destination: intent.Destination,
		Color:       src.TopColor(),
	})
	c.emitSelection(event.EventSelectionChanged, intent.Destination)
}

// ValidTargets lists idle containers the chosen source can pour into
func (c *Controller) ValidTargets() []core.ContainerID {
	src, ok := c.board.Container(c.source)
	if !ok {
		return nil
	}

	var out []core.ContainerID
	for _, dst := range c.board.Containers() {
		if dst.Busy() {
			continue
		}
		if _, legal := pour.Resolve(src, dst); legal {
			out = append(out, dst.ID())
		}
	}
	return out
}

// Reset clears the selection
func (c *Controller) Reset() {
	if c.source == core.NoContainer {
		return
	}
	prev := c.source
	c.source = core.NoContainer
	c.emitSelection(event.EventSelectionChanged, prev)
}

// emitSelection publishes the selection state after a pick of id
func (c *Controller) emitSelection(et event.EventType, id core.ContainerID) {
	c.emit(et, &event.SelectionPayload{
		Selected: c.source,
		Picked:   id,
		Targets:  c.ValidTargets(),
	})
}

func (c *Controller) emit(et event.EventType, payload any) {
	if c.bus == nil {
		return
	}
	c.bus.Emit(event.GameEvent{Type: et, Payload: payload, Frame: c.frame})
}
