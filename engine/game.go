package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/event"
	"github.com/lixenwraith/liquid-sort/level"
	"github.com/lixenwraith/liquid-sort/selection"
	"github.com/lixenwraith/liquid-sort/status"
)

// Game ties input, selection, game time and the board into the tick loop
// Every method runs on the game loop goroutine; only queue producers live elsewhere
type Game struct {
	board     *Board
	selection *selection.Controller
	clock     *PausableClock
	queue     *event.Queue
	bus       *event.Bus
	logger    *zap.Logger

	// pending holds a reloaded level until the board is idle
	pending *level.Level
	quit    bool
}

// NewGame wires the loop; logger may be nil
func NewGame(board *Board, sel *selection.Controller, clock *PausableClock, queue *event.Queue, bus *event.Bus, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		board:     board,
		selection: sel,
		clock:     clock,
		queue:     queue,
		bus:       bus,
		logger:    logger,
	}
}

// Board returns the board driven by the loop
func (g *Game) Board() *Board { return g.board }

// Step drains pending input, then advances the board by the clock's delta
// Returns false once quit was requested
func (g *Game) Step() bool {
	for _, ev := range g.queue.Consume() {
		g.handle(ev)
	}
	if g.quit {
		return false
	}
	if g.pending != nil && g.board.Active() == 0 {
		lvl := g.pending
		g.pending = nil
		if err := g.Load(*lvl); err != nil {
			g.logger.Warn("level reload rejected", zap.String("level", lvl.Name), zap.Error(err))
		}
	}

	if dt := g.clock.Step(); dt > 0 {
		g.board.Tick(dt)
	}
	return true
}

// Run steps the game every interval until quit or ctx is done
// frame runs after each step, typically to draw
func (g *Game) Run(ctx context.Context, interval time.Duration, frame func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !g.Step() {
				g.logger.Info("game loop stopped", g.board.Stats().Fields()...)
				return nil
			}
			if frame != nil {
				frame()
			}
		}
	}
}

// Load replaces the board with a fresh one built from lvl
// Pour timing and the stats registry carry over; the selection starts empty
func (g *Game) Load(lvl level.Level) error {
	if g.board.Active() > 0 {
		return fmt.Errorf("load %q: %w", lvl.Name, ErrPourInFlight)
	}
	cfg := BoardConfig{
		Name:     lvl.Name,
		Capacity: lvl.Capacity,
		Pour:     g.board.PourConfig(),
		Stats:    g.board.Stats(),
	}
	next, err := NewBoard(cfg, lvl.Initial(), g.bus, g.logger)
	if err != nil {
		return err
	}

	g.selection.Reset()
	g.board.Close()
	g.board = next
	g.selection = selection.New(next, g.bus, g.logger)
	next.Publish()

	g.logger.Info("level loaded", zap.String("level", lvl.Name))
	return nil
}

func (g *Game) handle(ev event.GameEvent) {
	switch ev.Type {
	case event.EventInputPick:
		id, ok := ev.Payload.(core.ContainerID)
		if !ok {
			g.logger.Warn("pick without container id", zap.Any("payload", ev.Payload))
			return
		}
		if g.clock.IsPaused() {
			return
		}
		outcome := g.selection.Pick(id)
		g.logger.Debug("pick", zap.Stringer("container", id), zap.Stringer("outcome", outcome))

	case event.EventInputRestart:
		if err := g.board.Restart(); err != nil {
			g.logger.Info("restart refused", zap.Error(err))
			return
		}
		g.selection.Reset()

	case event.EventInputPause:
		paused := g.clock.Toggle()
		g.board.Stats().Bools.Get(status.KeyPaused).Store(paused)
		g.logger.Debug("pause toggled", zap.Bool("paused", paused))

	case event.EventInputQuit:
		g.quit = true

	case event.EventLevelReload:
		lvl, ok := ev.Payload.(*level.Level)
		if !ok || lvl == nil {
			g.logger.Warn("reload without level", zap.Any("payload", ev.Payload))
			return
		}
		// Latest edit wins; applied by Step once no pour is in flight
		g.pending = lvl
		return
	}

	// Input is forwarded so the renderer and audio can react
	if g.bus != nil {
		g.bus.Emit(ev)
	}
}
