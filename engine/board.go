package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/container"
	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/event"
	"github.com/lixenwraith/liquid-sort/pour"
	"github.com/lixenwraith/liquid-sort/status"
)

// BoardConfig describes a playable board
type BoardConfig struct {
	Name     string
	Capacity int
	Pour     pour.Config

	// Stats receives board counters, nil creates a private registry
	Stats *status.Registry
}

// Board owns the containers and every in-flight pour sequencer
// Game-loop owned: not safe for concurrent use
type Board struct {
	cfg        BoardConfig
	containers []*container.Container
	active     []*pour.Sequencer

	bus       *event.Bus
	rejectSub event.Subscription
	logger    *zap.Logger
	frame     int64

	moves  int
	solved bool
	stuck  bool

	// Cached counters
	stats     *status.Registry
	started   *atomic.Int64
	completed *atomic.Int64
	rejected  *atomic.Int64
	faulted   *atomic.Int64
	inFlight  *atomic.Int64
	moveCount *atomic.Int64
	restarts  *atomic.Int64
	solvedF   *atomic.Bool
	stuckF    *atomic.Bool
}

// NewBoard builds a board from bottom-to-top color lists, one per container
// Container IDs are the list indices
func NewBoard(cfg BoardConfig, initial [][]core.Color, bus *event.Bus, logger *zap.Logger) (*Board, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidBoard, cfg.Capacity)
	}
	if len(initial) == 0 || len(initial) > constants.MaxContainers {
		return nil, fmt.Errorf("%w: %d containers, want 1..%d", ErrInvalidBoard, len(initial), constants.MaxContainers)
	}
	if err := cfg.Pour.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	for i, colors := range initial {
		if len(colors) > cfg.Capacity {
			return nil, fmt.Errorf("%w: container %d holds %d, capacity %d", ErrInvalidBoard, i, len(colors), cfg.Capacity)
		}
		for _, c := range colors {
			if !c.Valid() {
				return nil, fmt.Errorf("%w: container %d has invalid color %s", ErrInvalidBoard, i, c)
			}
		}
	}
	if cfg.Stats == nil {
		cfg.Stats = status.NewRegistry()
	}

	b := &Board{
		cfg:    cfg,
		bus:    bus,
		logger: logger.With(zap.String("board", cfg.Name)),
		stats:  cfg.Stats,
	}
	b.cacheCounters()
	b.moveCount.Store(0)
	b.inFlight.Store(0)
	b.solvedF.Store(false)
	b.stuckF.Store(false)

	b.containers = make([]*container.Container, len(initial))
	for i, colors := range initial {
		b.containers[i] = container.New(core.ContainerID(i), cfg.Capacity, colors,
			container.WithLogger(b.logger),
			container.WithRepaint(b.publishRepaint))
	}

	if bus != nil {
		b.rejectSub = bus.Subscribe(event.EventPourRejected, func(event.GameEvent) {
			b.rejected.Add(1)
		})
	}

	b.stats.Strings.Get(status.KeyLevel).Store(cfg.Name)
	b.logger.Info("board created",
		zap.Int("containers", len(b.containers)),
		zap.Int("capacity", cfg.Capacity))
	return b, nil
}

// Close detaches the board from the bus; the board must not be ticked afterwards
func (b *Board) Close() {
	if b.bus != nil {
		b.bus.Unsubscribe(b.rejectSub)
	}
	b.rejectSub = event.Subscription{}
}

func (b *Board) cacheCounters() {
	b.started = b.stats.Ints.Get(status.KeyPoursStarted)
	b.completed = b.stats.Ints.Get(status.KeyPoursCompleted)
	b.rejected = b.stats.Ints.Get(status.KeyPoursRejected)
	b.faulted = b.stats.Ints.Get(status.KeyPoursFaulted)
	b.inFlight = b.stats.Ints.Get(status.KeyPoursActive)
	b.moveCount = b.stats.Ints.Get(status.KeyMoves)
	b.restarts = b.stats.Ints.Get(status.KeyRestarts)
	b.solvedF = b.stats.Bools.Get(status.KeySolved)
	b.stuckF = b.stats.Bools.Get(status.KeyStuck)
}

// Container returns the container with id
func (b *Board) Container(id core.ContainerID) (*container.Container, bool) {
	if id < 0 || int(id) >= len(b.containers) {
		return nil, false
	}
	return b.containers[id], true
}

// Containers returns the board's containers in ID order
func (b *Board) Containers() []*container.Container {
	return b.containers
}

// IsBusy reports whether id takes part in an in-flight pour
func (b *Board) IsBusy(id core.ContainerID) bool {
	c, ok := b.Container(id)
	return ok && c.Busy()
}

func (b *Board) Name() string            { return b.cfg.Name }
func (b *Board) Capacity() int           { return b.cfg.Capacity }
func (b *Board) Active() int             { return len(b.active) }
func (b *Board) Moves() int              { return b.moves }
func (b *Board) Stuck() bool             { return b.stuck }
func (b *Board) Stats() *status.Registry { return b.stats }
func (b *Board) PourConfig() pour.Config { return b.cfg.Pour }

// Solved reports whether every container is empty or a complete stack
func (b *Board) Solved() bool {
	return pour.CheckSolved(b.containers)
}

// StartPour commits a pour from intent.Source into intent.Destination
// The pour is resolved again here, so a stale preview cannot commit an illegal pour
func (b *Board) StartPour(intent pour.Intent) (pour.Plan, error) {
	src, ok := b.Container(intent.Source)
	if !ok {
		return pour.Plan{}, fmt.Errorf("source %s: %w", intent.Source, ErrUnknownContainer)
	}
	dst, ok := b.Container(intent.Destination)
	if !ok {
		return pour.Plan{}, fmt.Errorf("destination %s: %w", intent.Destination, ErrUnknownContainer)
	}
	if src.Busy() {
		return pour.Plan{}, fmt.Errorf("source %s: %w", src.ID(), ErrContainerBusy)
	}
	if dst.Busy() {
		return pour.Plan{}, fmt.Errorf("destination %s: %w", dst.ID(), ErrContainerBusy)
	}

	plan, ok := pour.Resolve(src, dst)
	if !ok {
		return pour.Plan{}, fmt.Errorf("%s -> %s: %w", src.ID(), dst.ID(), pour.ErrIllegalPour)
	}

	seq, err := pour.NewSequencer(b.cfg.Pour, src, dst, plan,
		pour.WithRepaintFunc(b.publishRepaint),
		pour.WithSequencerLogger(b.logger))
	if err != nil {
		return pour.Plan{}, err
	}
	if err := seq.Start(); err != nil {
		return pour.Plan{}, err
	}

	b.active = append(b.active, seq)
	b.moves++
	b.moveCount.Store(int64(b.moves))
	b.started.Add(1)
	b.inFlight.Store(int64(len(b.active)))
	b.stuck = false
	b.stuckF.Store(false)
	b.stats.Strings.Get(status.KeyLastPour).Store(seq.ID())

	b.logger.Debug("pour started",
		zap.String("pour_id", seq.ID()),
		zap.Stringer("source", src.ID()),
		zap.Stringer("destination", dst.ID()),
		zap.Stringer("color", plan.Color),
		zap.Int("count", plan.Count))
	b.emit(event.EventPourStarted, pourPayload(seq))

	return plan, nil
}

// Tick advances every in-flight pour in start order and retires finished ones
func (b *Board) Tick(dt time.Duration) {
	b.frame++
	if len(b.active) == 0 {
		return
	}

	running := b.active
	b.active = make([]*pour.Sequencer, 0, len(running))
	var done []*pour.Sequencer
	for _, s := range running {
		s.Tick(dt)
		if s.Done() {
			done = append(done, s)
		} else {
			b.active = append(b.active, s)
		}
	}
	b.inFlight.Store(int64(len(b.active)))

	for _, s := range done {
		b.complete(s)
	}
}

func (b *Board) complete(s *pour.Sequencer) {
	b.completed.Add(1)
	if s.Faulted() {
		b.faulted.Add(1)
	}
	b.emit(event.EventPourComplete, pourPayload(s))

	if b.Solved() {
		if !b.solved {
			b.solved = true
			b.solvedF.Store(true)
			b.logger.Info("level solved", zap.Int("moves", b.moves))
			b.emit(event.EventLevelSolved, b.levelPayload())
		}
		return
	}

	b.checkStuck()
}

// checkStuck announces a dead end once no pour is in flight
func (b *Board) checkStuck() {
	if len(b.active) > 0 || b.Solved() || pour.HasLegalMove(b.containers) {
		return
	}
	b.stuck = true
	b.stuckF.Store(true)
	b.logger.Info("level stuck", zap.Int("moves", b.moves))
	b.emit(event.EventLevelStuck, b.levelPayload())
}

// Restart restores every container to its initial colors
func (b *Board) Restart() error {
	if len(b.active) > 0 {
		return fmt.Errorf("restart with %d active: %w", len(b.active), ErrPourInFlight)
	}
	for _, c := range b.containers {
		c.Reset()
	}
	b.moves = 0
	b.solved = false
	b.stuck = false
	b.moveCount.Store(0)
	b.solvedF.Store(false)
	b.stuckF.Store(false)
	b.restarts.Add(1)

	b.logger.Info("board restarted")
	b.Publish()
	return nil
}

// Publish emits a repaint for every container and announces the level
// Called once subscribers are wired, and after Restart
// A level with no legal move is reported stuck right after the announcement
func (b *Board) Publish() {
	for _, c := range b.containers {
		b.publishRepaint(c.Snapshot())
	}
	b.emit(event.EventLevelLoaded, b.levelPayload())
	b.checkStuck()
}

func (b *Board) publishRepaint(r container.Repaint) {
	b.emit(event.EventRepaint, &r)
}

func (b *Board) emit(et event.EventType, payload any) {
	if b.bus == nil {
		return
	}
	b.bus.Emit(event.GameEvent{Type: et, Payload: payload, Frame: b.frame})
}

func (b *Board) levelPayload() *event.LevelPayload {
	return &event.LevelPayload{
		Name:       b.cfg.Name,
		Containers: len(b.containers),
		Capacity:   b.cfg.Capacity,
		Moves:      b.moves,
	}
}

func pourPayload(s *pour.Sequencer) *event.PourPayload {
	plan := s.Plan()
	intent := s.Intent()
	return &event.PourPayload{
		PourID:      s.ID(),
		Source:      intent.Source,
		Destination: intent.Destination,
		Color:       plan.Color,
		Count:       plan.Count,
	}
}
