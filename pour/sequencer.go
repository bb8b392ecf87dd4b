package pour

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/container"
	"github.com/lixenwraith/liquid-sort/engine/fsm"
	"github.com/lixenwraith/liquid-sort/event"
)

// Phase is the sequencer state
type Phase fsm.StateID

const (
	PhaseIdle Phase = iota + 1
	PhaseApproaching
	PhasePouring
	PhaseSettling
	PhaseReturning
)

var phaseNames = map[Phase]string{
	PhaseIdle:        "Idle",
	PhaseApproaching: "Approaching",
	PhasePouring:     "Pouring",
	PhaseSettling:    "Settling",
	PhaseReturning:   "Returning",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// CompleteFunc is notified once when a sequencer returns to Idle
type CompleteFunc func(s *Sequencer)

// Sequencer drives one pour: approach, tilt and transfer, tilt back, return
// Advanced only by Tick; container mutation happens only while Pouring
// There is no cancellation: a sequencer that stops receiving ticks stays in its phase
type Sequencer struct {
	id     string
	cfg    Config
	src    *container.Container
	dst    *container.Container
	plan   Plan
	logger *zap.Logger

	onRepaint  container.RepaintFunc
	onComplete CompleteFunc

	machine *fsm.Machine[*Sequencer]
	dt      time.Duration // Delta of the tick in progress

	started  bool
	finished bool
	faulted  bool

	// Phase progress t in [0,1]
	progress float64

	// Visual state
	angle       float64
	targetAngle float64
	offset      float64

	// Transfer bookkeeping, captured on Approaching entry
	srcLenBefore int
	dstLenBefore int
	srcStartFill float64
	srcEndFill   float64
	srcShownFill float64
	dstStartFill float64
	dstEndFill   float64
	dstShownFill float64
	moved        int
	carry        float64 // Fractional units owed by the fill curve, not yet moved
}

// SequencerOption configures a Sequencer
type SequencerOption func(*Sequencer)

// WithRepaintFunc routes per-tick visual state to the render collaborator
func WithRepaintFunc(fn container.RepaintFunc) SequencerOption {
	return func(s *Sequencer) { s.onRepaint = fn }
}

// WithCompleteFunc registers the Idle-entry notification
func WithCompleteFunc(fn CompleteFunc) SequencerOption {
	return func(s *Sequencer) { s.onComplete = fn }
}

// WithSequencerLogger sets the logger, nil keeps the no-op logger
func WithSequencerLogger(logger *zap.Logger) SequencerOption {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSequencer builds an Idle sequencer for plan; Start commits it
func NewSequencer(cfg Config, src, dst *container.Container, plan Plan, opts ...SequencerOption) (*Sequencer, error) {
	if src == nil || dst == nil || src == dst {
		return nil, fmt.Errorf("%w: sequencer needs two distinct containers", ErrIllegalPour)
	}
	if plan.Count <= 0 || !plan.Color.Valid() {
		return nil, fmt.Errorf("%w: empty plan %+v", ErrIllegalPour, plan)
	}

	s := &Sequencer{
		id:      uuid.NewString(),
		cfg:     cfg,
		src:     src,
		dst:     dst,
		plan:    plan,
		logger:  zap.NewNop(),
		machine: fsm.NewMachine[*Sequencer](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(
		zap.String("pour_id", s.id),
		zap.Stringer("source", src.ID()),
		zap.Stringer("destination", dst.ID()))

	s.buildMachine()
	if err := s.machine.Init(s, fsm.StateID(PhaseIdle)); err != nil {
		return nil, fmt.Errorf("sequencer fsm: %w", err)
	}
	return s, nil
}

func (s *Sequencer) buildMachine() {
	m := s.machine

	m.AddState(fsm.StateID(PhaseIdle), PhaseIdle.String()).
		Enter((*Sequencer).enterIdle)
	m.AddState(fsm.StateID(PhaseApproaching), PhaseApproaching.String()).
		Enter((*Sequencer).enterApproaching).
		Update((*Sequencer).updateApproaching)
	m.AddState(fsm.StateID(PhasePouring), PhasePouring.String()).
		Enter((*Sequencer).enterPouring).
		Update((*Sequencer).updatePouring)
	m.AddState(fsm.StateID(PhaseSettling), PhaseSettling.String()).
		Enter((*Sequencer).enterSettling).
		Update((*Sequencer).updateSettling)
	m.AddState(fsm.StateID(PhaseReturning), PhaseReturning.String()).
		Enter((*Sequencer).enterReturning).
		Update((*Sequencer).updateReturning)

	m.AddTransition(fsm.StateID(PhaseIdle), fsm.Transition[*Sequencer]{
		TargetID: fsm.StateID(PhaseApproaching),
		Event:    event.EventPourCommit,
		Guard:    func(s *Sequencer) bool { return !s.started },
	})
	m.AddTransition(fsm.StateID(PhaseApproaching), fsm.Transition[*Sequencer]{
		TargetID: fsm.StateID(PhasePouring),
		Guard:    (*Sequencer).phaseDone,
	})
	m.AddTransition(fsm.StateID(PhasePouring), fsm.Transition[*Sequencer]{
		TargetID: fsm.StateID(PhaseSettling),
		Guard:    (*Sequencer).pourDone,
	})
	m.AddTransition(fsm.StateID(PhaseSettling), fsm.Transition[*Sequencer]{
		TargetID: fsm.StateID(PhaseReturning),
		Guard:    (*Sequencer).phaseDone,
	})
	m.AddTransition(fsm.StateID(PhaseReturning), fsm.Transition[*Sequencer]{
		TargetID: fsm.StateID(PhaseIdle),
		Guard:    (*Sequencer).phaseDone,
	})
}

// Start commits the plan: Idle -> Approaching
func (s *Sequencer) Start() error {
	if s.started {
		return ErrAlreadyStarted
	}
	if !s.machine.HandleEvent(s, event.EventPourCommit) {
		return ErrAlreadyStarted
	}
	return nil
}

// Tick advances the active phase by dt of game time
func (s *Sequencer) Tick(dt time.Duration) {
	if !s.started || s.finished {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.dt = dt
	s.machine.Update(s, dt)
}

func (s *Sequencer) ID() string                        { return s.id }
func (s *Sequencer) Plan() Plan                        { return s.plan }
func (s *Sequencer) Source() *container.Container      { return s.src }
func (s *Sequencer) Destination() *container.Container { return s.dst }
func (s *Sequencer) Phase() Phase                      { return Phase(s.machine.State()) }
func (s *Sequencer) Progress() float64                 { return s.progress }
func (s *Sequencer) Angle() float64                    { return s.angle }
func (s *Sequencer) TargetAngle() float64              { return s.targetAngle }
func (s *Sequencer) Moved() int                        { return s.moved }
func (s *Sequencer) Carry() float64                    { return s.carry }
func (s *Sequencer) Started() bool                     { return s.started }

// Done reports whether the sequencer returned to Idle after running
func (s *Sequencer) Done() bool { return s.finished }

// Faulted reports whether the transfer hit an inconsistent container state
func (s *Sequencer) Faulted() bool { return s.faulted }

// Intent returns the source/destination pair
func (s *Sequencer) Intent() Intent {
	return Intent{Source: s.src.ID(), Destination: s.dst.ID()}
}

// === Phase actions ===

func (s *Sequencer) enterIdle(_ any) {
	if !s.started {
		return
	}

	s.angle = 0
	s.offset = 0
	s.progress = 0
	s.src.SetBusy(false)
	s.dst.SetBusy(false)
	s.finished = true

	s.emit(s.src.Snapshot())
	s.emit(s.dst.Snapshot())

	s.logger.Debug("pour complete",
		zap.Stringer("color", s.plan.Color),
		zap.Int("count", s.plan.Count),
		zap.Int("transitions", s.machine.Transitions()))

	if s.onComplete != nil {
		s.onComplete(s)
	}
}

func (s *Sequencer) enterApproaching(_ any) {
	s.started = true
	s.src.SetBusy(true)
	s.dst.SetBusy(true)

	capacity := s.src.Capacity()
	s.srcLenBefore = s.src.Len()
	s.dstLenBefore = s.dst.Len()
	s.srcStartFill = s.cfg.FillLevel(s.srcLenBefore, capacity)
	s.srcEndFill = s.cfg.FillLevel(s.srcLenBefore-s.plan.Count, capacity)
	s.srcShownFill = s.srcStartFill
	s.dstStartFill = s.cfg.FillLevel(s.dstLenBefore, s.dst.Capacity())
	s.dstEndFill = s.cfg.FillLevel(s.dstLenBefore+s.plan.Count, s.dst.Capacity())
	s.dstShownFill = s.dstStartFill

	s.progress = 0
	s.logger.Debug("phase", zap.Stringer("phase", PhaseApproaching),
		zap.Stringer("color", s.plan.Color), zap.Int("count", s.plan.Count))
}

func (s *Sequencer) updateApproaching(_ any) {
	s.progress = s.timedProgress(s.cfg.ApproachDuration)
	s.offset = s.progress
	s.emitSource()
}

func (s *Sequencer) enterPouring(_ any) {
	s.progress = 0
	s.angle = 0
	s.offset = 1
	s.targetAngle = s.cfg.TargetAngle(s.src.Capacity(), s.srcLenBefore, s.plan.Count)
	s.logger.Debug("phase", zap.Stringer("phase", PhasePouring),
		zap.Float64("target_angle", s.targetAngle),
		zap.Int("rotation_index", RotationIndex(s.src.Capacity(), s.srcLenBefore, s.plan.Count)))
}

func (s *Sequencer) updatePouring(_ any) {
	if s.progress < 1 {
		if s.cfg.PourDuration <= 0 {
			s.progress = 1
		} else {
			step := s.dt.Seconds() / s.cfg.PourDuration.Seconds() * s.cfg.speed(s.angle)
			s.progress = min(1, s.progress+step)
		}
	}
	s.angle = lerp(0, s.targetAngle, s.progress)

	if s.progress >= 1 {
		// Angle reached target: snap visual fill and owe every remaining unit
		s.angle = s.targetAngle
		s.flowTo(s.srcEndFill)
		s.transferTo(s.plan.Count)
		s.carry = 0
	} else {
		curveFill := s.cfg.FillCurve.Evaluate(s.angle)
		if curveFill < s.srcShownFill-s.cfg.Epsilon {
			s.flowTo(max(curveFill, s.srcEndFill))
		}
	}

	s.emitSource()
	s.emitDestination()
}

// flowTo lowers the displayed source fill and commits the logical units it covers
func (s *Sequencer) flowTo(fill float64) {
	if fill > s.srcShownFill {
		return
	}
	s.srcShownFill = fill

	fraction := 1.0
	if span := s.srcStartFill - s.srcEndFill; span > s.cfg.Epsilon {
		fraction = clamp01((s.srcStartFill - s.srcShownFill) / span)
	} else if s.srcShownFill > s.srcEndFill {
		fraction = 0
	}
	s.dstShownFill = lerp(s.dstStartFill, s.dstEndFill, fraction)

	owed := fraction * float64(s.plan.Count)
	due := min(s.plan.Count, int(math.Floor(owed+s.cfg.Epsilon)))
	s.transferTo(due)
	s.carry = max(0, owed-float64(s.moved))
}

// transferTo moves single units until moved == due
func (s *Sequencer) transferTo(due int) {
	for s.moved < due && !s.faulted {
		taken := s.src.TakeTopRun(1)
		if len(taken) == 0 {
			s.fault("source ran dry mid-pour")
			return
		}
		if taken[0] != s.plan.Color {
			s.logger.Error("unexpected color in source run",
				zap.Stringer("want", s.plan.Color), zap.Stringer("got", taken[0]))
		}
		if err := s.dst.AddLayers(taken, true); err != nil {
			s.logger.Error("destination rejected unit", zap.Error(err))
		}
		s.moved++
	}
}

func (s *Sequencer) fault(msg string) {
	s.faulted = true
	s.logger.Error(msg,
		zap.Int("moved", s.moved),
		zap.Int("count", s.plan.Count),
		zap.Int("source_len", s.src.Len()))
}

func (s *Sequencer) pourDone() bool {
	return s.progress >= 1 && (s.moved == s.plan.Count || s.faulted)
}

func (s *Sequencer) enterSettling(_ any) {
	s.progress = 0

	// Reconcile logical state with the plan
	wantSrc := s.srcLenBefore - s.plan.Count
	wantDst := s.dstLenBefore + s.plan.Count
	if s.src.Len() != wantSrc || s.dst.Len() != wantDst || s.dst.TopColor() != s.plan.Color {
		s.logger.Error("pour reconciliation mismatch",
			zap.Int("source_len", s.src.Len()), zap.Int("source_want", wantSrc),
			zap.Int("destination_len", s.dst.Len()), zap.Int("destination_want", wantDst),
			zap.Stringer("destination_top", s.dst.TopColor()))
	}

	s.srcShownFill = s.cfg.FillLevel(s.src.Len(), s.src.Capacity())
	s.dstShownFill = s.cfg.FillLevel(s.dst.Len(), s.dst.Capacity())
	s.emitDestination()
	s.logger.Debug("phase", zap.Stringer("phase", PhaseSettling), zap.Int("moved", s.moved))
}

func (s *Sequencer) updateSettling(_ any) {
	s.progress = s.timedProgress(s.cfg.SettleDuration)
	s.angle = lerp(s.targetAngle, 0, s.progress)
	s.emitSource()
}

func (s *Sequencer) enterReturning(_ any) {
	s.progress = 0
	s.angle = 0
	s.logger.Debug("phase", zap.Stringer("phase", PhaseReturning))
}

func (s *Sequencer) updateReturning(_ any) {
	s.progress = s.timedProgress(s.cfg.ReturnDuration)
	s.offset = 1 - s.progress
	s.emitSource()
}

// phaseDone is the guard for duration-timed phases
func (s *Sequencer) phaseDone() bool {
	return s.progress >= 1
}

// timedProgress converts time in the active phase to t in [0,1]
func (s *Sequencer) timedProgress(d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return clamp01(float64(s.machine.TimeInState()) / float64(d))
}

// === Render notifications ===

func (s *Sequencer) emitSource() {
	s.emit(container.Repaint{
		ID:     s.src.ID(),
		Colors: s.src.Layers(),
		Fill:   s.srcShownFill,
		Angle:  s.angle,
		Scale:  s.cfg.scale(s.angle),
		Offset: s.offset,
		Toward: s.dst.ID(),
	})
}

func (s *Sequencer) emitDestination() {
	r := s.dst.Snapshot()
	r.Fill = s.dstShownFill
	s.emit(r)
}

func (s *Sequencer) emit(r container.Repaint) {
	if s.onRepaint != nil {
		s.onRepaint(r)
	}
}
