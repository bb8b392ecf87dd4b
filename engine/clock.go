package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock converts real time into game time that stops while paused
// Step hands the game loop the game-time delta since its previous call
type PausableClock struct {
	mu sync.RWMutex

	provider  TimeProvider
	realStart time.Time

	isPaused    atomic.Bool   // Written under mu; read lock-free by IsPaused
	pauseStart  time.Time     // Real time the current pause began
	totalPaused time.Duration // Cumulative completed pauses

	lastStep time.Duration // Game elapsed at the previous Step
	maxStep  time.Duration
}

// NewPausableClock creates a running clock; maxStep caps a single Step, 0 disables the cap
func NewPausableClock(provider TimeProvider, maxStep time.Duration) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider:  provider,
		realStart: provider.Now(),
		maxStep:   maxStep,
	}
}

// Elapsed returns game time since the clock was created
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.elapsedLocked()
}

func (pc *PausableClock) elapsedLocked() time.Duration {
	now := pc.provider.Now()
	if pc.isPaused.Load() {
		now = pc.pauseStart
	}
	return now.Sub(pc.realStart) - pc.totalPaused
}

// Step returns the game time elapsed since the previous Step, capped at maxStep
// Time beyond the cap is dropped, so a stalled frame does not fast-forward pours
func (pc *PausableClock) Step() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	elapsed := pc.elapsedLocked()
	dt := elapsed - pc.lastStep
	pc.lastStep = elapsed

	if dt < 0 {
		return 0
	}
	if pc.maxStep > 0 && dt > pc.maxStep {
		return pc.maxStep
	}
	return dt
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.Load() {
		return
	}
	pc.pauseStart = pc.provider.Now()
	pc.isPaused.Store(true)
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.isPaused.Load() {
		return
	}
	pc.totalPaused += pc.provider.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.isPaused.Store(false)
}

// Toggle flips the pause state and returns true when now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.isPaused.Load() && !pc.pauseStart.IsZero() {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}
