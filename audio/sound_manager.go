package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/event"
)

// Sound identifies a game sound effect
type Sound int

const (
	SoundPour Sound = iota
	SoundReject
	SoundSolved
)

func (s Sound) String() string {
	switch s {
	case SoundPour:
		return "pour"
	case SoundReject:
		return "reject"
	case SoundSolved:
		return "solved"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

// SoundManager plays game sounds through a single beep mixer
// Safe for concurrent use; every Play is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	logger      *zap.Logger

	// sink receives every started streamer, the speaker mixer by default
	sink func(Sound, beep.Streamer)
}

// NewSoundManager creates a manager with volume as a base-2 exponent, 0 is unity gain
func NewSoundManager(volume float64, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	sm.sink = func(_ Sound, s beep.Streamer) { sm.mixer.Add(s) }
	sm.SetVolume(volume)
	return sm
}

// Initialize opens the speaker; failure leaves the game silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration))
	if err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// The mixer is read on the speaker goroutine
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; an empty mixer is silent
	sm.initialized = false
}

// SetVolume clamps and stores the volume exponent
func (sm *SoundManager) SetVolume(volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(volume, constants.MinAudioVolume), constants.MaxAudioVolume)
}

// Volume returns the current volume exponent
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// SetMuted silences new sounds
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// PlayPour plays the fill glide, longer for larger pours
func (sm *SoundManager) PlayPour(count int) {
	sm.play(SoundPour, func() beep.Streamer { return newPourSound(count, sampleRate) })
}

// PlayReject plays a short buzz
func (sm *SoundManager) PlayReject() {
	sm.play(SoundReject, func() beep.Streamer { return newRejectSound(sampleRate) })
}

// PlaySolved plays the solved arpeggio
func (sm *SoundManager) PlaySolved() {
	sm.play(SoundSolved, func() beep.Streamer { return newSolvedSound(sampleRate) })
}

func (sm *SoundManager) play(sound Sound, build func() beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	s := withVolume(build(), sm.volume)
	speaker.Lock()
	sm.sink(sound, s)
	speaker.Unlock()
}

// Attach plays sounds for pour and level events on bus
func (sm *SoundManager) Attach(bus *event.Bus) []event.Subscription {
	return []event.Subscription{
		bus.Subscribe(event.EventPourStarted, func(ev event.GameEvent) {
			count := 1
			if p, ok := ev.Payload.(*event.PourPayload); ok {
				count = p.Count
			}
			sm.PlayPour(count)
		}),
		bus.Subscribe(event.EventPourRejected, func(event.GameEvent) {
			sm.PlayReject()
		}),
		bus.Subscribe(event.EventLevelSolved, func(event.GameEvent) {
			sm.PlaySolved()
		}),
	}
}
