package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer size
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultAudioVolume is the base volume exponent offset, 0 = unity gain
	DefaultAudioVolume = 0.0

	// MinAudioVolume and MaxAudioVolume bound the configurable volume exponent
	MinAudioVolume = -8.0
	MaxAudioVolume = 2.0
)

// Pour Sound Timing
const (
	PourSoundDuration = 400 * time.Millisecond
	PourSoundLowHz    = 180.0
	PourSoundHighHz   = 420.0
)

// Reject Sound Timing
const (
	RejectSoundDuration = 150 * time.Millisecond
	RejectSoundHz       = 120.0
)

// Solved Sound Timing
const (
	SolvedNoteDuration = 160 * time.Millisecond
)

// SolvedNotes is the arpeggio played when a level is solved
var SolvedNotes = []float64{523.25, 659.25, 783.99, 1046.5}
