package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/liquid-sort/constants"
)

const (
	sampleRate = beep.SampleRate(constants.AudioSampleRate)

	envelopeAttack  = 10 * time.Millisecond
	envelopeRelease = 60 * time.Millisecond

	pourAmplitude   = 0.25
	rejectAmplitude = 0.2
	solvedAmplitude = 0.3
)

// sweep is a sine whose frequency glides from lo to hi over its duration
type sweep struct {
	rate    beep.SampleRate
	lo, hi  float64
	phase   float64
	pos     int
	samples int
	amp     float64
}

func newSweep(lo, hi float64, d time.Duration, amp float64, rate beep.SampleRate) *sweep {
	return &sweep{rate: rate, lo: lo, hi: hi, samples: rate.N(d), amp: amp}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.samples {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.samples)
		freq := s.lo + (s.hi-s.lo)*progress

		v := s.amp * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// buzz is a low tone with odd harmonics, harsh enough to read as a refusal
type buzz struct {
	rate    beep.SampleRate
	freq    float64
	pos     int
	samples int
	amp     float64
}

func newBuzz(freq float64, d time.Duration, amp float64, rate beep.SampleRate) *buzz {
	return &buzz{rate: rate, freq: freq, samples: rate.N(d), amp: amp}
}

func (b *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.samples {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.rate)
		v := 0.6*math.Sin(2*math.Pi*b.freq*t) +
			0.3*math.Sin(2*math.Pi*b.freq*2*t) +
			0.1*math.Sin(2*math.Pi*b.freq*3*t)
		v *= b.amp
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *buzz) Err() error { return nil }

// envelope fades a stream in over attack and out over the last release samples
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if remaining := e.total - e.pos; e.release > 0 && remaining < e.release {
			gain = math.Min(gain, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// pourDuration grows with the number of units poured
func pourDuration(count int) time.Duration {
	if count < 1 {
		count = 1
	}
	return constants.PourSoundDuration + time.Duration(count-1)*constants.PourSoundDuration/4
}

// newPourSound is a rising glide, like a vessel filling
func newPourSound(count int, rate beep.SampleRate) beep.Streamer {
	d := pourDuration(count)
	s := newSweep(constants.PourSoundLowHz, constants.PourSoundHighHz, d, pourAmplitude, rate)
	return newEnvelope(s, d, envelopeAttack, envelopeRelease, rate)
}

func newRejectSound(rate beep.SampleRate) beep.Streamer {
	d := constants.RejectSoundDuration
	return newEnvelope(newBuzz(constants.RejectSoundHz, d, rejectAmplitude, rate), d, envelopeAttack/2, envelopeRelease/2, rate)
}

// newSolvedSound plays the solved arpeggio note by note
func newSolvedSound(rate beep.SampleRate) beep.Streamer {
	d := constants.SolvedNoteDuration
	notes := make([]beep.Streamer, len(constants.SolvedNotes))
	for i, hz := range constants.SolvedNotes {
		notes[i] = newEnvelope(newSweep(hz, hz, d, solvedAmplitude, rate), d, envelopeAttack, envelopeRelease, rate)
	}
	return beep.Seq(notes...)
}

// withVolume applies a base-2 volume exponent
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume}
}
