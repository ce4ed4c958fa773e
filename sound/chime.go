// Package sound synthesizes the effects of the game. Everything is rendered
// to 16-bit little endian stereo PCM up front, ready to be handed to an audio
// player.
package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const SampleRate = beep.SampleRate(44100)

const (
	chimeNoteDuration = 90 * time.Millisecond
	chimeTailDuration = 260 * time.Millisecond
	chimeAttack       = 4 * time.Millisecond
	chimeGap          = 10 * time.Millisecond
)

// chimeBase is the frequency of the first note of a combo (C5).
const chimeBase = 523.25

// chimeSteps are semitones above chimeBase, a pentatonic scale. Each level of
// combo climbs one step, so a streak sounds like a rising melody.
var chimeSteps = [...]float64{0, 2, 4, 7, 9, 12, 14, 16, 19, 21, 24}

// MaxChimeCombo is the combo at which the chime stops climbing. Every combo
// above it sounds the same.
const MaxChimeCombo = int64(len(chimeSteps))

// ChimeFrequency is the pitch of the last note of the chime for a combo.
func ChimeFrequency(combo int64) float64 {
	idx := min(max(combo-1, 0), int64(len(chimeSteps)-1))
	return chimeBase * math.Pow(2, chimeSteps[idx]/12)
}

// ChimeStreamer plays a grace note followed by a bell-like note whose pitch
// grows with combo. volume is linear, 0 is silent and 1 is full scale.
func ChimeStreamer(combo int64, volume float64) (beep.Streamer, error) {
	freq := ChimeFrequency(combo)
	grace, err := bell(freq/math.Pow(2, 5.0/12), chimeNoteDuration)
	if err != nil {
		return nil, err
	}
	note, err := bell(freq, chimeTailDuration)
	if err != nil {
		return nil, err
	}
	return newVolume(beep.Seq(grace, beep.Silence(SampleRate.N(chimeGap)), note), volume), nil
}

// Chime renders ChimeStreamer to PCM.
func Chime(combo int64, volume float64) ([]byte, error) {
	s, err := ChimeStreamer(combo, volume)
	if err != nil {
		return nil, fmt.Errorf("build chime for combo %d: %w", combo, err)
	}
	pcm, err := Render(s)
	if err != nil {
		return nil, fmt.Errorf("render chime for combo %d: %w", combo, err)
	}
	return pcm, nil
}

// bell is a sine fundamental with an octave overtone that dies out faster.
func bell(freq float64, duration time.Duration) (beep.Streamer, error) {
	fund, err := newSine(freq, duration)
	if err != nil {
		return nil, err
	}
	over, err := newSine(2*freq, duration)
	if err != nil {
		return nil, err
	}
	fund = newEnvelope(fund, duration, chimeAttack, duration*3/4)
	over = newEnvelope(over, duration, chimeAttack, duration/3)
	return beep.Mix(newVolume(fund, 0.6), newVolume(over, 0.25)), nil
}

// Render drains s and encodes the samples as 16-bit little endian stereo.
func Render(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(sample[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(sample[1])))
		}
		if !ok {
			break
		}
	}
	return out, s.Err()
}

func toInt16(v float64) int16 {
	v = min(max(v, -1), 1)
	return int16(v * math.MaxInt16)
}

// newSine is a sine tone cut to duration.
func newSine(freq float64, duration time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone at %.1f Hz: %w", freq, err)
	}
	return beep.Take(SampleRate.N(duration), tone), nil
}

// envelope fades a stream in over attack and out over the final release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   SampleRate.N(attack),
		release:  SampleRate.N(release),
		total:    SampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			vol = min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so 0 is made silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
