// Package sound turns engine events into short synthesized cues played
// through ebiten's audio package.
package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = 44100

// bytesPerFrame is one 16-bit little-endian stereo frame.
const bytesPerFrame = 4

const (
	attack    = 10 * time.Millisecond
	floorGain = 0.01

	// Melody notes start every noteStep of the note length and ring for
	// noteRing of it.
	noteStep = 0.75
	noteRing = 0.9
)

// Waveform is the oscillator shape of a tone.
type Waveform uint8

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// sample evaluates one period of the waveform at phase in [0, 1).
func (w Waveform) sample(phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	}
	return math.Sin(2 * math.Pi * phase)
}

// envelope ramps up over the attack then decays exponentially to floorGain
// at the end of the note.
func envelope(t, d time.Duration) float64 {
	if t < attack {
		return float64(t) / float64(attack)
	}
	if d <= attack {
		return 1
	}
	progress := float64(t-attack) / float64(d-attack)
	return math.Pow(floorGain, progress)
}

func frames(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}

// Tone renders a single enveloped note as mono samples in [-1, 1].
func Tone(freq float64, d time.Duration, w Waveform, sampleRate int) []float64 {
	n := frames(d, sampleRate)
	out := make([]float64, n)
	for i := range out {
		t := time.Duration(float64(i) / float64(sampleRate) * float64(time.Second))
		phase := math.Mod(freq*float64(i)/float64(sampleRate), 1)
		out[i] = w.sample(phase) * envelope(t, d)
	}
	return out
}

// Cue is a named sound: a single note, or a run of overlapping sine notes
// when Notes has more than one entry.
type Cue struct {
	Notes    []float64
	Duration time.Duration
	Wave     Waveform
}

// Length is how long the rendered cue lasts.
func (c Cue) Length() time.Duration {
	if len(c.Notes) <= 1 {
		return c.Duration
	}
	last := time.Duration(float64(len(c.Notes)-1) * noteStep * float64(c.Duration))
	return last + time.Duration(noteRing*float64(c.Duration))
}

// Samples mixes the cue down to mono samples.
func (c Cue) Samples(sampleRate int) []float64 {
	if len(c.Notes) == 1 {
		return Tone(c.Notes[0], c.Duration, c.Wave, sampleRate)
	}
	out := make([]float64, frames(c.Length(), sampleRate))
	ring := time.Duration(noteRing * float64(c.Duration))
	for i, freq := range c.Notes {
		start := frames(time.Duration(float64(i)*noteStep*float64(c.Duration)), sampleRate)
		for j, s := range Tone(freq, ring, c.Wave, sampleRate) {
			if start+j < len(out) {
				out[start+j] += s
			}
		}
	}
	// Overlapping notes can sum past full scale.
	peak := 0.0
	for _, s := range out {
		peak = max(peak, math.Abs(s))
	}
	if peak > 1 {
		for i := range out {
			out[i] /= peak
		}
	}
	return out
}

// PCM encodes mono samples as 16-bit little-endian stereo, the format
// ebiten's audio players read.
func PCM(samples []float64) []byte {
	buf := make([]byte, len(samples)*bytesPerFrame)
	for i, s := range samples {
		v := int16(max(-1, min(s, 1)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame+2:], uint16(v))
	}
	return buf
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func blip(freq float64, s float64, w Waveform) Cue {
	return Cue{Notes: []float64{freq}, Duration: seconds(s), Wave: w}
}

func melody(s float64, notes ...float64) Cue {
	return Cue{Notes: notes, Duration: seconds(s), Wave: Sine}
}

// Cues maps every cue name an event can ask for to its sound.
var Cues = map[string]Cue{
	"rotate":    blip(240, 0.08, Square),
	"move":      blip(160, 0.04, Sine),
	"drop":      blip(110, 0.12, Sawtooth),
	"hit":       blip(196, 0.06, Square),
	"lineClear": blip(480, 0.25, Triangle),
	"gameOver":  blip(80, 1.0, Sawtooth),

	"levelUp":      melody(0.18, 262, 330, 392, 523),
	"combo":        melody(0.14, 349, 440, 554, 698),
	"tetris":       melody(0.22, 523, 659, 784, 1047),
	"tSpin":        melody(0.16, 466, 587, 698, 932),
	"perfectClear": melody(0.16, 523, 659, 784, 1047, 1319, 1568, 2093),
	"success":      melody(0.15, 523, 659, 784, 1047, 1319, 1568, 2093, 2637),
	"zenRecovery":  melody(0.20, 392, 440, 494, 523),
}
