package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerOutput plays through the system speaker without a game window.
// Cues are mixed so overlapping sounds do not cut each other off.
type SpeakerOutput struct {
	mixer *beep.Mixer
}

var speakerOnce = sync.OnceValue(func() error {
	rate := beep.SampleRate(SampleRate)
	return speaker.Init(rate, rate.N(time.Second/10))
})

// NewSpeakerOutput initialises the speaker at SampleRate and starts the mixer.
func NewSpeakerOutput() (*SpeakerOutput, error) {
	if err := speakerOnce(); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	o := &SpeakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(o.mixer)
	return o, nil
}

func (o *SpeakerOutput) Play(pcm []byte, volume float64) {
	speaker.Lock()
	o.mixer.Add(NewPCMStreamer(pcm, volume))
	speaker.Unlock()
}

// Close silences anything still playing.
func (o *SpeakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
}

// PCMStreamer streams a buffer produced by PCM, scaled by a gain.
type PCMStreamer struct {
	pcm  []byte
	pos  int
	gain float64
}

func NewPCMStreamer(pcm []byte, gain float64) *PCMStreamer {
	return &PCMStreamer{pcm: pcm, gain: gain}
}

func (s *PCMStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && s.pos+bytesPerFrame <= len(s.pcm) {
		l := int16(binary.LittleEndian.Uint16(s.pcm[s.pos:]))
		r := int16(binary.LittleEndian.Uint16(s.pcm[s.pos+2:]))
		samples[n][0] = float64(l) / math.MaxInt16 * s.gain
		samples[n][1] = float64(r) / math.MaxInt16 * s.gain
		s.pos += bytesPerFrame
		n++
	}
	return n, n > 0
}

func (s *PCMStreamer) Err() error { return nil }

// Len is the stream length in frames.
func (s *PCMStreamer) Len() int { return len(s.pcm) / bytesPerFrame }
