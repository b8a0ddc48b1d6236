package sound

import (
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/store"
)

// masterGain scales the player volume down to the level cues are mixed at.
const masterGain = 0.3

// Output plays a rendered PCM buffer at the given volume.
type Output interface {
	Play(pcm []byte, volume float64)
}

// ContextOutput plays through an ebiten audio context.
type ContextOutput struct {
	Context *audio.Context
}

// NewContextOutput returns the process-wide audio context, creating it at
// SampleRate on first use.
func NewContextOutput() ContextOutput {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	return ContextOutput{Context: ctx}
}

func (o ContextOutput) Play(pcm []byte, volume float64) {
	p := o.Context.NewPlayerFromBytes(pcm)
	p.SetVolume(volume)
	p.Play()
}

// Player is an event.Sink that plays the cue of each event it is given.
// Cues are rendered on first use and cached.
type Player struct {
	mu     sync.Mutex
	out    Output
	log    *slog.Logger
	volume float64
	muted  bool
	rate   int
	cache  map[string][]byte
}

// NewPlayer creates a player with the given preferences. A nil logger
// discards.
func NewPlayer(out Output, settings store.Settings, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{
		out:    out,
		log:    logger,
		volume: max(0, min(settings.Volume, 1)),
		muted:  settings.Muted,
		rate:   SampleRate,
		cache:  make(map[string][]byte),
	}
}

func (p *Player) Notify(e event.Event) {
	p.Play(e.Kind.Cue())
}

// Play plays a cue by name. Unknown names and a muted player are ignored.
func (p *Player) Play(name string) {
	if name == "" {
		return
	}
	p.mu.Lock()
	if p.muted || p.out == nil {
		p.mu.Unlock()
		return
	}
	pcm, ok := p.cache[name]
	if !ok {
		cue, known := Cues[name]
		if !known {
			p.mu.Unlock()
			p.log.Warn("unknown sound cue", "cue", name)
			return
		}
		pcm = PCM(cue.Samples(p.rate))
		p.cache[name] = pcm
	}
	volume := p.volume * masterGain
	out := p.out
	p.mu.Unlock()

	out.Play(pcm, volume)
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// ToggleMute flips the mute flag and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets the volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = max(0, min(v, 1))
}

// Apply copies the player's mute and volume into settings.
func (p *Player) Apply(settings *store.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	settings.Muted = p.muted
	settings.Volume = p.volume
}
