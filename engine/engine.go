// Package engine is the game controller: it owns the board, the active and
// queued pieces, score state and the mode policy, and exposes the player
// action API. All methods are safe for concurrent use; they serialize on one
// lock, and events are delivered to the sink after the lock is released.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/clock"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/scoring"
	"github.com/plus3/fruitris/store"
	"github.com/plus3/fruitris/timer"
)

// Rules holds the timing and feature knobs of the lock pipeline.
type Rules struct {
	// ClearDelay is how long cleared rows animate before they are removed.
	ClearDelay time.Duration
	// DecayDelay is how long after a multiplier bump its decay fires.
	DecayDelay time.Duration
	// NoticeTTL is how long a combo notice stays visible.
	NoticeTTL time.Duration
	// QueueLength is the number of upcoming pieces shown.
	QueueLength int
	// FruitCombos enables same-fruit cluster bonuses.
	FruitCombos bool
}

// DefaultRules returns the standard timings with fruit combos on.
func DefaultRules() Rules {
	return Rules{
		ClearDelay:  400 * time.Millisecond,
		DecayDelay:  5 * time.Second,
		NoticeTTL:   2 * time.Second,
		QueueLength: 3,
		FruitCombos: true,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the persistence backend. It is always wrapped in
// store.Safe.
func WithStore(kv store.KV) Option {
	return func(e *Engine) { e.kv = kv }
}

// WithSink sets the receiver of engine notifications. A nil sink is ignored.
func WithSink(sink event.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithClock sets the time source for clear windows, timers and mode clocks.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithSource deals every game from src instead of a fresh bag.
func WithSource(src piece.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.newSource = func() piece.Source { return src }
		}
	}
}

// WithSeed deals each game from a bag seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.newSource = func() piece.Source { return piece.NewSeededBag(seed) }
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithRules replaces the default rules.
func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

// ComboRecord is one entry of the combo history.
type ComboRecord struct {
	Fruit    piece.Kind
	Size     int
	Bonus    int
	Level    int
	Patterns board.Pattern
}

// ComboNotice is the transient combo banner.
type ComboNotice struct {
	Bonus      int
	Size       int
	Multiplier float64
	Shown      time.Time
}

type pendingClear struct {
	rows    []int
	started time.Time
	combo   int
	tSpin   bool
	perfect bool
}

// Engine is a single game instance.
type Engine struct {
	mu sync.Mutex

	rules     Rules
	clock     clock.Clock
	sink      event.Sink
	kv        store.KV
	store     *store.Safe
	log       *slog.Logger
	newSource func() piece.Source

	source   piece.Source
	timers   *timer.Queue
	pipeline *Pipeline
	out      event.Outbox

	state      State
	mode       mode.Policy
	board      *board.Board
	current    *piece.Piece
	ghost      piece.Point
	held       piece.Kind
	canHold    bool
	queue      []piece.Kind
	pending    *pendingClear
	dropTimer  time.Duration
	lastRotate bool

	score      int
	level      int
	startLevel int
	lines      int
	backToBack bool
	softDrop   int

	multiplier  scoring.Multiplier
	totalCombos int
	lastCombo   int
	history     []ComboRecord
	notice      *ComboNotice
	noticeTimer timer.ID
}

// New creates an engine in the menu state.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules: DefaultRules(),
		clock: clock.System{},
		sink:  event.Discard,
		log:   slog.New(slog.DiscardHandler),
		newSource: func() piece.Source {
			return piece.NewBag(nil)
		},
		timers: timer.NewQueue(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules.QueueLength < 1 {
		e.rules.QueueLength = 1
	}
	e.store = store.NewSafe(e.kv, e.log)

	e.pipeline = NewPipeline()
	e.pipeline.Register(&TimerStage{engine: e})
	e.pipeline.Register(&ModeClockStage{engine: e})
	e.pipeline.Register(&ClearStage{engine: e})
	e.pipeline.Register(&GravityStage{engine: e})

	e.resetLocked()
	return e
}

// unlockAndFlush releases the lock and then delivers the step's events, so
// sinks may call back into the engine.
func (e *Engine) unlockAndFlush() {
	box := e.out
	e.out = event.Outbox{}
	e.mu.Unlock()
	box.Flush(e.sink)
}

func (e *Engine) emit(ev event.Event) {
	e.out.Emit(ev)
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.state = s
	e.emit(event.Event{Kind: event.StateChanged, State: s.String()})
}

// resetLocked discards the session and returns to the menu.
func (e *Engine) resetLocked() {
	e.timers.Clear()
	e.mode = nil
	e.board = board.New()
	e.source = nil
	e.queue = nil
	e.current = nil
	e.ghost = piece.Point{}
	e.held = piece.None
	e.canHold = true
	e.pending = nil
	e.dropTimer = 0
	e.lastRotate = false

	e.score = 0
	e.startLevel = scoring.MinLevel
	e.level = scoring.MinLevel
	e.lines = 0
	e.backToBack = false
	e.softDrop = 0

	e.multiplier = scoring.BaseMultiplier
	e.totalCombos = 0
	e.lastCombo = 0
	e.history = nil
	e.notice = nil
	e.noticeTimer = 0

	e.setState(Menu)
}

// Update advances the game by dt. Outside Playing only scheduled timers
// run.
func (e *Engine) Update(dt time.Duration) {
	e.mu.Lock()
	defer e.unlockAndFlush()

	frame := &Frame{Delta: dt, Now: e.clock.Now(), Events: &e.out}
	e.pipeline.Once(frame)
}

// Run drives Update from a ticker until ctx is cancelled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := e.clock.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := e.clock.Now()
			dt := now.Sub(last)
			last = now
			e.Update(dt)
		}
	}
}

// Stats returns per-stage timing of Update.
func (e *Engine) Stats() PipelineStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pipeline.Stats()
}

// State reports the session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Score is the running session score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Level is the current level, starting at 1.
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Lines is the number of rows cleared this session.
func (e *Engine) Lines() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lines
}

// HighScore returns the best score on record.
func (e *Engine) HighScore() int {
	return e.store.Int(store.KeyHighScore, 0)
}

// Store exposes the engine's persistence wrapper for preferences.
func (e *Engine) Store() *store.Safe {
	return e.store
}

// DropInterval is the current gravity period.
func (e *Engine) DropInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropInterval()
}

func (e *Engine) dropInterval() time.Duration {
	if e.mode != nil {
		if d, ok := e.mode.DropSpeedOverride(); ok {
			return d
		}
	}
	return scoring.DropInterval(e.level)
}

// ComboStats summarises fruit combos this session.
type ComboStats struct {
	TotalCombos int
	Multiplier  float64
	LastSize    int
	History     []ComboRecord
}

// ComboStats returns a snapshot of the combo counters and history.
func (e *Engine) ComboStats() ComboStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.comboStats()
}

func (e *Engine) comboStats() ComboStats {
	history := make([]ComboRecord, len(e.history))
	copy(history, e.history)
	return ComboStats{
		TotalCombos: e.totalCombos,
		Multiplier:  float64(e.multiplier),
		LastSize:    e.lastCombo,
		History:     history,
	}
}
