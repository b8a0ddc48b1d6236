package mode

import (
	"time"

	"github.com/plus3/fruitris/store"
)

const (
	TimeAttackTarget = 40
	TimeAttackSpeed  = 500 * time.Millisecond
)

// TimeAttack races to a fixed line count. The fastest finish is kept.
type TimeAttack struct {
	store *store.Safe

	Target    int
	Cleared   int
	Elapsed   time.Duration
	running   bool
	completed bool

	best      time.Duration
	hasBest   bool
	newRecord bool
}

func NewTimeAttack(s *store.Safe) *TimeAttack {
	return &TimeAttack{store: s, Target: TimeAttackTarget}
}

func (m *TimeAttack) ID() ID              { return TimeAttackID }
func (m *TimeAttack) Name() string        { return "Sprint" }
func (m *TimeAttack) Description() string { return "Clear 40 lines as fast as possible" }

func (m *TimeAttack) Initialize() {
	m.Cleared = 0
	m.Elapsed = 0
	m.completed = false
	m.newRecord = false
	m.running = true
	m.loadBest()
}

func (m *TimeAttack) loadBest() {
	ms := m.store.Int(store.KeyTimeAttackBest, 0)
	m.hasBest = ms > 0
	m.best = time.Duration(ms) * time.Millisecond
}

func (m *TimeAttack) Update(dt time.Duration) {
	if m.running && !m.completed {
		m.Elapsed += dt
	}
}

func (m *TimeAttack) OnLineClear(lines, level int) {
	m.Cleared += lines
	if m.Cleared >= m.Target && !m.completed {
		m.completed = true
		m.running = false
		m.saveBest(m.Elapsed)
	}
}

// saveBest stores t if it beats the stored record, or if there is none.
func (m *TimeAttack) saveBest(t time.Duration) {
	m.loadBest()
	if m.hasBest && t >= m.best {
		return
	}
	m.store.SetInt(store.KeyTimeAttackBest, int(t.Milliseconds()))
	m.best, m.hasBest, m.newRecord = t, true, true
}

func (m *TimeAttack) OnPieceLock() {}

func (m *TimeAttack) DropSpeedOverride() (time.Duration, bool) {
	return TimeAttackSpeed, true
}

func (m *TimeAttack) CheckCompletion() bool {
	return m.completed
}

func (m *TimeAttack) OnSpawnFailure(Wiper) bool {
	m.running = false
	return false
}

func (m *TimeAttack) Progress() Progress {
	return Progress{
		ID:          m.ID(),
		Name:        m.Name(),
		Completed:   m.completed,
		Elapsed:     m.Elapsed,
		Lines:       m.Cleared,
		TargetLines: m.Target,
		BestTime:    m.best,
		HasBestTime: m.hasBest,
		NewRecord:   m.newRecord,
	}
}
