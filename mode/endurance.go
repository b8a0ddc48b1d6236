package mode

import (
	"time"

	"github.com/plus3/fruitris/store"
)

const EnduranceTarget = 15

// Endurance plays the level-driven speed curve up to a target level. The
// highest level ever reached is kept, completed or not.
type Endurance struct {
	store *store.Safe

	Target    int
	highest   int
	completed bool
	newRecord bool
}

func NewEndurance(s *store.Safe) *Endurance {
	return &Endurance{store: s, Target: EnduranceTarget}
}

func (m *Endurance) ID() ID              { return EnduranceID }
func (m *Endurance) Name() string        { return "Marathon" }
func (m *Endurance) Description() string { return "Reach level 15" }

func (m *Endurance) Initialize() {
	m.completed = false
	m.newRecord = false
	m.highest = m.store.Int(store.KeyEnduranceBest, 1)
}

func (m *Endurance) Update(time.Duration) {}

func (m *Endurance) OnLineClear(lines, level int) {
	if level > m.highest {
		m.highest = level
		m.newRecord = true
		m.store.SetInt(store.KeyEnduranceBest, level)
	}
	if level >= m.Target {
		m.completed = true
	}
}

func (m *Endurance) OnPieceLock() {}

func (m *Endurance) DropSpeedOverride() (time.Duration, bool) {
	return 0, false
}

func (m *Endurance) CheckCompletion() bool {
	return m.completed
}

func (m *Endurance) OnSpawnFailure(Wiper) bool {
	return false
}

func (m *Endurance) Progress() Progress {
	return Progress{
		ID:          m.ID(),
		Name:        m.Name(),
		Completed:   m.completed,
		TargetLevel: m.Target,
		BestLevel:   m.highest,
		NewRecord:   m.newRecord,
	}
}
