package mode

import "time"

const RelaxedSpeed = 800 * time.Millisecond

// Relaxed never ends: a blocked spawn wipes the field instead.
type Relaxed struct {
	Recoveries int
}

func NewRelaxed() *Relaxed {
	return &Relaxed{}
}

func (m *Relaxed) ID() ID              { return RelaxedID }
func (m *Relaxed) Name() string        { return "Zen" }
func (m *Relaxed) Description() string { return "Relaxed play, no game over" }

func (m *Relaxed) Initialize() {
	m.Recoveries = 0
}

func (m *Relaxed) Update(time.Duration)  {}
func (m *Relaxed) OnLineClear(_, _ int)  {}
func (m *Relaxed) OnPieceLock()          {}
func (m *Relaxed) CheckCompletion() bool { return false }

func (m *Relaxed) DropSpeedOverride() (time.Duration, bool) {
	return RelaxedSpeed, true
}

func (m *Relaxed) OnSpawnFailure(b Wiper) bool {
	b.Wipe()
	m.Recoveries++
	return true
}

func (m *Relaxed) Progress() Progress {
	return Progress{
		ID:         m.ID(),
		Name:       m.Name(),
		Recoveries: m.Recoveries,
	}
}
