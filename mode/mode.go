// Package mode implements the interchangeable game-mode policies that tune
// drop speed, completion and failure handling on top of the shared rules.
package mode

import (
	"strings"
	"time"

	"github.com/plus3/fruitris/store"
)

// ID names a mode.
type ID string

const (
	TimeAttackID ID = "sprint"
	EnduranceID  ID = "marathon"
	RelaxedID    ID = "zen"
)

// IDs lists the modes in menu order.
var IDs = []ID{TimeAttackID, EnduranceID, RelaxedID}

// Wiper is the slice of the board a mode may touch when recovering from a
// failed spawn.
type Wiper interface {
	Wipe()
}

// Policy customises a game session.
type Policy interface {
	ID() ID
	Name() string
	Description() string

	// Initialize resets per-session progress and reloads best results.
	Initialize()
	// Update advances mode clocks by the time spent playing.
	Update(dt time.Duration)
	// OnLineClear runs after lines are tallied, with the resulting level.
	OnLineClear(lines, level int)
	OnPieceLock()
	// DropSpeedOverride returns a fixed gravity period, or false to use the
	// level-derived one.
	DropSpeedOverride() (time.Duration, bool)
	CheckCompletion() bool
	// OnSpawnFailure reports whether the mode recovered from a blocked
	// spawn. Unhandled failures end the game.
	OnSpawnFailure(b Wiper) bool

	Progress() Progress
}

// Progress is a read-only view of mode state for display.
type Progress struct {
	ID          ID
	Name        string
	Completed   bool
	Elapsed     time.Duration
	Lines       int
	TargetLines int
	TargetLevel int
	BestTime    time.Duration
	HasBestTime bool
	BestLevel   int
	NewRecord   bool
	Recoveries  int
}

// ParseID maps user input, including the descriptive aliases, to a mode ID.
func ParseID(s string) (ID, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sprint", "time-attack", "timeattack", "1":
		return TimeAttackID, true
	case "marathon", "endurance", "2":
		return EnduranceID, true
	case "zen", "relaxed", "3":
		return RelaxedID, true
	}
	return "", false
}

// New builds the policy for id. Unknown ids get the endurance mode.
func New(id ID, s *store.Safe) Policy {
	if s == nil {
		s = store.NewSafe(nil, nil)
	}
	switch id {
	case TimeAttackID:
		return NewTimeAttack(s)
	case RelaxedID:
		return NewRelaxed()
	default:
		return NewEndurance(s)
	}
}
