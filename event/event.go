// Package event carries the notifications the engine emits for cosmetic
// collaborators such as renderers and sound players.
package event

import (
	"time"

	"github.com/plus3/fruitris/piece"
)

// Kind names a notification.
type Kind uint8

const (
	PieceLocked Kind = iota + 1
	PieceMoved
	PieceRotated
	LineClear
	Tetris
	TSpin
	BackToBack
	PerfectClear
	Combo
	ComboExpired
	LevelUp
	GameOver
	ModeCompleted
	Hold
	SoftDrop
	HardDrop
	ZenRecovery
	ClearStarted
	StateChanged
)

var kindNames = [...]string{
	PieceLocked:   "piece-locked",
	PieceMoved:    "piece-moved",
	PieceRotated:  "piece-rotated",
	LineClear:     "line-clear",
	Tetris:        "tetris",
	TSpin:         "t-spin",
	BackToBack:    "back-to-back",
	PerfectClear:  "perfect-clear",
	Combo:         "combo",
	ComboExpired:  "combo-expired",
	LevelUp:       "level-up",
	GameOver:      "game-over",
	ModeCompleted: "mode-completed",
	Hold:          "hold",
	SoftDrop:      "soft-drop",
	HardDrop:      "hard-drop",
	ZenRecovery:   "zen-recovery",
	ClearStarted:  "clear-started",
	StateChanged:  "state-changed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Cue is the name of the sound played for this kind, or "" for silent
// kinds.
func (k Kind) Cue() string {
	switch k {
	case PieceMoved:
		return "move"
	case PieceRotated:
		return "rotate"
	case HardDrop:
		return "drop"
	case PieceLocked, Hold:
		return "hit"
	case LineClear:
		return "lineClear"
	case Tetris:
		return "tetris"
	case TSpin:
		return "tSpin"
	case PerfectClear:
		return "perfectClear"
	case Combo:
		return "combo"
	case LevelUp:
		return "levelUp"
	case GameOver:
		return "gameOver"
	case ModeCompleted:
		return "success"
	case ZenRecovery:
		return "zenRecovery"
	}
	return ""
}

// Event is a single notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	// Lines is the number of rows cleared (LineClear, Tetris, TSpin).
	Lines int
	// Rows and Cells locate the clearing rows or locked cells.
	Rows  []int
	Cells []piece.Point

	Bonus      int
	Size       int
	Multiplier float64
	Fruit      piece.Kind

	Level    int
	Distance int
	// Active is the new back-to-back streak state.
	Active bool
	// State is the controller state after a StateChanged.
	State string
	// Elapsed is the finishing time of a timed mode.
	Elapsed time.Duration
}

// Sink receives notifications.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) {
	f(e)
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans an event out to several sinks in order.
type Multi []Sink

func (m Multi) Notify(e Event) {
	for _, s := range m {
		s.Notify(e)
	}
}
