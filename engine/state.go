package engine

// State is the controller's top-level state.
type State uint8

const (
	// Menu is the initial state and where Quit and Reset return to.
	Menu State = iota
	// Playing accepts player actions and runs gravity.
	Playing
	// Paused freezes the game until it is toggled back.
	Paused
	// GameOver ends a session after a blocked spawn.
	GameOver
	// Completed ends a session whose mode goal was reached.
	Completed
)

var stateNames = [...]string{
	Menu:      "menu",
	Playing:   "playing",
	Paused:    "paused",
	GameOver:  "gameOver",
	Completed: "completed",
}

// String returns the state name used in logs and snapshots.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the session has ended.
func (s State) Terminal() bool {
	return s == GameOver || s == Completed
}
