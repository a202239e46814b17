package state

// SimState represents whether the simulation is advancing
type SimState int

const (
	StateRunning SimState = iota
	StatePaused
	StateFinished
)

// String returns the string representation of the simulation state
func (s SimState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// TogglePause switches between running and paused. Finished stays finished.
func (s SimState) TogglePause() SimState {
	switch s {
	case StateRunning:
		return StatePaused
	case StatePaused:
		return StateRunning
	default:
		return s
	}
}
