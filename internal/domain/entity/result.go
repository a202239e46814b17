package entity

// Outcome classifies how a movement tick was resolved
type Outcome int

const (
	// OutcomeIdle means the body had no velocity and nothing was resolved
	OutcomeIdle Outcome = iota
	// OutcomeResolved means the body moved without hitting a solid tile
	OutcomeResolved
	// OutcomeBlocked means at least one velocity axis was stopped by a solid tile
	OutcomeBlocked
	// OutcomeSlopeRedirected means a slope redirected velocity and ended the tick early
	OutcomeSlopeRedirected
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeResolved:
		return "resolved"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeSlopeRedirected:
		return "slope"
	default:
		return "unknown"
	}
}

// MoveResult is the result of Body.UpdateMovement
type MoveResult struct {
	Outcome   Outcome
	Colliders []Collider // candidates processed, for diagnostics
}
