package entity

import "github.com/younwookim/kinebody/internal/domain/vec"

// Snapshot is a read-only copy of a body's kinematic state
type Snapshot struct {
	ID       EntityID
	Name     string
	Type     EntityType
	Position vec.Vector2
	Velocity vec.Vector2
	Falling  bool
	Jumping  bool
	OnLadder bool
	Alive    bool
}

// Snapshot copies the body's current state
func (b *Body) Snapshot() Snapshot {
	return Snapshot{
		ID:       b.id,
		Name:     b.Name,
		Type:     b.Type,
		Position: b.Position,
		Velocity: b.Velocity,
		Falling:  b.falling,
		Jumping:  b.jumping,
		OnLadder: b.onLadder,
		Alive:    b.Alive,
	}
}
