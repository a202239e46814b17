package entity

import (
	"errors"
	"fmt"

	"github.com/younwookim/kinebody/internal/domain/vec"
)

// ErrInvalidSettings is returned by NewBody for settings that violate the body's preconditions
var ErrInvalidSettings = errors.New("invalid body settings")

// Defaults are the world-wide fallbacks for settings a body does not specify
type Defaults struct {
	Friction    vec.Vector2
	Gravity     float64
	MaxVelocity vec.Vector2 // units per tick
	Accel       vec.Vector2 // units per second
	TickDelta   float64     // game time per tick, scales gravity and the friction step; 0 means 1
}

// StandardDefaults returns the stock world defaults: no gravity or friction,
// velocity capped at 15 units/tick and a unit tick.
func StandardDefaults() Defaults {
	return Defaults{
		MaxVelocity: vec.New(15, 15),
		Accel:       vec.New(250, 250),
		TickDelta:   1,
	}
}

// Settings are the per-entity construction properties.
// Pointer fields fall back to Defaults when nil; an explicit zero is honored.
type Settings struct {
	Name string
	Type EntityType

	Size      vec.Vector2 // visual size
	Scale     float64     // uniform scale, 0 means 1
	HitSize   vec.Vector2 // zero means same as Size
	HitOffset vec.Vector2 // hitbox center offset from Position

	Friction    *vec.Vector2
	Gravity     *float64
	MaxVelocity *vec.Vector2
	Accel       *vec.Vector2

	Collidable    *bool // default true
	MapCollidable *bool // default true
}

func (s Settings) validate() error {
	if s.Scale < 0 {
		return fmt.Errorf("%w: negative scale %v", ErrInvalidSettings, s.Scale)
	}
	if s.Size.X < 0 || s.Size.Y < 0 {
		return fmt.Errorf("%w: negative size %v", ErrInvalidSettings, s.Size)
	}
	if s.HitSize.X < 0 || s.HitSize.Y < 0 {
		return fmt.Errorf("%w: negative hit size %v", ErrInvalidSettings, s.HitSize)
	}
	if s.MaxVelocity != nil && (s.MaxVelocity.X < 0 || s.MaxVelocity.Y < 0) {
		return fmt.Errorf("%w: negative max velocity %v", ErrInvalidSettings, *s.MaxVelocity)
	}
	if s.Friction != nil && (s.Friction.X < 0 || s.Friction.Y < 0) {
		return fmt.Errorf("%w: negative friction %v", ErrInvalidSettings, *s.Friction)
	}
	return nil
}

// Validate checks the defaults against the same preconditions as per-entity settings
func (d Defaults) Validate() error {
	if d.MaxVelocity.X < 0 || d.MaxVelocity.Y < 0 {
		return fmt.Errorf("%w: negative default max velocity %v", ErrInvalidSettings, d.MaxVelocity)
	}
	if d.Friction.X < 0 || d.Friction.Y < 0 {
		return fmt.Errorf("%w: negative default friction %v", ErrInvalidSettings, d.Friction)
	}
	if d.TickDelta < 0 {
		return fmt.Errorf("%w: negative tick delta %v", ErrInvalidSettings, d.TickDelta)
	}
	return nil
}

// Float returns a pointer to v, for optional settings
func Float(v float64) *float64 { return &v }

// Vec returns a pointer to (x, y), for optional settings
func Vec(x, y float64) *vec.Vector2 {
	v := vec.New(x, y)
	return &v
}

// Bool returns a pointer to v, for optional settings
func Bool(v bool) *bool { return &v }
