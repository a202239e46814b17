package config

import (
	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

// EntitiesConfig is the root config for entities.json: named body archetypes
type EntitiesConfig struct {
	Entities map[string]EntityConfig `json:"entities" yaml:"entities"`
}

// EntityConfig describes one archetype. Pointer fields fall back to world defaults.
type EntityConfig struct {
	Type   string        `json:"type" yaml:"type"`
	Width  float64       `json:"width" yaml:"width"`
	Height float64       `json:"height" yaml:"height"`
	Scale  float64       `json:"scale,omitempty" yaml:"scale,omitempty"`
	Hitbox *HitboxConfig `json:"hitbox,omitempty" yaml:"hitbox,omitempty"`

	Gravity     *float64 `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	Friction    *XY      `json:"friction,omitempty" yaml:"friction,omitempty"`
	MaxVelocity *XY      `json:"maxVelocity,omitempty" yaml:"maxVelocity,omitempty"`
	Accel       *XY      `json:"accel,omitempty" yaml:"accel,omitempty"`

	Collidable    *bool `json:"collidable,omitempty" yaml:"collidable,omitempty"`
	MapCollidable *bool `json:"mapCollidable,omitempty" yaml:"mapCollidable,omitempty"`
}

type HitboxConfig struct {
	OffsetX float64 `json:"offsetX" yaml:"offsetX"`
	OffsetY float64 `json:"offsetY" yaml:"offsetY"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
}

// Settings converts the archetype into body settings named name
func (c EntityConfig) Settings(name string) entity.Settings {
	s := entity.Settings{
		Name:          name,
		Type:          entity.ParseEntityType(c.Type),
		Size:          vec.New(c.Width, c.Height),
		Scale:         c.Scale,
		Gravity:       c.Gravity,
		Friction:      c.Friction.ptr(),
		MaxVelocity:   c.MaxVelocity.ptr(),
		Accel:         c.Accel.ptr(),
		Collidable:    c.Collidable,
		MapCollidable: c.MapCollidable,
	}
	if c.Hitbox != nil {
		s.HitSize = vec.New(c.Hitbox.Width, c.Hitbox.Height)
		s.HitOffset = vec.New(c.Hitbox.OffsetX, c.Hitbox.OffsetY)
	}
	return s
}
