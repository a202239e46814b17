package config

import (
	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

// PhysicsConfig is the root config for physics.json / physics.yaml
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display" yaml:"display"`
	World     WorldConfig     `json:"world" yaml:"world"`
	Movement  MovementConfig  `json:"movement" yaml:"movement"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

// WorldConfig holds the defaults applied to every body that does not override them
type WorldConfig struct {
	Gravity     float64 `json:"gravity" yaml:"gravity"`
	Friction    XY      `json:"friction" yaml:"friction"`
	MaxVelocity XY      `json:"maxVelocity" yaml:"maxVelocity"` // units per tick
	Accel       XY      `json:"accel" yaml:"accel"`             // units per second
	TickDelta   float64 `json:"tickDelta" yaml:"tickDelta"`
}

type MovementConfig struct {
	JumpForce  float64 `json:"jumpForce" yaml:"jumpForce"`
	ClimbSpeed float64 `json:"climbSpeed" yaml:"climbSpeed"`
}

type CollisionConfig struct {
	MaxPushOut float64 `json:"maxPushOut" yaml:"maxPushOut"` // max distance a body is pushed out of solid tiles per axis
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// XY is a config pair
type XY struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec converts to a vector
func (v XY) Vec() vec.Vector2 {
	return vec.New(v.X, v.Y)
}

func (v *XY) ptr() *vec.Vector2 {
	if v == nil {
		return nil
	}
	out := v.Vec()
	return &out
}

// Defaults converts the world section into body defaults
func (c *PhysicsConfig) Defaults() entity.Defaults {
	return entity.Defaults{
		Friction:    c.World.Friction.Vec(),
		Gravity:     c.World.Gravity,
		MaxVelocity: c.World.MaxVelocity.Vec(),
		Accel:       c.World.Accel.Vec(),
		TickDelta:   c.World.TickDelta,
	}
}

// TickSeconds returns the duration of one tick, 1/60s when the framerate is unset
func (c *PhysicsConfig) TickSeconds() float64 {
	if c.Display.Framerate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.Display.Framerate)
}
