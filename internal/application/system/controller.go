package system

import (
	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

// Controller turns intents into velocity changes on a body
type Controller struct {
	config *config.PhysicsConfig
	dt     float64
}

// NewController creates a controller ticking at the configured framerate
func NewController(cfg *config.PhysicsConfig) *Controller {
	return &Controller{
		config: cfg,
		dt:     cfg.TickSeconds(),
	}
}

// Apply applies one intent to b and reports whether it had an effect.
// Velocity is not clamped here; the next movement tick clamps it.
func (c *Controller) Apply(b *entity.Body, intent Intent) bool {
	if b == nil || !b.Alive {
		return false
	}

	switch in := intent.(type) {
	case MoveIntent:
		if in.Direction == 0 {
			return false
		}
		b.Velocity.X += float64(in.Direction) * b.Accel.X * c.dt
		return true

	case JumpIntent:
		if b.OnLadder() {
			return false
		}
		return b.Jump(c.config.Movement.JumpForce)

	case ClimbIntent:
		if !b.OnLadder() {
			return false
		}
		b.Velocity.Y = float64(in.Direction) * c.config.Movement.ClimbSpeed
		return true
	}
	return false
}

// ApplyAll applies intents in order and returns how many had an effect
func (c *Controller) ApplyAll(b *entity.Body, intents []Intent) int {
	n := 0
	for _, in := range intents {
		if c.Apply(b, in) {
			n++
		}
	}
	return n
}
