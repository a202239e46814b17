package system

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

const (
	defaultMaxPushOut = 8.0
	maxPushSteps      = 8
	supportDepth      = 1.0
)

var pushDirections = []vec.Vector2{
	{X: -1}, // left
	{X: 1},  // right
	{Y: -1}, // up
	{Y: 1},  // down
}

// PhysicsSystem advances bodies and keeps them out of solid tiles
type PhysicsSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
	logger *log.Logger
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage, logger *log.Logger) *PhysicsSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PhysicsSystem{
		config: cfg,
		stage:  stage,
		logger: logger,
	}
}

// Update runs one movement tick for b, then pushes it out of any solid tile it ended up in
func (s *PhysicsSystem) Update(b *entity.Body) entity.MoveResult {
	if s.unsupported(b) {
		// Resting bodies are idle, so one whose floor is gone needs gravity seeded
		b.ComputeVelocity(&b.Velocity)
	}
	res := b.UpdateMovement()

	if res.Outcome == entity.OutcomeSlopeRedirected {
		s.logger.Debug("slope redirect", "id", b.ID(), "vel", b.Velocity)
	}

	if b.MapCollidable && s.stage != nil {
		s.resolveOverlap(b)
	}
	return res
}

// unsupported reports whether b is at rest under gravity with no solid tile
// in the strip just beyond its hitbox in the direction of gravity
func (s *PhysicsSystem) unsupported(b *entity.Body) bool {
	if s.stage == nil || !b.MapCollidable || b.Gravity == 0 || b.OnLadder() || !b.Velocity.IsZero() {
		return false
	}

	dir := 1.0
	if b.Gravity < 0 {
		dir = -1
	}
	c := b.HitboxCenter()
	size := b.Hitbox().Size
	strip := vec.New(c.X, c.Y+dir*(size.Y+supportDepth)/2)

	supported := false
	s.stage.EachTile(strip, vec.New(size.X, supportDepth), func(t entity.Tile) {
		if t.Type == entity.TileSolid {
			supported = true
		}
	})
	return !supported
}

func (s *PhysicsSystem) maxPushOut() float64 {
	if s.config == nil || s.config.Collision.MaxPushOut <= 0 {
		return defaultMaxPushOut
	}
	return s.config.Collision.MaxPushOut
}

// resolveOverlap pushes b out of any solid tiles its hitbox overlaps.
// All four directions are tried and the smallest displacement wins.
// Returns false if b was stuck and had to be reset to the stage spawn.
func (s *PhysicsSystem) resolveOverlap(b *entity.Body) bool {
	center := b.HitboxCenter()
	size := b.Hitbox().Size

	if _, hit := s.penetration(center, size, pushDirections[0]); !hit {
		return true // No overlap
	}

	var (
		best     vec.Vector2
		bestDist float64
		found    bool
	)
	for _, dir := range pushDirections {
		d, ok := s.pushDistance(center, size, dir)
		if !ok {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = dir, d, true
		}
	}

	if !found {
		// Can't resolve - reset to spawn position
		s.logger.Warn("body stuck in solid tiles, resetting to spawn", "id", b.ID(), "pos", b.Position)
		b.SetPosition(vec.New(float64(s.stage.SpawnX), float64(s.stage.SpawnY)))
		b.Velocity = vec.Zero()
		return false
	}

	b.SetPosition(b.Position.Add(best.MultiplyScalar(bestDist)))

	if best.X != 0 {
		b.Velocity.X = 0
	}
	if best.Y < 0 {
		b.Land()
	} else if best.Y > 0 {
		b.Velocity.Y = 0
	}
	return true
}

// pushDistance returns how far the rectangle has to move along dir to clear all solid tiles
func (s *PhysicsSystem) pushDistance(center, size, dir vec.Vector2) (float64, bool) {
	limit := s.maxPushOut()
	d := 0.0
	for i := 0; i < maxPushSteps; i++ {
		depth, hit := s.penetration(center.Add(dir.MultiplyScalar(d)), size, dir)
		if !hit {
			return d, true
		}
		d += depth
		if d > limit {
			return 0, false
		}
	}
	return 0, false
}

// penetration returns the deepest overlap, measured along dir, of the rectangle into a solid tile
func (s *PhysicsSystem) penetration(center, size, dir vec.Vector2) (float64, bool) {
	var (
		deepest float64
		hit     bool
	)
	half := size.MultiplyScalar(0.5)

	s.stage.EachTile(center, size, func(t entity.Tile) {
		if t.Type != entity.TileSolid {
			return
		}
		minX, minY, maxX, maxY := s.stage.TileBounds(t.X, t.Y)

		var depth float64
		switch {
		case dir.X < 0:
			depth = center.X + half.X - minX
		case dir.X > 0:
			depth = maxX - (center.X - half.X)
		case dir.Y < 0:
			depth = center.Y + half.Y - minY
		default:
			depth = maxY - (center.Y - half.Y)
		}
		if !hit || depth > deepest {
			deepest = depth
		}
		hit = true
	})
	return deepest, hit
}
