package system

import (
	"fmt"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

// Session runs one stage driven by a single player's input.
// Both the windowed sandbox and the headless simulator step through it.
type Session struct {
	world      *World
	controller *Controller
	player     *entity.Body
	stageName  string
}

// NewSession builds the stage, creates its world and spawns every entity
func NewSession(cfg *config.GameConfig, stageCfg *config.StageConfig, opts ...WorldOption) (*Session, error) {
	stage, err := LoadStage(stageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", stageCfg.Name, err)
	}

	world, err := NewWorld(cfg.Physics, stage, opts...)
	if err != nil {
		return nil, err
	}

	bodies, err := SpawnStage(world, stageCfg, cfg.Entities)
	if err != nil {
		return nil, err
	}

	s := &Session{
		world:      world,
		controller: NewController(cfg.Physics),
		stageName:  stageCfg.Name,
	}
	if len(bodies) > 0 && bodies[0].Name == PlayerArchetype {
		s.player = bodies[0]
	}
	return s, nil
}

// World returns the session's world
func (s *Session) World() *World { return s.world }

// Player returns the player body, nil when the stage has none
func (s *Session) Player() *entity.Body { return s.player }

// StageName returns the loaded stage's name
func (s *Session) StageName() string { return s.stageName }

// Update applies the input to the player, then steps the world once.
// It returns how many intents took effect.
func (s *Session) Update(input InputState) int {
	applied := 0
	if s.player != nil {
		applied = s.controller.ApplyAll(s.player, IntentsFor(s.player.ID(), input))
	}
	s.world.Step()
	return applied
}

// BreakNearPlayer breaks the first breakable solid tile found under the player's
// feet, then beside its left edge, then beside its right edge.
func (s *Session) BreakNearPlayer() bool {
	if s.player == nil || !s.player.Alive || s.world.Stage() == nil {
		return false
	}

	stage := s.world.Stage()
	c := s.player.HitboxCenter()
	half := s.player.Hitbox().Size.MultiplyScalar(0.5)

	probes := [][2]float64{
		{c.X, c.Y + half.Y + 1},
		{c.X - half.X - 1, c.Y},
		{c.X + half.X + 1, c.Y},
	}
	for _, p := range probes {
		if !stage.IsSolidAt(p[0], p[1]) {
			continue
		}
		tile := stage.GetTileAtPoint(p[0], p[1])
		if tile.Breakable && s.world.BreakTile(tile.X, tile.Y) {
			return true
		}
	}
	return false
}
