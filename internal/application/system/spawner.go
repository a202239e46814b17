package system

import (
	"fmt"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

// PlayerArchetype is the archetype spawned at the stage's player spawn
const PlayerArchetype = "player"

// SpawnStage spawns the player and every stage spawn into w.
// The player is spawned only when the player archetype exists, and always first.
func SpawnStage(w *World, stage *config.StageConfig, ents *config.EntitiesConfig) ([]*entity.Body, error) {
	var bodies []*entity.Body

	if archetype, ok := ents.Entities[PlayerArchetype]; ok {
		pos := vec.New(float64(stage.PlayerSpawn.X), float64(stage.PlayerSpawn.Y))
		b, err := w.Spawn(pos, archetype.Settings(PlayerArchetype), nil)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}

	for i, spawn := range stage.Spawns {
		archetype, ok := ents.Entities[spawn.Entity]
		if !ok {
			return nil, fmt.Errorf("failed to spawn #%d %q: %w", i, spawn.Entity, ErrUnknownEntity)
		}

		name := spawn.Name
		if name == "" {
			name = spawn.Entity
		}
		b, err := w.Spawn(vec.New(spawn.X, spawn.Y), archetype.Settings(name), nil)
		if err != nil {
			return nil, err
		}
		b.Velocity = vec.New(spawn.VX, spawn.VY)
		bodies = append(bodies, b)
	}

	return bodies, nil
}
