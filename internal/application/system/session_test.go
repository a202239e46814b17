package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

func createTestGameConfig() *config.GameConfig {
	return &config.GameConfig{
		Physics: createTestPhysicsConfig(),
		Entities: &config.EntitiesConfig{
			Entities: map[string]config.EntityConfig{
				"player": {Type: "player", Width: 8, Height: 8},
				"coin":   {Type: "collectable", Width: 4, Height: 4},
			},
		},
	}
}

// 6x5 room whose floor is breakable; the player rests on it at (40, 44)
func createTestStageConfig() *config.StageConfig {
	return &config.StageConfig{
		Name:        "room",
		Size:        config.StageSizeConfig{TileSize: 16},
		PlayerSpawn: config.PositionConfig{X: 40, Y: 44},
		Layers: config.LayersConfig{
			Collision: []string{
				"######",
				"#....#",
				"#....#",
				"#%%%%#",
				"######",
			},
		},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "solid"},
			"%": {Type: "solid", Breakable: true},
			".": {Type: "empty"},
		},
		Spawns: []config.SpawnConfig{
			{Entity: "coin", X: 72, Y: 24},
		},
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(createTestGameConfig(), createTestStageConfig())
	require.NoError(t, err)

	assert.Equal(t, "room", s.StageName())
	require.NotNil(t, s.Player())
	assert.Equal(t, PlayerArchetype, s.Player().Name)
	assert.Len(t, s.World().Bodies(), 2)
}

func TestNewSession_Errors(t *testing.T) {
	t.Run("bad stage", func(t *testing.T) {
		stageCfg := createTestStageConfig()
		stageCfg.Size.TileSize = 0
		_, err := NewSession(createTestGameConfig(), stageCfg)
		assert.Error(t, err)
	})

	t.Run("unknown spawn", func(t *testing.T) {
		stageCfg := createTestStageConfig()
		stageCfg.Spawns = append(stageCfg.Spawns, config.SpawnConfig{Entity: "ghost"})
		_, err := NewSession(createTestGameConfig(), stageCfg)
		assert.True(t, errors.Is(err, ErrUnknownEntity))
	})
}

func TestSession_NoPlayer(t *testing.T) {
	cfg := createTestGameConfig()
	delete(cfg.Entities.Entities, "player")

	s, err := NewSession(cfg, createTestStageConfig())
	require.NoError(t, err)
	assert.Nil(t, s.Player())

	assert.Equal(t, 0, s.Update(InputState{Right: true}))
	assert.Equal(t, uint64(1), s.World().Tick())
	assert.False(t, s.BreakNearPlayer())
}

func TestSession_Update(t *testing.T) {
	t.Run("idle input keeps the player at rest", func(t *testing.T) {
		s, err := NewSession(createTestGameConfig(), createTestStageConfig())
		require.NoError(t, err)

		assert.Equal(t, 0, s.Update(InputState{}))
		assert.Equal(t, 40.0, s.Player().Position.X)
		assert.Equal(t, 44.0, s.Player().Position.Y)
	})

	t.Run("walk right", func(t *testing.T) {
		s, err := NewSession(createTestGameConfig(), createTestStageConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, s.Update(InputState{Right: true}))
		assert.Greater(t, s.Player().Position.X, 40.0)
		assert.LessOrEqual(t, s.Player().Position.Y, 44.0)
	})

	t.Run("jump from rest", func(t *testing.T) {
		s, err := NewSession(createTestGameConfig(), createTestStageConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, s.Update(InputState{Jump: true, JumpPressed: true}))
		assert.Less(t, s.Player().Position.Y, 44.0)
		assert.True(t, s.Player().Jumping())
	})
}

func TestSession_BreakNearPlayer(t *testing.T) {
	s, err := NewSession(createTestGameConfig(), createTestStageConfig())
	require.NoError(t, err)

	var broken []entity.Tile
	s.World().Bus().Subscribe(entity.EventTileBreak, func(e entity.Event) {
		broken = append(broken, e.Tile)
	})

	require.True(t, s.BreakNearPlayer())
	assert.Equal(t, entity.TileEmpty, s.World().Stage().GetTile(2, 3).Type)

	s.Update(InputState{})
	require.Len(t, broken, 1)
	assert.Equal(t, 2, broken[0].X)
	assert.Equal(t, 3, broken[0].Y)
}

func TestSession_BreakNearPlayer_SolidOnly(t *testing.T) {
	stageCfg := createTestStageConfig()
	stageCfg.TileMapping["%"] = config.TileMappingConfig{Type: "neutral", Breakable: true}

	s, err := NewSession(createTestGameConfig(), stageCfg)
	require.NoError(t, err)

	assert.False(t, s.BreakNearPlayer(), "breakable neutral tiles are passed over")
	assert.Equal(t, entity.TileNeutral, s.World().Stage().GetTile(2, 3).Type)
	assert.Zero(t, s.World().Bus().Pending())
}
