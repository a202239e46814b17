package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("failed to load stage %s: tile size %d", cfg.ID, cfg.Size.TileSize)
	}

	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	// Resolve the mapping once
	mapping := make(map[rune]entity.Tile, len(cfg.TileMapping))
	for char, m := range cfg.TileMapping {
		runes := []rune(char)
		if len(runes) != 1 {
			return nil, fmt.Errorf("failed to load stage %s: tile key %q must be one character", cfg.ID, char)
		}
		tile, err := tileFromConfig(m)
		if err != nil {
			return nil, fmt.Errorf("failed to load stage %s: tile %q: %w", cfg.ID, char, err)
		}
		mapping[runes[0]] = tile
	}

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		x := 0
		for _, char := range row {
			if x >= tileWidth {
				break
			}
			tile, ok := mapping[char]
			if !ok {
				tile = entity.Tile{Type: entity.TileEmpty}
			}
			tile.X, tile.Y = x, y
			tiles[y][x] = tile
			x++
		}
		for ; x < tileWidth; x++ {
			tiles[y][x] = entity.Tile{Type: entity.TileEmpty, X: x, Y: y}
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}, nil
}

func tileFromConfig(m config.TileMappingConfig) (entity.Tile, error) {
	var tile entity.Tile
	switch m.Type {
	case "solid", "wall":
		tile.Type = entity.TileSolid
	case "ladder":
		tile.Type = entity.TileLadder
	case "neutral":
		tile.Type = entity.TileNeutral
	case "empty", "":
		tile.Type = entity.TileEmpty
	default:
		return tile, fmt.Errorf("unknown tile type %q", m.Type)
	}

	if m.Normal != nil {
		n := m.Normal.Vec()
		l := n.Length()
		if l == 0 {
			return tile, errors.New("zero slope normal")
		}
		n = n.MultiplyScalar(1 / l)
		tile.Normal = &n
	}
	tile.Breakable = m.Breakable
	return tile, nil
}
