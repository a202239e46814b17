package entity

import (
	"math"

	"github.com/younwookim/kinebody/internal/domain/vec"
)

// EntityID is a unique identifier for an entity
type EntityID uint32

// EntityType classifies an entity for collision policy
type EntityType int

const (
	TypeNeutral EntityType = iota
	TypePlayer
	TypeEnemy
	TypeCollectable
)

// String returns the entity type name
func (t EntityType) String() string {
	switch t {
	case TypeNeutral:
		return "neutral"
	case TypePlayer:
		return "player"
	case TypeEnemy:
		return "enemy"
	case TypeCollectable:
		return "collectable"
	default:
		return "unknown"
	}
}

// ParseEntityType maps a config name to an EntityType. Unknown names are neutral.
func ParseEntityType(name string) EntityType {
	switch name {
	case "player":
		return TypePlayer
	case "enemy":
		return TypeEnemy
	case "collectable":
		return TypeCollectable
	default:
		return TypeNeutral
	}
}

// TileType represents the collision class of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileSolid
	TileLadder
	TileNeutral
)

// String returns the tile type name
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileSolid:
		return "solid"
	case TileLadder:
		return "ladder"
	case TileNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Tile represents a single tile in the stage.
// X and Y are the tile's grid coordinates.
type Tile struct {
	Type      TileType
	X, Y      int
	Normal    *vec.Vector2 // slope normal, nil for flat tiles
	Breakable bool
}

// IsSlope returns true for solid tiles carrying a slope normal
func (t Tile) IsSlope() bool {
	return t.Type == TileSolid && t.Normal != nil
}

// Stage represents the current stage's tile data
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int
	SpawnY   int
}

// GetTile returns the tile at the given tile coordinates.
// Cells outside the grid behave as solid walls.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileSolid, X: tx, Y: ty}
	}
	t := s.Tiles[ty][tx]
	t.X, t.Y = tx, ty
	return t
}

// SetTile replaces the tile at the given tile coordinates
func (s *Stage) SetTile(tx, ty int, t Tile) bool {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return false
	}
	t.X, t.Y = tx, ty
	s.Tiles[ty][tx] = t
	return true
}

// GetTileAtPoint returns the tile containing the world point
func (s *Stage) GetTileAtPoint(x, y float64) Tile {
	ts := float64(s.TileSize)
	return s.GetTile(int(math.Floor(x/ts)), int(math.Floor(y/ts)))
}

// IsSolidAt checks if the tile at world coordinates is solid
func (s *Stage) IsSolidAt(x, y float64) bool {
	return s.GetTileAtPoint(x, y).Type == TileSolid
}

// TileBounds returns the world-space rectangle of a tile
func (s *Stage) TileBounds(tx, ty int) (minX, minY, maxX, maxY float64) {
	ts := float64(s.TileSize)
	minX = float64(tx) * ts
	minY = float64(ty) * ts
	return minX, minY, minX + ts, minY + ts
}

// ContactEpsilon is the penetration depth below which a rectangle is considered touching
// rather than overlapping a tile.
const ContactEpsilon = 1e-6

// EachTile calls fn for every tile strictly overlapping the rectangle
// centered at center with the given size. Edge contact is not overlap.
func (s *Stage) EachTile(center, size vec.Vector2, fn func(Tile)) {
	if s.TileSize <= 0 {
		return
	}
	ts := float64(s.TileSize)
	minX, maxX := center.X-size.X/2+ContactEpsilon, center.X+size.X/2-ContactEpsilon
	minY, maxY := center.Y-size.Y/2+ContactEpsilon, center.Y+size.Y/2-ContactEpsilon
	if minX > maxX || minY > maxY {
		return
	}

	startTX := int(math.Floor(minX / ts))
	endTX := int(math.Ceil(maxX/ts)) - 1
	startTY := int(math.Floor(minY / ts))
	endTY := int(math.Ceil(maxY/ts)) - 1

	for ty := startTY; ty <= endTY; ty++ {
		for tx := startTX; tx <= endTX; tx++ {
			fn(s.GetTile(tx, ty))
		}
	}
}
