package config

// StageConfig is the root config for stage files
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Size        StageSizeConfig              `json:"size" yaml:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
	Spawns      []SpawnConfig                `json:"spawns" yaml:"spawns"`
}

type StageSizeConfig struct {
	Width    int `json:"width" yaml:"width"`
	Height   int `json:"height" yaml:"height"`
	TileSize int `json:"tileSize" yaml:"tileSize"`
}

type PositionConfig struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision" yaml:"collision"`
}

// TileMappingConfig maps a layer character to a tile.
// Type is one of solid, ladder, neutral or empty.
type TileMappingConfig struct {
	Type      string `json:"type" yaml:"type"`
	Normal    *XY    `json:"normal,omitempty" yaml:"normal,omitempty"` // slope surface normal
	Breakable bool   `json:"breakable,omitempty" yaml:"breakable,omitempty"`
}

// SpawnConfig places an entity archetype in the stage, by the center of its body
type SpawnConfig struct {
	Entity string  `json:"entity" yaml:"entity"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	VX     float64 `json:"vx,omitempty" yaml:"vx,omitempty"`
	VY     float64 `json:"vy,omitempty" yaml:"vy,omitempty"`
}
