package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader loads configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// configExts is the lookup order for a config name without extension
var configExts = []string{".json", ".yaml", ".yml"}

// decode reads name.{json,yaml,yml}, whichever exists first, into out
func (l *Loader) decode(name string, out any) error {
	for _, ext := range configExts {
		file := name + ext
		data, err := fs.ReadFile(l.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		return unmarshal(file, data, out)
	}
	return fmt.Errorf("failed to read %s: %w", name, fs.ErrNotExist)
}

func unmarshal(file string, data []byte, out any) error {
	switch path.Ext(file) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
	}
	return nil
}

// LoadPhysics loads physics.json or physics.yaml
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	var cfg PhysicsConfig
	if err := l.decode("physics", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEntities loads entities.json or entities.yaml
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.decode("entities", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStage loads stages/<name>.json or stages/<name>.yaml
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.decode("stages/"+name, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (physics, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}
