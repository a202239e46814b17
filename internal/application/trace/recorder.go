package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/kinebody/internal/domain/entity"
)

// Sample is one body's state after one tick
type Sample struct {
	Tick      uint64  `json:"t"`
	ID        uint32  `json:"id"`
	Name      string  `json:"name,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Outcome   string  `json:"outcome"`
	Colliders int     `json:"colliders,omitempty"`
	Falling   bool    `json:"falling,omitempty"`
	Jumping   bool    `json:"jumping,omitempty"`
	OnLadder  bool    `json:"ladder,omitempty"`
}

// Data is a saved movement trace
type Data struct {
	Version   string   `json:"version"`
	Stage     string   `json:"stage"`
	StartTime string   `json:"startTime"`
	Samples   []Sample `json:"samples"`
}

// Version is the trace format written by Recorder
const Version = "1.0"

// NewSample builds a sample from a body and its movement result
func NewSample(tick uint64, b *entity.Body, res entity.MoveResult) Sample {
	s := b.Snapshot()
	return Sample{
		Tick:      tick,
		ID:        uint32(s.ID),
		Name:      s.Name,
		X:         s.Position.X,
		Y:         s.Position.Y,
		VX:        s.Velocity.X,
		VY:        s.Velocity.Y,
		Outcome:   res.Outcome.String(),
		Colliders: len(res.Colliders),
		Falling:   s.Falling,
		Jumping:   s.Jumping,
		OnLadder:  s.OnLadder,
	}
}

// Recorder keeps every observed sample in memory and saves them as JSON
type Recorder struct {
	data     Data
	skipIdle bool
}

// NewRecorder creates a recorder for the given stage.
// When skipIdle is set, ticks where a body did not move are not recorded.
func NewRecorder(stage string, skipIdle bool) *Recorder {
	return &Recorder{
		data: Data{
			Version:   Version,
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
		},
		skipIdle: skipIdle,
	}
}

// Observe implements system.Tracer
func (r *Recorder) Observe(tick uint64, b *entity.Body, res entity.MoveResult) {
	if r.skipIdle && res.Outcome == entity.OutcomeIdle {
		return
	}
	r.data.Samples = append(r.data.Samples, NewSample(tick, b, res))
}

// Samples returns the recorded samples
func (r *Recorder) Samples() []Sample {
	return r.data.Samples
}

// Save writes the trace to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Samples) == 0 {
		return errors.New("no samples to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// Load reads a trace file
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &data, nil
}

// Multi fans one observation out to several tracers
type Multi []interface {
	Observe(tick uint64, b *entity.Body, res entity.MoveResult)
}

// Observe implements system.Tracer
func (m Multi) Observe(tick uint64, b *entity.Body, res entity.MoveResult) {
	for _, t := range m {
		t.Observe(tick, b, res)
	}
}
