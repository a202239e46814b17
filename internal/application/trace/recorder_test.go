package trace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

func newBody(t *testing.T, id entity.EntityID) *entity.Body {
	t.Helper()
	b, err := entity.NewBody(id, vec.New(10, 20), entity.Settings{
		Name: "crate",
		Type: entity.TypeNeutral,
		Size: vec.New(8, 8),
	}, entity.StandardDefaults())
	require.NoError(t, err)
	return b
}

func TestNewSample(t *testing.T) {
	b := newBody(t, 3)
	b.Velocity = vec.New(1.5, -2)

	s := NewSample(7, b, entity.MoveResult{
		Outcome:   entity.OutcomeBlocked,
		Colliders: []entity.Collider{{}, {}},
	})

	assert.Equal(t, Sample{
		Tick:      7,
		ID:        3,
		Name:      "crate",
		X:         10,
		Y:         20,
		VX:        1.5,
		VY:        -2,
		Outcome:   entity.OutcomeBlocked.String(),
		Colliders: 2,
	}, s)
}

func TestRecorder_SkipIdle(t *testing.T) {
	tests := []struct {
		name     string
		skipIdle bool
		want     int
	}{
		{"keep all", false, 3},
		{"skip idle", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBody(t, 1)
			r := NewRecorder("demo", tt.skipIdle)

			r.Observe(1, b, entity.MoveResult{Outcome: entity.OutcomeResolved})
			r.Observe(2, b, entity.MoveResult{Outcome: entity.OutcomeIdle})
			r.Observe(3, b, entity.MoveResult{Outcome: entity.OutcomeBlocked})

			assert.Len(t, r.Samples(), tt.want)
		})
	}
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	b := newBody(t, 1)
	r := NewRecorder("demo", false)
	r.Observe(1, b, entity.MoveResult{Outcome: entity.OutcomeResolved})
	b.SetPosition(vec.New(11, 20))
	r.Observe(2, b, entity.MoveResult{Outcome: entity.OutcomeResolved})

	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, r.Save(path))

	data, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "demo", data.Stage)
	require.Len(t, data.Samples, 2)
	assert.Equal(t, uint64(2), data.Samples[1].Tick)
	assert.Equal(t, 11.0, data.Samples[1].X)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("demo", false)
	assert.Error(t, r.Save(filepath.Join(t.TempDir(), "trace.json")))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMulti_Observe(t *testing.T) {
	b := newBody(t, 1)
	a := NewRecorder("demo", false)
	c := NewRecorder("demo", true)
	m := Multi{a, c}

	m.Observe(1, b, entity.MoveResult{Outcome: entity.OutcomeIdle})

	assert.Len(t, a.Samples(), 1)
	assert.Empty(t, c.Samples())
}
