package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
)

func openTestStore(t *testing.T) *TraceStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "trace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newBody(t *testing.T, id entity.EntityID, name string) *entity.Body {
	t.Helper()
	b, err := entity.NewBody(id, vec.New(0, 0), entity.Settings{
		Name: name,
		Size: vec.New(8, 8),
	}, entity.StandardDefaults())
	require.NoError(t, err)
	return b
}

func TestTraceStore_ObserveAndQuery(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.BeginRun("demo")
	require.NoError(t, err)
	assert.Equal(t, runID, store.RunID())

	a := newBody(t, 1, "player")
	b := newBody(t, 2, "crate")
	for tick := uint64(1); tick <= 3; tick++ {
		a.SetPosition(vec.New(float64(tick), 0))
		store.Observe(tick, a, entity.MoveResult{Outcome: entity.OutcomeResolved})
		store.Observe(tick, b, entity.MoveResult{Outcome: entity.OutcomeIdle})
	}
	require.NoError(t, store.Err())

	all, err := store.Samples(runID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	player, err := store.Samples(runID, 1)
	require.NoError(t, err)
	require.Len(t, player, 3)
	assert.Equal(t, uint64(3), player[2].Tick)
	assert.Equal(t, 3.0, player[2].X)
	assert.Equal(t, "player", player[2].Name)
	assert.Equal(t, entity.OutcomeResolved.String(), player[2].Outcome)
}

func TestTraceStore_Runs(t *testing.T) {
	store := openTestStore(t)
	body := newBody(t, 1, "player")

	first, err := store.BeginRun("one")
	require.NoError(t, err)
	store.Observe(1, body, entity.MoveResult{})

	second, err := store.BeginRun("two")
	require.NoError(t, err)
	store.Observe(1, body, entity.MoveResult{})
	store.Observe(2, body, entity.MoveResult{})

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, "two", runs[0].Stage)
	assert.Equal(t, 2, runs[0].Samples)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 1, runs[1].Samples)
}

func TestTraceStore_ImplicitRun(t *testing.T) {
	store := openTestStore(t)
	store.Observe(1, newBody(t, 1, "player"), entity.MoveResult{})

	assert.NotZero(t, store.RunID())
	samples, err := store.Samples(store.RunID(), 0)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestTraceStore_FlushBatches(t *testing.T) {
	store := openTestStore(t)
	runID, err := store.BeginRun("batch")
	require.NoError(t, err)

	body := newBody(t, 1, "player")
	for tick := uint64(1); tick <= flushEvery+10; tick++ {
		store.Observe(tick, body, entity.MoveResult{})
	}
	assert.Len(t, store.pending, 10)

	samples, err := store.Samples(runID, 0)
	require.NoError(t, err)
	assert.Len(t, samples, flushEvery+10)
}

func TestTraceStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	store, err := Open(path)
	require.NoError(t, err)
	runID, err := store.BeginRun("demo")
	require.NoError(t, err)
	store.Observe(1, newBody(t, 1, "player"), entity.MoveResult{})
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	samples, err := reopened.Samples(runID, 0)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestOpen_Memory(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.BeginRun("mem")
	assert.NoError(t, err)
}
