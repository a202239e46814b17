package replay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinebody/internal/application/system"
)

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, J: true, JP: true},
			{F: 2, U: true, D: true},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Left: true}, input)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Right: true, Jump: true, JumpPressed: true}, input)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.InputState{Up: true, Down: true}, input)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5))

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
	assert.Equal(t, "test", replayer.Stage())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(3))

	// Advance to end
	replayer.GetInput()
	replayer.GetInput()
	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	_, ok = replayer.GetInput()
	assert.True(t, ok)
}

func TestRecorder_RecordFrame(t *testing.T) {
	rec := NewRecorder("demo")
	require.True(t, rec.IsRecording())

	rec.RecordFrame(system.InputState{Left: true})
	rec.RecordFrame(system.InputState{JumpPressed: true, Jump: true})
	rec.Stop()
	rec.RecordFrame(system.InputState{Right: true})

	data := rec.Data()
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "demo", data.Stage)
	assert.Equal(t, 2, rec.FrameCount())
	assert.Equal(t, []FrameInput{{F: 0, L: true}, {F: 1, J: true, JP: true}}, data.Frames)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder("demo")
	inputs := []system.InputState{
		{Right: true},
		{Right: true, JumpPressed: true, Jump: true},
		{Up: true},
	}
	for _, in := range inputs {
		rec.RecordFrame(in)
	}

	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)

	replayer := NewReplayer(*data)
	for i, want := range inputs {
		got, ok := replayer.GetInput()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder("demo")
	assert.Error(t, rec.Save(filepath.Join(t.TempDir(), "empty.json")))
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}
