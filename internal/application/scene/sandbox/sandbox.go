// Package sandbox provides the interactive stage scene: one player body
// driven by the keyboard (or a replay) through the tile world.
package sandbox

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/kinebody/internal/application/replay"
	"github.com/younwookim/kinebody/internal/application/scene"
	"github.com/younwookim/kinebody/internal/application/state"
	"github.com/younwookim/kinebody/internal/application/system"
	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/domain/vec"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
	"github.com/younwookim/kinebody/internal/infrastructure/render"
)

// maxEventLines is how many recent events the HUD shows
const maxEventLines = 4

// InputSource supplies one input state per tick; false means no more input
type InputSource interface {
	GetInput() (system.InputState, bool)
}

// Keyboard reads live input and never runs out
type Keyboard struct {
	input *system.InputSystem
}

// NewKeyboard creates a keyboard input source
func NewKeyboard() *Keyboard {
	return &Keyboard{input: system.NewInputSystem()}
}

// GetInput implements InputSource
func (k *Keyboard) GetInput() (system.InputState, bool) {
	return k.input.GetInput(), true
}

// Options configures a Sandbox
type Options struct {
	Input        InputSource // nil means keyboard
	RecordPath   string      // record input when set
	ShowHitboxes bool
	Tracer       system.Tracer
	Logger       *log.Logger
}

// Sandbox is the interactive stage scene
type Sandbox struct {
	cfg      *config.GameConfig
	stageCfg *config.StageConfig
	opts     Options

	session *system.Session
	view    *render.Scene
	input   InputSource
	state   state.SimState
	events  []string

	recorder *replay.Recorder
	logger   *log.Logger

	screenW int
	screenH int
}

// New creates a sandbox scene for the given stage
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Sandbox, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Sandbox{
		cfg:      cfg,
		stageCfg: stageCfg,
		opts:     opts,
		input:    opts.Input,
		logger:   logger,
		screenW:  cfg.Physics.Display.ScreenWidth,
		screenH:  cfg.Physics.Display.ScreenHeight,
	}
	if s.input == nil {
		s.input = NewKeyboard()
	}

	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// reset rebuilds the world from config
func (s *Sandbox) reset() error {
	view := render.NewScene()
	worldOpts := []system.WorldOption{
		system.WithScene(view, render.Factory{ShowHitboxes: s.opts.ShowHitboxes}),
		system.WithLogger(s.logger),
	}
	if s.opts.Tracer != nil {
		worldOpts = append(worldOpts, system.WithTracer(s.opts.Tracer))
	}

	session, err := system.NewSession(s.cfg, s.stageCfg, worldOpts...)
	if err != nil {
		return err
	}
	for _, b := range session.World().Bodies() {
		render.Tint(b)
	}
	session.World().Bus().SubscribeAll(s.onEvent)

	s.session = session
	s.view = view
	s.state = state.StateRunning
	s.events = nil

	if s.opts.RecordPath != "" {
		s.recorder = replay.NewRecorder(s.stageCfg.Name)
		s.logger.Info("recording enabled", "file", s.opts.RecordPath)
	}
	return nil
}

func (s *Sandbox) onEvent(e entity.Event) {
	var line string
	switch e.Type {
	case entity.EventEntityCollision:
		line = fmt.Sprintf("%d hit %d (%.1f, %.1f)", e.Entity, e.Other, e.Vector.X, e.Vector.Y)
	case entity.EventTileBreak:
		line = fmt.Sprintf("tile (%d, %d) broken", e.Tile.X, e.Tile.Y)
	case entity.EventEntityRemoved:
		line = fmt.Sprintf("%d removed", e.Entity)
	default:
		return
	}

	s.events = append(s.events, line)
	if len(s.events) > maxEventLines {
		s.events = s.events[len(s.events)-maxEventLines:]
	}
}

// Session returns the running session
func (s *Sandbox) Session() *system.Session { return s.session }

// State returns the simulation state
func (s *Sandbox) State() state.SimState { return s.state }

// Events returns the most recent event lines shown on the HUD
func (s *Sandbox) Events() []string { return s.events }

// Update advances the simulation (implements scene.Scene)
func (s *Sandbox) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.state = s.state.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.saveRecording()
		if r, ok := s.input.(interface{ Reset() }); ok {
			r.Reset()
		}
		if err := s.reset(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.saveRecording()
	}

	switch s.state {
	case state.StateRunning:
		s.step()
	case state.StatePaused:
		// N advances a single tick while paused
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			s.step()
		}
	}

	return nil, nil // nil = stay on this scene
}

// step runs one tick of input and simulation
func (s *Sandbox) step() {
	input, ok := s.input.GetInput()
	if !ok {
		s.state = state.StateFinished
		s.logger.Info("input finished", "tick", s.session.World().Tick())
		return
	}

	if s.recorder != nil {
		s.recorder.RecordFrame(input)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		s.session.BreakNearPlayer()
	}
	s.session.Update(input)
}

// saveRecording saves the current recording to file
func (s *Sandbox) saveRecording() {
	if s.recorder == nil || s.recorder.FrameCount() == 0 {
		return
	}

	if err := s.recorder.Save(s.opts.RecordPath); err != nil {
		s.logger.Error("failed to save recording", "err", err)
		return
	}
	s.logger.Info("recording saved", "file", s.opts.RecordPath, "frames", s.recorder.FrameCount())
}

// camera returns the top-left corner of the view
func (s *Sandbox) camera() vec.Vector2 {
	stage := s.session.World().Stage()
	target := vec.New(float64(stage.SpawnX), float64(stage.SpawnY))
	if p := s.session.Player(); p != nil {
		target = p.Position
	}
	return render.Camera(stage, target, s.screenW, s.screenH)
}

// Draw renders the stage, the bodies and the HUD
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(render.ColorBG)

	cam := s.camera()
	render.DrawStage(screen, s.session.World().Stage(), cam, s.screenW, s.screenH)
	s.view.Draw(screen, cam)

	s.drawHUD(screen)

	switch s.state {
	case state.StatePaused:
		s.drawOverlay(screen, "PAUSED\n\nESC: resume | N: step")
	case state.StateFinished:
		s.drawOverlay(screen, "FINISHED\n\nR: restart")
	}
}

func (s *Sandbox) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, "A/D: Move | W/S: Climb | Space: Jump | B: Break | R: Reset | ESC: Pause")

	y := 16
	if p := s.session.Player(); p != nil {
		text := fmt.Sprintf("tick %d  pos (%.1f, %.1f)  vel (%.2f, %.2f)",
			s.session.World().Tick(), p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
		ebitenutil.DebugPrintAt(screen, text, 0, y)
		y += 16
	}
	for _, line := range s.events {
		ebitenutil.DebugPrintAt(screen, line, 0, y)
		y += 16
	}
}

func (s *Sandbox) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(s.screenH), render.ColorOverlay)
	ebitenutil.DebugPrintAt(screen, text, s.screenW/2-50, s.screenH/2-20)
}

// OnEnter is called when entering this scene
func (s *Sandbox) OnEnter() {
	s.logger.Debug("sandbox entered", "stage", s.stageCfg.Name)
}

// OnExit is called when leaving this scene
func (s *Sandbox) OnExit() {
	s.saveRecording()
}
