package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/kinebody/internal/application/game"
	"github.com/younwookim/kinebody/internal/application/replay"
	"github.com/younwookim/kinebody/internal/application/scene/sandbox"
)

var (
	flagRecord   string
	flagHitboxes bool
	flagPlayback string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive sandbox window",
	Long: `Open a window and drive the player with the keyboard.

Controls:
  A/D or arrows  move
  W/S            climb ladders
  Space          jump
  B              break a tile under or beside the player
  R              reset the stage
  ESC            pause, N steps one tick while paused
  F5             save the recording`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (\"auto\" names it by time)")
	viewCmd.Flags().BoolVar(&flagHitboxes, "hitboxes", false, "Draw hitboxes")
	viewCmd.Flags().StringVar(&flagPlayback, "replay", "", "Play back a recorded input file instead of the keyboard")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, stageCfg, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	recordPath := flagRecord
	if recordPath == "auto" {
		recordPath = replay.GenerateFilename()
	}

	opts := sandbox.Options{
		RecordPath:   recordPath,
		ShowHitboxes: flagHitboxes,
		Logger:       logger,
	}
	if flagPlayback != "" {
		data, err := replay.LoadReplay(flagPlayback)
		if err != nil {
			return err
		}
		opts.Input = replay.NewReplayer(*data)
	}

	sb, err := sandbox.New(cfg, stageCfg, opts)
	if err != nil {
		return err
	}

	display := cfg.Physics.Display
	g := game.New(sb, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(cfg.Physics.TickSeconds())
	defer g.Close()

	scale := display.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle("kinebody - " + stageCfg.Name)
	if display.Framerate > 0 {
		ebiten.SetTPS(display.Framerate)
	}

	return ebiten.RunGame(g)
}
