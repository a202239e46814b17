package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/kinebody/internal/application/replay"
	"github.com/younwookim/kinebody/internal/application/system"
	"github.com/younwookim/kinebody/internal/application/trace"
	"github.com/younwookim/kinebody/internal/domain/entity"
	"github.com/younwookim/kinebody/internal/infrastructure/config"
	"github.com/younwookim/kinebody/internal/infrastructure/render"
	"github.com/younwookim/kinebody/internal/infrastructure/storage"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var simFlags simOptions

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the stage headless and print it",
	Long: `Run the stage for a fixed number of ticks without a window.

Input comes from a replay file when given, otherwise the player stays idle.
Per-tick body samples can be written to a JSON trace and/or a SQLite database.

Examples:
  kinebody sim --ticks 120
  kinebody sim --replay replay.json --every 30
  kinebody sim --trace trace.json --trace-db traces.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, stageCfg, logger, err := setup(os.Stderr)
		if err != nil {
			return err
		}
		_, err = runSim(cmd.OutOrStdout(), cfg, stageCfg, logger, simFlags)
		return err
	},
}

func init() {
	simCmd.Flags().IntVar(&simFlags.Ticks, "ticks", 300, "Ticks to run (0 = length of the replay)")
	simCmd.Flags().StringVar(&simFlags.ReplayPath, "replay", "", "Replay file to drive the player")
	simCmd.Flags().StringVar(&simFlags.TracePath, "trace", "", "Write per-tick samples to a JSON file")
	simCmd.Flags().StringVar(&simFlags.TraceDB, "trace-db", "", "Append per-tick samples to a SQLite database")
	simCmd.Flags().IntVar(&simFlags.Every, "every", 0, "Print the stage every N ticks (0 = final only)")
	simCmd.Flags().BoolVar(&simFlags.Plain, "plain", false, "Print without colors")
}

type simOptions struct {
	Ticks      int
	ReplayPath string
	TracePath  string
	TraceDB    string
	Every      int
	Plain      bool
}

type simResult struct {
	Ticks  uint64
	Bodies int
	Events map[entity.EventType]int
	RunID  int64
}

// runSim steps a session headless and renders it to out
func runSim(out io.Writer, cfg *config.GameConfig, stageCfg *config.StageConfig, logger *log.Logger, opts simOptions) (*simResult, error) {
	var replayer *replay.Replayer
	if opts.ReplayPath != "" {
		data, err := replay.LoadReplay(opts.ReplayPath)
		if err != nil {
			return nil, err
		}
		if data.Stage != "" && data.Stage != stageCfg.Name {
			logger.Warn("replay was recorded on another stage", "replay", data.Stage, "stage", stageCfg.Name)
		}
		replayer = replay.NewReplayer(*data)
	}

	ticks := opts.Ticks
	if ticks <= 0 {
		if replayer == nil {
			return nil, errors.New("--ticks must be positive without --replay")
		}
		ticks = replayer.TotalFrames()
	}

	var tracers trace.Multi
	var recorder *trace.Recorder
	if opts.TracePath != "" {
		recorder = trace.NewRecorder(stageCfg.Name, true)
		tracers = append(tracers, recorder)
	}

	var store *storage.TraceStore
	if opts.TraceDB != "" {
		var err error
		store, err = storage.Open(opts.TraceDB)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close trace database", "err", err)
			}
		}()
		if _, err := store.BeginRun(stageCfg.Name); err != nil {
			return nil, err
		}
		tracers = append(tracers, store)
	}

	worldOpts := []system.WorldOption{system.WithLogger(logger)}
	if len(tracers) > 0 {
		worldOpts = append(worldOpts, system.WithTracer(tracers))
	}

	session, err := system.NewSession(cfg, stageCfg, worldOpts...)
	if err != nil {
		return nil, err
	}

	result := &simResult{Events: make(map[entity.EventType]int)}
	session.World().Bus().SubscribeAll(func(e entity.Event) {
		result.Events[e.Type]++
	})

	logger.Info("simulation started", "stage", stageCfg.Name, "ticks", ticks, "bodies", len(session.World().Bodies()))

	for i := 0; i < ticks; i++ {
		var input system.InputState
		if replayer != nil {
			in, ok := replayer.GetInput()
			if !ok {
				logger.Info("replay finished", "frame", replayer.CurrentFrame())
				break
			}
			input = in
		}
		session.Update(input)

		tick := session.World().Tick()
		if opts.Every > 0 && tick%uint64(opts.Every) == 0 && int(tick) < ticks {
			printFrame(out, session, opts.Plain)
		}
	}
	printFrame(out, session, opts.Plain)

	result.Ticks = session.World().Tick()
	result.Bodies = len(session.World().Bodies())

	if recorder != nil {
		if err := recorder.Save(opts.TracePath); err != nil {
			return nil, err
		}
		logger.Info("trace saved", "file", opts.TracePath, "samples", len(recorder.Samples()))
	}
	if store != nil {
		if err := store.Flush(); err != nil {
			return nil, err
		}
		result.RunID = store.RunID()
		logger.Info("trace stored", "db", opts.TraceDB, "run", result.RunID)
	}

	printSummary(out, result, opts.Plain)
	return result, nil
}

func printFrame(out io.Writer, s *system.Session, plain bool) {
	header := fmt.Sprintf("tick %d", s.World().Tick())
	if !plain {
		header = titleStyle.Render(header)
	}
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, render.ASCII(s.World().Stage(), s.World().Bodies(), !plain))

	if p := s.Player(); p != nil && p.Alive {
		line := fmt.Sprintf("player pos (%.2f, %.2f) vel (%.2f, %.2f)", p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
		if !plain {
			line = labelStyle.Render(line)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
}

func printSummary(out io.Writer, r *simResult, plain bool) {
	label := func(s string) string {
		if plain {
			return s
		}
		return labelStyle.Render(s)
	}

	fmt.Fprintf(out, "%s %d\n", label("ticks:"), r.Ticks)
	fmt.Fprintf(out, "%s %d\n", label("bodies:"), r.Bodies)
	for _, t := range []entity.EventType{
		entity.EventEntityMove,
		entity.EventEntityCollision,
		entity.EventTileBreak,
		entity.EventEntityRemoved,
	} {
		fmt.Fprintf(out, "%s %d\n", label(t.String()+":"), r.Events[t])
	}
	if r.RunID != 0 {
		fmt.Fprintf(out, "%s %d\n", label("run:"), r.RunID)
	}
}
