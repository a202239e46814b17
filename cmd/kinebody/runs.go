package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/younwookim/kinebody/internal/infrastructure/storage"
)

var flagRunSamples int64

var runsCmd = &cobra.Command{
	Use:   "runs <db>",
	Short: "List runs stored in a trace database",
	Long: `List the simulation runs recorded with 'kinebody sim --trace-db'.

With --samples, print the per-tick samples of one run instead.

Examples:
  kinebody runs traces.db
  kinebody runs traces.db --samples 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRuns(cmd.OutOrStdout(), args[0], flagRunSamples)
	},
}

func init() {
	runsCmd.Flags().Int64Var(&flagRunSamples, "samples", 0, "Print the samples of this run")
}

func listRuns(out io.Writer, dbPath string, runID int64) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID != 0 {
		samples, err := store.Samples(runID, 0)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			fmt.Fprintf(out, "No samples for run %d.\n", runID)
			return nil
		}

		fmt.Fprintf(out, "%-6s %-4s %-12s %9s %9s %7s %7s  %s\n", "TICK", "ID", "NAME", "X", "Y", "VX", "VY", "OUTCOME")
		for _, s := range samples {
			fmt.Fprintf(out, "%-6d %-4d %-12s %9.2f %9.2f %7.2f %7.2f  %s\n",
				s.Tick, s.ID, s.Name, s.X, s.Y, s.VX, s.VY, s.Outcome)
		}
		return nil
	}

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-4s %-16s %8s  %s\n", "RUN", "STAGE", "SAMPLES", "CREATED")
	for _, r := range runs {
		fmt.Fprintf(out, "%-4d %-16s %8d  %s\n", r.ID, r.Stage, r.Samples, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
