package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

// SetRunStore sets the journal store used by `runs`.
func SetRunStore(s driven.RunStore) {
	runStore = s
}

var runStore driven.RunStore

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent reminder runs from the journal",
	Long: `Show the most recent reminder runs recorded in the local journal,
newest first. Aborted runs show the abort reason instead of counts.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run journal not available")
	}

	runs, err := runStore.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		if r.Error != "" {
			cmd.Printf("%s  %s  aborted: %s\n",
				r.Day, r.StartedAt.Format("15:04:05"), r.Error)
			continue
		}
		cmd.Printf("%s  %s  checked %d, uploaded %d, reminded %d\n",
			r.Day, r.StartedAt.Format("15:04:05"),
			r.Summary.Total, r.Summary.Satisfied, r.Summary.Reminded)
	}
	return nil
}
