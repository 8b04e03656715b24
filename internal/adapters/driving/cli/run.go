package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runDay string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a single reminder pass now",
	Long: `Execute one reminder pass immediately, outside the schedule.

Loads the roster, lists today's uploads in the configured Drive folder,
and emails a reminder to every active participant without an upload.

Examples:
  driveminder run
  driveminder run --day 2026-08-29`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runDay, "day", "", "Day to reconcile (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if reminderService == nil {
		return errors.New("reminder service not configured; run 'driveminder login' first")
	}

	day := time.Now()
	if runDay != "" {
		parsed, err := time.ParseInLocation("2006-01-02", runDay, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --day %q: expected YYYY-MM-DD", runDay)
		}
		day = parsed
	}

	summary, err := reminderService.RunOnce(context.Background(), day)
	if err != nil {
		return fmt.Errorf("reminder pass failed: %w", err)
	}

	cmd.Printf("Reminder pass complete for %s\n", day.Format("2006-01-02"))
	cmd.Printf("  Participants: %d\n", summary.Total)
	cmd.Printf("  Uploaded:     %d\n", summary.Satisfied)
	cmd.Printf("  Reminded:     %d\n", summary.Reminded)
	return nil
}
