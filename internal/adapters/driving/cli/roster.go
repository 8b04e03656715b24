package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Inspect the participant roster",
}

var rosterCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the roster and list active participants",
	Long: `Load the configured roster and report what a reminder pass would see.

Inactive rows are filtered out the same way a real pass filters them, so the
listed participants are exactly the ones eligible for reminders.`,
	RunE: runRosterCheck,
}

func init() {
	rosterCmd.AddCommand(rosterCheckCmd)
	rootCmd.AddCommand(rosterCmd)
}

func runRosterCheck(cmd *cobra.Command, _ []string) error {
	if rosterLoader == nil {
		return errors.New("roster loader not configured; run 'driveminder login' first")
	}

	participants, err := rosterLoader.Load(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrRosterNotFound) {
			return fmt.Errorf("roster not found: %w", err)
		}
		return fmt.Errorf("roster check failed: %w", err)
	}

	if len(participants) == 0 {
		cmd.Println("Roster loaded, but it has no active participants.")
		cmd.Println("Reminder passes will abort until at least one row has active=1.")
		return nil
	}

	cmd.Printf("Roster OK: %d active participant(s)\n\n", len(participants))
	for _, p := range participants {
		cmd.Printf("  %s <%s>\n", p.Name, p.Email)
	}
	return nil
}
