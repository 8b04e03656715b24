package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lateowl-labs/driveminder/internal/logger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the reminder daemon",
	Long: `Run driveminder as a long-lived daemon.

The daemon wakes every minute and fires a reminder pass once the configured
check time is reached, then arms itself for the next day. It stops cleanly
on SIGINT or SIGTERM.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, _ []string) error {
	if schedulerSvc == nil {
		return errors.New("scheduler not configured; run 'driveminder login' first")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("driveminder daemon started (check time %s, folder %q)\n",
		appConfig.CheckTime, appConfig.FolderName)

	if err := schedulerSvc.Start(ctx); err != nil {
		return err
	}

	logger.Info("daemon stopped")
	return nil
}
