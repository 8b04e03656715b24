// Package cli implements the driveminder command-line interface.
//
// Commands receive their dependencies through the Set* functions, which
// main wires up after loading configuration. Commands that depend on an
// unwired service fail with a clear message instead of panicking, so the
// binary stays usable (e.g. `login`) before authentication is set up.
package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driving"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected dependencies. Nil until main wires them.
var (
	appConfig       *domain.Config
	reminderService driving.ReminderService
	schedulerSvc    driving.Scheduler
	rosterLoader    driven.RosterLoader
	mailerFactory   func(domain.MailConfig) (driven.Mailer, error)
	oauthConfig     *oauth2.Config
	tokenSaver      func(*oauth2.Token) error
)

// SetConfig sets the loaded application configuration.
func SetConfig(cfg *domain.Config) {
	appConfig = cfg
}

// SetReminderService sets the reminder service used by `run` and `start`.
func SetReminderService(svc driving.ReminderService) {
	reminderService = svc
}

// SetScheduler sets the scheduler used by `start`.
func SetScheduler(s driving.Scheduler) {
	schedulerSvc = s
}

// SetRosterLoader sets the roster loader used by `roster check`.
func SetRosterLoader(l driven.RosterLoader) {
	rosterLoader = l
}

// SetMailerFactory sets the factory used by `mail test` to build a mailer,
// possibly with a password entered at the prompt.
func SetMailerFactory(f func(domain.MailConfig) (driven.Mailer, error)) {
	mailerFactory = f
}

// SetOAuthConfig sets the OAuth client configuration used by `login`.
func SetOAuthConfig(cfg *oauth2.Config) {
	oauthConfig = cfg
}

// SetTokenSaver sets the function `login` uses to persist the exchanged token.
func SetTokenSaver(f func(*oauth2.Token) error) {
	tokenSaver = f
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "driveminder",
	Short: "Daily upload reminders for Google Drive diary studies",
	Long: `driveminder watches a Google Drive folder for participant uploads and
emails a reminder to every active participant who has not uploaded today.

Typical usage:
  driveminder login          # one-time Google authorization
  driveminder roster check   # validate the participant roster
  driveminder mail test      # verify SMTP settings
  driveminder run            # execute a single reminder pass now
  driveminder start          # run as a daemon, firing at the configured time`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
