package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/oauth2"

	"github.com/lateowl-labs/driveminder/internal/adapters/driven/auth"
	configfile "github.com/lateowl-labs/driveminder/internal/adapters/driven/config/file"
	smtpmail "github.com/lateowl-labs/driveminder/internal/adapters/driven/mail/smtp"
	"github.com/lateowl-labs/driveminder/internal/adapters/driven/roster/csvfile"
	"github.com/lateowl-labs/driveminder/internal/adapters/driven/roster/sheet"
	"github.com/lateowl-labs/driveminder/internal/adapters/driven/storage/sqlite"
	"github.com/lateowl-labs/driveminder/internal/adapters/driving/cli"
	googleconn "github.com/lateowl-labs/driveminder/internal/connectors/google"
	gdrive "github.com/lateowl-labs/driveminder/internal/connectors/google/drive"
	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
	"github.com/lateowl-labs/driveminder/internal/core/services"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.Load(configPath(os.Args[1:]))
	if err != nil {
		return err
	}

	cli.SetConfig(&cfg)
	cli.SetMailerFactory(func(mc domain.MailConfig) (driven.Mailer, error) {
		return smtpmail.NewMailer(mc)
	})

	oauthCfg, err := auth.NewOAuthConfig(cfg.CredentialsFile, googleconn.DriveScope)
	if err != nil {
		// The binary stays usable without credentials so the user can see
		// help output and error messages that explain what to set up.
		logger.Debug("oauth client unavailable: %v", err)
	} else {
		cli.SetOAuthConfig(oauthCfg)
		cli.SetTokenSaver(func(token *oauth2.Token) error {
			return auth.SaveToken(cfg.TokenFile, token)
		})
	}

	wireServices(&cfg, oauthCfg)

	return cli.Execute()
}

// wireServices builds the Drive-backed services when a stored token exists.
// Before `driveminder login` has run there is no token; commands that need
// these services report that instead of failing at startup.
func wireServices(cfg *domain.Config, oauthCfg *oauth2.Config) {
	ctx := context.Background()

	// The file roster needs no Drive access, so `roster check` works even
	// before login when the roster is a local CSV.
	var rosterLoader driven.RosterLoader
	if cfg.Roster.Source == domain.RosterSourceFile {
		rosterLoader = csvfile.NewLoader(cfg.Roster.Path)
		cli.SetRosterLoader(rosterLoader)
	}

	var runStore driven.RunStore
	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		// The journal is observability only; a pass can run without it.
		logger.Warn("run journal unavailable: %v", err)
	} else {
		runStore = store.RunStore()
		cli.SetRunStore(runStore)
	}

	if oauthCfg == nil {
		return
	}

	ts, err := auth.TokenSource(ctx, oauthCfg, cfg.TokenFile)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			logger.Debug("no stored token; run 'driveminder login' to authorize")
		} else {
			logger.Warn("token load failed: %v", err)
		}
		return
	}

	svc, err := googleconn.NewDriveService(ctx, ts)
	if err != nil {
		logger.Warn("drive client setup failed: %v", err)
		return
	}
	lister := gdrive.NewLister(svc, googleconn.NewRateLimiter())

	if cfg.Roster.Source == domain.RosterSourceSheet {
		rosterLoader = sheet.NewLoader(lister, cfg.Roster.SheetName)
		cli.SetRosterLoader(rosterLoader)
	}

	mailer, err := smtpmail.NewMailer(cfg.Mail)
	if err != nil {
		logger.Warn("mail disabled: %v; set MAIL_USERNAME and MAIL_PASSWORD to enable reminders", err)
		return
	}

	reminder := services.NewReminderService(cfg.FolderName, rosterLoader, lister, mailer, runStore)
	cli.SetReminderService(reminder)
	cli.SetScheduler(services.NewScheduler(cfg.CheckTime, reminder))
}

// configPath extracts the --config flag before cobra parses anything, since
// the configuration must be loaded to wire services ahead of Execute.
func configPath(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case len(arg) > len("--config=") && arg[:len("--config=")] == "--config=":
			return arg[len("--config="):]
		}
	}
	return configfile.DefaultConfigFile
}
