// Package file loads the application configuration.
//
// Precedence, lowest to highest: built-in defaults, the TOML config file,
// then the MAIL_* environment variables (a local .env file is read into
// the environment first). When the mail username or password is still
// empty after all of that, gmail_credentials.txt (username on the first
// line, app password on the second) is used as a last resort.
package file

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = "driveminder.toml"

// CredentialsFallbackFile is the file-based fallback for mail credentials.
const CredentialsFallbackFile = "gmail_credentials.txt"

// Recognised environment options.
const (
	EnvMailServer        = "MAIL_SERVER"
	EnvMailPort          = "MAIL_PORT"
	EnvMailUseTLS        = "MAIL_USE_TLS"
	EnvMailUsername      = "MAIL_USERNAME"
	EnvMailPassword      = "MAIL_PASSWORD"
	EnvMailDefaultSender = "MAIL_DEFAULT_SENDER"
)

// tomlConfig is the on-disk shape of the config file.
type tomlConfig struct {
	FolderName      string `toml:"folder_name"`
	CheckTime       string `toml:"check_time"`
	DataDir         string `toml:"data_dir"`
	CredentialsFile string `toml:"credentials_file"`
	TokenFile       string `toml:"token_file"`

	Roster struct {
		Source    string `toml:"source"`
		Path      string `toml:"path"`
		SheetName string `toml:"sheet_name"`
	} `toml:"roster"`

	Mail struct {
		Server        string `toml:"server"`
		Port          int    `toml:"port"`
		UseTLS        *bool  `toml:"use_tls"`
		Username      string `toml:"username"`
		Password      string `toml:"password"`
		DefaultSender string `toml:"default_sender"`
	} `toml:"mail"`
}

// Load builds the effective configuration. A missing config file falls
// back to defaults; a present but malformed one is an error.
func Load(path string) (domain.Config, error) {
	// Read a local .env into the process environment first; a missing
	// .env is the normal case.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	cfg := domain.DefaultConfig()

	if err := applyFile(&cfg, path); err != nil {
		return domain.Config{}, err
	}
	applyEnv(&cfg)

	if cfg.Mail.Username == "" || cfg.Mail.Password == "" {
		applyCredentialsFile(&cfg, CredentialsFallbackFile)
	}

	return cfg, nil
}

func applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no config file at %s, using defaults", path)
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var tc tomlConfig
	if err := toml.Unmarshal(data, &tc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if tc.FolderName != "" {
		cfg.FolderName = tc.FolderName
	}
	if tc.CheckTime != "" {
		trigger, err := domain.ParseTriggerTime(tc.CheckTime)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		cfg.CheckTime = trigger
	}
	if tc.DataDir != "" {
		cfg.DataDir = tc.DataDir
	}
	if tc.CredentialsFile != "" {
		cfg.CredentialsFile = tc.CredentialsFile
	}
	if tc.TokenFile != "" {
		cfg.TokenFile = tc.TokenFile
	}

	if tc.Roster.Source != "" {
		if tc.Roster.Source != domain.RosterSourceFile && tc.Roster.Source != domain.RosterSourceSheet {
			return fmt.Errorf("%w: roster source %q must be %q or %q",
				domain.ErrInvalidInput, tc.Roster.Source, domain.RosterSourceFile, domain.RosterSourceSheet)
		}
		cfg.Roster.Source = tc.Roster.Source
	}
	if tc.Roster.Path != "" {
		cfg.Roster.Path = tc.Roster.Path
	}
	if tc.Roster.SheetName != "" {
		cfg.Roster.SheetName = tc.Roster.SheetName
	}

	if tc.Mail.Server != "" {
		cfg.Mail.Server = tc.Mail.Server
	}
	if tc.Mail.Port != 0 {
		cfg.Mail.Port = tc.Mail.Port
	}
	if tc.Mail.UseTLS != nil {
		cfg.Mail.UseTLS = *tc.Mail.UseTLS
	}
	if tc.Mail.Username != "" {
		cfg.Mail.Username = tc.Mail.Username
	}
	if tc.Mail.Password != "" {
		cfg.Mail.Password = tc.Mail.Password
	}
	if tc.Mail.DefaultSender != "" {
		cfg.Mail.DefaultSender = tc.Mail.DefaultSender
	}

	return nil
}

// applyEnv overlays the recognised MAIL_* variables.
func applyEnv(cfg *domain.Config) {
	if v := os.Getenv(EnvMailServer); v != "" {
		cfg.Mail.Server = v
	}
	if v := os.Getenv(EnvMailPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = port
		} else {
			logger.Warn("%s=%q is not a port number, keeping %d", EnvMailPort, v, cfg.Mail.Port)
		}
	}
	if v := os.Getenv(EnvMailUseTLS); v != "" {
		cfg.Mail.UseTLS = v == "True" || v == "true" || v == "1"
	}
	if v := os.Getenv(EnvMailUsername); v != "" {
		cfg.Mail.Username = v
	}
	if v := os.Getenv(EnvMailPassword); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv(EnvMailDefaultSender); v != "" {
		cfg.Mail.DefaultSender = v
	}
}

// applyCredentialsFile fills in mail credentials from the two-line
// fallback file. A missing file just means the fallback is unused.
func applyCredentialsFile(cfg *domain.Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		logger.Warn("invalid format in %s, expected username and password lines", path)
		return
	}

	cfg.Mail.Username = strings.TrimSpace(lines[0])
	cfg.Mail.Password = strings.TrimSpace(lines[1])
	logger.Info("mail credentials loaded from %s", path)
}
