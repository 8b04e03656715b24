package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

func clearMailEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvMailServer, EnvMailPort, EnvMailUseTLS,
		EnvMailUsername, EnvMailPassword, EnvMailDefaultSender} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearMailEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Survey Uploads", cfg.FolderName)
	assert.Equal(t, domain.TriggerTime{Hour: 1, Minute: 0}, cfg.CheckTime)
	assert.Equal(t, domain.RosterSourceFile, cfg.Roster.Source)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Server)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.True(t, cfg.Mail.UseTLS)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearMailEnv(t)

	path := writeConfig(t, `
folder_name = "Diary Drops"
check_time = "06:30"

[roster]
source = "sheet"
sheet_name = "participants"

[mail]
server = "mail.example.org"
port = 2525
use_tls = false
default_sender = "Survey Team <team@example.org>"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Diary Drops", cfg.FolderName)
	assert.Equal(t, domain.TriggerTime{Hour: 6, Minute: 30}, cfg.CheckTime)
	assert.Equal(t, domain.RosterSourceSheet, cfg.Roster.Source)
	assert.Equal(t, "participants", cfg.Roster.SheetName)
	assert.Equal(t, "mail.example.org", cfg.Mail.Server)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.False(t, cfg.Mail.UseTLS)
	assert.Equal(t, "Survey Team <team@example.org>", cfg.Mail.DefaultSender)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearMailEnv(t)

	path := writeConfig(t, `
[mail]
server = "mail.example.org"
username = "file-user"
password = "file-pass"
`)

	t.Setenv(EnvMailServer, "smtp.env.example")
	t.Setenv(EnvMailPort, "465")
	t.Setenv(EnvMailUseTLS, "False")
	t.Setenv(EnvMailUsername, "env-user")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "smtp.env.example", cfg.Mail.Server)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.False(t, cfg.Mail.UseTLS)
	assert.Equal(t, "env-user", cfg.Mail.Username)
	// Untouched by env: file value stays
	assert.Equal(t, "file-pass", cfg.Mail.Password)
}

func TestLoad_BadCheckTime(t *testing.T) {
	clearMailEnv(t)

	path := writeConfig(t, `check_time = "25:99"`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_BadRosterSource(t *testing.T) {
	clearMailEnv(t)

	path := writeConfig(t, `
[roster]
source = "ftp"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyCredentialsFile(t *testing.T) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(t.TempDir(), "gmail_credentials.txt")
	require.NoError(t, os.WriteFile(path, []byte("fallback-user@gmail.com\napp-password\n"), 0600))

	applyCredentialsFile(&cfg, path)

	assert.Equal(t, "fallback-user@gmail.com", cfg.Mail.Username)
	assert.Equal(t, "app-password", cfg.Mail.Password)
}

func TestApplyCredentialsFile_InvalidFormat(t *testing.T) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(t.TempDir(), "gmail_credentials.txt")
	require.NoError(t, os.WriteFile(path, []byte("only-one-line"), 0600))

	applyCredentialsFile(&cfg, path)

	assert.Empty(t, cfg.Mail.Username)
	assert.Empty(t, cfg.Mail.Password)
}
