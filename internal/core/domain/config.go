package domain

import "fmt"

// Roster source kinds.
const (
	// RosterSourceFile reads the roster from a local CSV file.
	RosterSourceFile = "file"

	// RosterSourceSheet reads the roster from a Google Sheet in Drive,
	// exported as CSV.
	RosterSourceSheet = "sheet"
)

// RosterConfig describes where the participant roster lives.
type RosterConfig struct {
	// Source is the roster source kind: "file" or "sheet".
	Source string

	// Path is the CSV file path when Source is "file".
	Path string

	// SheetName is the spreadsheet name in Drive when Source is "sheet".
	SheetName string
}

// MailConfig holds the SMTP dispatch settings. All fields can be set from
// the environment (MAIL_SERVER, MAIL_PORT, MAIL_USE_TLS, MAIL_USERNAME,
// MAIL_PASSWORD, MAIL_DEFAULT_SENDER).
type MailConfig struct {
	// Server is the SMTP host.
	Server string

	// Port is the SMTP port.
	Port int

	// UseTLS enables STARTTLS on the connection.
	UseTLS bool

	// Username authenticates against the SMTP server.
	Username string

	// Password authenticates against the SMTP server.
	Password string

	// DefaultSender is the From address of outbound reminders.
	DefaultSender string
}

// Configured reports whether the settings are complete enough to send mail.
func (m MailConfig) Configured() bool {
	return m.Server != "" && m.Port > 0 && m.Username != "" && m.Password != ""
}

// Addr returns the host:port dial address of the SMTP server.
func (m MailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Server, m.Port)
}

// Config is the full application configuration, constructed once at startup
// and threaded through explicitly. Nothing holds it as ambient state.
type Config struct {
	// FolderName is the display name of the monitored Drive folder.
	FolderName string

	// CheckTime is when the daily pass fires.
	CheckTime TriggerTime

	// Roster describes the participant roster source.
	Roster RosterConfig

	// Mail holds the SMTP settings.
	Mail MailConfig

	// DataDir is where the run journal database lives.
	DataDir string

	// CredentialsFile is the OAuth client secrets JSON from Google Cloud Console.
	CredentialsFile string

	// TokenFile is where the authorised user token is persisted.
	TokenFile string
}

// DefaultConfig returns the defaults the original deployment used. The
// folder name and check time used to be hard-coded in the entry point;
// they are configuration now, with the old values kept as fallbacks.
func DefaultConfig() Config {
	return Config{
		FolderName: "Survey Uploads",
		CheckTime:  TriggerTime{Hour: 1, Minute: 0},
		Roster: RosterConfig{
			Source: RosterSourceFile,
			Path:   "participants.csv",
		},
		Mail: MailConfig{
			Server: "smtp.gmail.com",
			Port:   587,
			UseTLS: true,
		},
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
	}
}
