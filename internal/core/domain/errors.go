package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFolderNotFound indicates the monitored Drive folder does not exist
	// or is not visible to the authorised account.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrFolderAmbiguous indicates more than one Drive folder matches the
	// configured folder name. The run aborts rather than guessing.
	ErrFolderAmbiguous = errors.New("folder name is ambiguous")

	// ErrRosterNotFound indicates the roster source is missing.
	ErrRosterNotFound = errors.New("roster not found")

	// ErrRosterInvalid indicates the roster is present but unreadable:
	// required columns absent or rows that fail to parse.
	ErrRosterInvalid = errors.New("roster invalid")

	// ErrNoParticipants indicates the roster contains no active participants.
	// The run aborts; there is nobody to check.
	ErrNoParticipants = errors.New("no active participants")

	// ErrAuthRequired indicates no valid Google authorisation is available.
	// Fatal at startup: run `driveminder login` first.
	ErrAuthRequired = errors.New("authentication required")

	// ErrMailNotConfigured indicates the SMTP username or password is unset.
	ErrMailNotConfigured = errors.New("mail not configured")
)
