package domain

import "strings"

// Participant is a person tracked for daily upload compliance.
// Participants are loaded fresh from the roster at the start of every run.
type Participant struct {
	// Email is the participant's identity and unique key. It is matched
	// case-insensitively against Drive file owners.
	Email string

	// Name is the display name used when addressing the participant.
	Name string

	// Active indicates whether the participant is currently tracked.
	// Inactive participants are filtered out by the roster loader and
	// never reach reconciliation.
	Active bool
}

// Identity returns the participant's email normalised for comparison
// against upload owners (trimmed, lower-cased).
func (p Participant) Identity() string {
	return strings.ToLower(strings.TrimSpace(p.Email))
}
