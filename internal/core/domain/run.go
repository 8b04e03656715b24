package domain

import "time"

// Classification is the outcome of reconciling one participant against
// the day's upload owners.
type Classification string

const (
	// ClassificationSatisfied means the participant uploaded on the target day.
	ClassificationSatisfied Classification = "satisfied"

	// ClassificationReminded means no upload was found and a reminder is due.
	ClassificationReminded Classification = "reminded"
)

// ParticipantResult pairs a participant with their classification for one run.
type ParticipantResult struct {
	Participant    Participant
	Classification Classification
}

// RunSummary holds the outcome counts of one reconciliation pass.
// It is derived per run, logged and journalled, and never consulted by
// later runs.
type RunSummary struct {
	// Satisfied is the number of participants with an upload on the target day.
	Satisfied int

	// Reminded is the number of participants a reminder was attempted for.
	Reminded int

	// Total is the number of active participants checked.
	// Always equals Satisfied + Reminded.
	Total int
}

// RunRecord is the journal entry for one reconciliation pass.
type RunRecord struct {
	// ID is the unique identifier of the run.
	ID string

	// Day is the target date of the run in YYYY-MM-DD form.
	Day string

	// StartedAt is when the pass began.
	StartedAt time.Time

	// EndedAt is when the pass completed.
	EndedAt time.Time

	// Summary holds the outcome counts.
	Summary RunSummary

	// Error is the abort reason for runs that did not complete, empty otherwise.
	Error string
}

// DispatchRecord is the journal entry for one reminder dispatch attempt.
type DispatchRecord struct {
	// RunID identifies the run this dispatch belongs to.
	RunID string

	// Recipient is the participant's email.
	Recipient string

	// Subject is the message subject line.
	Subject string

	// Delivered indicates whether the send succeeded.
	Delivered bool

	// Error holds the send failure, empty on success.
	Error string

	// SentAt is when the dispatch was attempted.
	SentAt time.Time
}
