package driving

import (
	"context"
	"time"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

// ReminderService runs one reconciliation pass: load the roster, list the
// day's upload owners, classify every active participant, and send a
// reminder to each participant without an upload.
type ReminderService interface {
	// RunOnce executes a full pass for the local calendar day containing
	// day. Per-recipient dispatch failures are absorbed and logged; the
	// returned error is non-nil only when the whole pass aborted (missing
	// folder, missing roster, empty roster).
	RunOnce(ctx context.Context, day time.Time) (*domain.RunSummary, error)
}

// Scheduler fires the reminder pass once per day at the configured time.
type Scheduler interface {
	// Start begins the scheduler loop. It blocks until ctx is cancelled
	// or Stop is called. Pass failures are logged and do not stop the loop.
	Start(ctx context.Context) error

	// Stop gracefully shuts the loop down, waiting for a running pass to
	// complete.
	Stop() error
}
