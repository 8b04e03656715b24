package driven

import (
	"context"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

// RunStore journals run and dispatch outcomes.
//
// The journal is write-only observability: reconciliation decisions are
// computed solely from the day's Drive listing and roster, never from
// journal history. Store failures are logged by callers and do not abort
// a run.
type RunStore interface {
	// SaveRun persists a run record. Called once when the pass ends,
	// whether it completed or aborted.
	SaveRun(ctx context.Context, run *domain.RunRecord) error

	// RecordDispatch persists one reminder dispatch attempt.
	RecordDispatch(ctx context.Context, dispatch *domain.DispatchRecord) error

	// ListRuns returns the most recent run records, newest first.
	// Used by the CLI status surface only.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
