package driven

import (
	"context"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

// RosterLoader reads the participant roster from its external source.
// The roster is re-read fresh at the start of every run; nothing is cached
// between runs.
type RosterLoader interface {
	// Load returns the active participants in source order. Participants
	// with the active flag unset are filtered out here and never reach
	// reconciliation.
	//
	// Returns domain.ErrRosterNotFound if the source is missing and
	// domain.ErrRosterInvalid if required columns are absent or a row
	// fails to parse.
	Load(ctx context.Context) ([]domain.Participant, error)
}
