package services

import "github.com/lateowl-labs/driveminder/internal/core/domain"

// Reconcile classifies every participant against the day's upload owners.
// It is a pure function of its inputs: a participant whose identity appears
// in owners (case-insensitively) is satisfied, every other participant is
// due a reminder. Inactive participants are filtered out by the roster
// loader and must not appear here.
//
// The returned summary always satisfies
// Total == Satisfied + Reminded == len(participants).
func Reconcile(participants []domain.Participant, owners domain.OwnerSet) ([]domain.ParticipantResult, domain.RunSummary) {
	results := make([]domain.ParticipantResult, 0, len(participants))
	var summary domain.RunSummary

	for _, p := range participants {
		c := domain.ClassificationReminded
		if owners.Contains(p.Identity()) {
			c = domain.ClassificationSatisfied
			summary.Satisfied++
		} else {
			summary.Reminded++
		}
		results = append(results, domain.ParticipantResult{Participant: p, Classification: c})
	}

	summary.Total = len(participants)
	return results, summary
}
