package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

func TestReconcile_Example(t *testing.T) {
	// Roster a/b active, c inactive (already filtered out by the loader);
	// only a uploaded today.
	participants := []domain.Participant{
		{Email: "a@x.com", Name: "A", Active: true},
		{Email: "b@x.com", Name: "B", Active: true},
	}
	owners := domain.NewOwnerSet()
	owners.Add("a@x.com")

	results, summary := Reconcile(participants, owners)

	require.Len(t, results, 2)
	assert.Equal(t, domain.ClassificationSatisfied, results[0].Classification)
	assert.Equal(t, domain.ClassificationReminded, results[1].Classification)
	assert.Equal(t, domain.RunSummary{Satisfied: 1, Reminded: 1, Total: 2}, summary)
}

func TestReconcile_CaseInsensitiveMatch(t *testing.T) {
	participants := []domain.Participant{
		{Email: "Alice@Example.COM", Name: "Alice", Active: true},
	}
	owners := domain.NewOwnerSet()
	owners.Add("alice@example.com")

	results, summary := Reconcile(participants, owners)

	assert.Equal(t, domain.ClassificationSatisfied, results[0].Classification)
	assert.Equal(t, 1, summary.Satisfied)
	assert.Zero(t, summary.Reminded)
}

func TestReconcile_SummaryArithmetic(t *testing.T) {
	participants := []domain.Participant{
		{Email: "a@x.com", Name: "A", Active: true},
		{Email: "b@x.com", Name: "B", Active: true},
		{Email: "c@x.com", Name: "C", Active: true},
		{Email: "d@x.com", Name: "D", Active: true},
		{Email: "e@x.com", Name: "E", Active: true},
	}
	owners := domain.NewOwnerSet()
	owners.Add("b@x.com")
	owners.Add("d@x.com")
	owners.Add("someone-else@x.com")

	results, summary := Reconcile(participants, owners)

	assert.Len(t, results, len(participants))
	assert.Equal(t, len(participants), summary.Total)
	assert.Equal(t, summary.Total, summary.Satisfied+summary.Reminded)
	assert.Equal(t, 2, summary.Satisfied)
	assert.Equal(t, 3, summary.Reminded)
}

func TestReconcile_Empty(t *testing.T) {
	results, summary := Reconcile(nil, domain.NewOwnerSet())

	assert.Empty(t, results)
	assert.Zero(t, summary.Total)
}

func TestReconcile_Deterministic(t *testing.T) {
	participants := []domain.Participant{
		{Email: "a@x.com", Name: "A", Active: true},
		{Email: "b@x.com", Name: "B", Active: true},
	}
	owners := domain.NewOwnerSet()
	owners.Add("b@x.com")

	first, firstSummary := Reconcile(participants, owners)
	second, secondSummary := Reconcile(participants, owners)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSummary, secondSummary)
}
