package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

// --- Mock implementations for reminder testing ---

type mockRoster struct {
	participants []domain.Participant
	err          error
}

func (m *mockRoster) Load(_ context.Context) ([]domain.Participant, error) {
	return m.participants, m.err
}

type mockUploadLister struct {
	folderID   string
	resolveErr error
	owners     domain.OwnerSet
	listErr    error
}

func (m *mockUploadLister) ResolveFolder(_ context.Context, _ string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return m.folderID, nil
}

func (m *mockUploadLister) ListUploadOwners(_ context.Context, _ string, _ time.Time) (domain.OwnerSet, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.owners, nil
}

// mockMailer records every send and can fail specific recipients.
type mockMailer struct {
	mu      sync.Mutex
	sent    []driven.Message
	failFor map[string]error
}

func newMockMailer() *mockMailer {
	return &mockMailer{failFor: make(map[string]error)}
}

func (m *mockMailer) Send(_ context.Context, msg driven.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[msg.To]; ok {
		return err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockRunStore struct {
	mu         sync.Mutex
	runs       []domain.RunRecord
	dispatches []domain.DispatchRecord
	saveErr    error
}

func (m *mockRunStore) SaveRun(_ context.Context, run *domain.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockRunStore) RecordDispatch(_ context.Context, d *domain.DispatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatches = append(m.dispatches, *d)
	return nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.runs) {
		limit = len(m.runs)
	}
	return m.runs[:limit], nil
}

func activeRoster() *mockRoster {
	return &mockRoster{participants: []domain.Participant{
		{Email: "a@x.com", Name: "A", Active: true},
		{Email: "b@x.com", Name: "B", Active: true},
		{Email: "c@x.com", Name: "C", Active: true},
	}}
}

func testDay() time.Time {
	return time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
}

// --- Tests ---

func TestReminderService_RunOnce(t *testing.T) {
	owners := domain.NewOwnerSet()
	owners.Add("a@x.com")

	mailer := newMockMailer()
	store := &mockRunStore{}
	svc := NewReminderService("Survey Uploads", activeRoster(),
		&mockUploadLister{folderID: "folder-1", owners: owners}, mailer, store)

	summary, err := svc.RunOnce(context.Background(), testDay())
	require.NoError(t, err)

	assert.Equal(t, &domain.RunSummary{Satisfied: 1, Reminded: 2, Total: 3}, summary)

	// Reminders went to b and c only
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "b@x.com", mailer.sent[0].To)
	assert.Equal(t, "c@x.com", mailer.sent[1].To)

	// Run and both dispatches journalled
	require.Len(t, store.runs, 1)
	assert.Equal(t, "2025-06-10", store.runs[0].Day)
	assert.Equal(t, *summary, store.runs[0].Summary)
	assert.Empty(t, store.runs[0].Error)
	require.Len(t, store.dispatches, 2)
	assert.True(t, store.dispatches[0].Delivered)
}

func TestReminderService_DispatchFailureDoesNotStopRun(t *testing.T) {
	mailer := newMockMailer()
	mailer.failFor["b@x.com"] = errors.New("smtp: connection reset")

	store := &mockRunStore{}
	svc := NewReminderService("Survey Uploads", activeRoster(),
		&mockUploadLister{folderID: "folder-1", owners: domain.NewOwnerSet()}, mailer, store)

	summary, err := svc.RunOnce(context.Background(), testDay())
	require.NoError(t, err)

	// All three were classified as reminded; b's send failed but c was
	// still attempted afterwards.
	assert.Equal(t, 3, summary.Reminded)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "a@x.com", mailer.sent[0].To)
	assert.Equal(t, "c@x.com", mailer.sent[1].To)

	// The failed dispatch is journalled with its error
	require.Len(t, store.dispatches, 3)
	failed := store.dispatches[1]
	assert.Equal(t, "b@x.com", failed.Recipient)
	assert.False(t, failed.Delivered)
	assert.Contains(t, failed.Error, "connection reset")
}

func TestReminderService_RosterErrorAbortsRun(t *testing.T) {
	mailer := newMockMailer()
	store := &mockRunStore{}
	svc := NewReminderService("Survey Uploads",
		&mockRoster{err: domain.ErrRosterNotFound},
		&mockUploadLister{folderID: "folder-1"}, mailer, store)

	_, err := svc.RunOnce(context.Background(), testDay())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRosterNotFound)
	assert.Empty(t, mailer.sent)

	// Aborted runs are journalled with the abort reason
	require.Len(t, store.runs, 1)
	assert.Contains(t, store.runs[0].Error, "roster not found")
}

func TestReminderService_EmptyRosterAbortsRun(t *testing.T) {
	svc := NewReminderService("Survey Uploads", &mockRoster{},
		&mockUploadLister{folderID: "folder-1"}, newMockMailer(), nil)

	_, err := svc.RunOnce(context.Background(), testDay())
	assert.ErrorIs(t, err, domain.ErrNoParticipants)
}

func TestReminderService_FolderErrorsAbortRun(t *testing.T) {
	for _, folderErr := range []error{domain.ErrFolderNotFound, domain.ErrFolderAmbiguous} {
		mailer := newMockMailer()
		svc := NewReminderService("Survey Uploads", activeRoster(),
			&mockUploadLister{resolveErr: folderErr}, mailer, nil)

		_, err := svc.RunOnce(context.Background(), testDay())
		assert.ErrorIs(t, err, folderErr)
		assert.Empty(t, mailer.sent)
	}
}

func TestReminderService_JournalFailureDoesNotAbort(t *testing.T) {
	owners := domain.NewOwnerSet()
	owners.Add("a@x.com")
	owners.Add("b@x.com")
	owners.Add("c@x.com")

	svc := NewReminderService("Survey Uploads", activeRoster(),
		&mockUploadLister{folderID: "folder-1", owners: owners}, newMockMailer(),
		&mockRunStore{saveErr: errors.New("disk full")})

	summary, err := svc.RunOnce(context.Background(), testDay())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Satisfied)
}

func TestReminderMessage(t *testing.T) {
	p := domain.Participant{Email: "a@x.com", Name: "Ann", Active: true}
	msg := ReminderMessage(p, time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local))

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, "Diary Reminder - 10/06", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Ann,")
	assert.Contains(t, msg.Body, "LateOwls")
}
