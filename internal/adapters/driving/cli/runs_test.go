package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

type stubRunStore struct {
	runs []domain.RunRecord
	err  error
}

func (s *stubRunStore) SaveRun(context.Context, *domain.RunRecord) error { return nil }

func (s *stubRunStore) RecordDispatch(context.Context, *domain.DispatchRecord) error { return nil }

func (s *stubRunStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.runs) {
		return s.runs[:limit], nil
	}
	return s.runs, nil
}

func TestRunsCmd_NotAvailable(t *testing.T) {
	original := runStore
	runStore = nil
	defer func() { runStore = original }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"runs"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal not available")
}

func TestRunsCmd_ListsRuns(t *testing.T) {
	started := time.Date(2026, 8, 29, 1, 0, 12, 0, time.Local)
	original := runStore
	runStore = &stubRunStore{runs: []domain.RunRecord{
		{
			ID: "r2", Day: "2026-08-29", StartedAt: started,
			Summary: domain.RunSummary{Satisfied: 4, Reminded: 1, Total: 5},
		},
		{
			ID: "r1", Day: "2026-08-28", StartedAt: started.AddDate(0, 0, -1),
			Error: "resolve folder \"Survey Uploads\": folder not found",
		},
	}}
	defer func() { runStore = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2026-08-29  01:00:12  checked 5, uploaded 4, reminded 1")
	assert.Contains(t, buf.String(), "2026-08-28  01:00:12  aborted: resolve folder")
}

func TestRunsCmd_Empty(t *testing.T) {
	original := runStore
	runStore = &stubRunStore{}
	defer func() { runStore = original }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No runs recorded yet.")
}
