package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun persists a run record.
func (s *runStore) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	if run == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, day, started_at, ended_at, satisfied, reminded, total, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ended_at = excluded.ended_at,
			satisfied = excluded.satisfied,
			reminded = excluded.reminded,
			total = excluded.total,
			error = excluded.error
	`, run.ID, run.Day,
		run.StartedAt.Format(time.RFC3339), run.EndedAt.Format(time.RFC3339),
		run.Summary.Satisfied, run.Summary.Reminded, run.Summary.Total,
		nullString(run.Error))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// RecordDispatch persists one reminder dispatch attempt.
func (s *runStore) RecordDispatch(ctx context.Context, d *domain.DispatchRecord) error {
	if d == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO dispatches (run_id, recipient, subject, delivered, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.RunID, d.Recipient, d.Subject, boolToInt(d.Delivered),
		nullString(d.Error), d.SentAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("saving dispatch: %w", err)
	}
	return nil
}

// ListRuns returns the most recent run records, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, day, started_at, ended_at, satisfied, reminded, total, error
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		var (
			run            domain.RunRecord
			started, ended string
			errText        sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Day, &started, &ended,
			&run.Summary.Satisfied, &run.Summary.Reminded, &run.Summary.Total, &errText); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.EndedAt, _ = time.Parse(time.RFC3339, ended)
		run.Error = errText.String
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
