// Package csvfile loads the participant roster from a local CSV file.
//
// The file must carry a header row with at least the columns "email",
// "name" and "active" (0/1). Column order does not matter; extra columns
// are ignored. Rows with active != 1 are filtered out here so inactive
// participants never reach reconciliation.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.RosterLoader = (*Loader)(nil)

// Loader reads the roster from a CSV file on every Load call.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given CSV path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the roster file.
func (l *Loader) Load(ctx context.Context) ([]domain.Participant, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRosterNotFound, l.path)
		}
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	return ParseRoster(ctx, f)
}

// ParseRoster parses CSV roster content: header row first, then one
// participant per row. Shared with the Google Sheet loader, which exports
// the sheet to exactly this format.
func ParseRoster(ctx context.Context, r io.Reader) ([]domain.Participant, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty roster", domain.ErrRosterInvalid)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRosterInvalid, err)
	}

	cols, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var participants []domain.Participant
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRosterInvalid, err)
		}

		p, err := parseRow(row, cols)
		if err != nil {
			return nil, err
		}

		total++
		if !p.Active {
			continue
		}
		participants = append(participants, p)
	}

	logger.Info("loaded %d active participants from %d total", len(participants), total)
	return participants, nil
}

// columns holds the index of each required column in the header.
type columns struct {
	email, name, active int
}

func columnIndexes(header []string) (columns, error) {
	cols := columns{email: -1, name: -1, active: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "email":
			cols.email = i
		case "name":
			cols.name = i
		case "active":
			cols.active = i
		}
	}
	if cols.email < 0 || cols.name < 0 || cols.active < 0 {
		return columns{}, fmt.Errorf("%w: roster must have columns email, name, active", domain.ErrRosterInvalid)
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (domain.Participant, error) {
	max := cols.email
	if cols.name > max {
		max = cols.name
	}
	if cols.active > max {
		max = cols.active
	}
	if len(row) <= max {
		return domain.Participant{}, fmt.Errorf("%w: short row %v", domain.ErrRosterInvalid, row)
	}

	active, err := strconv.Atoi(strings.TrimSpace(row[cols.active]))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("%w: active flag %q is not 0/1", domain.ErrRosterInvalid, row[cols.active])
	}

	return domain.Participant{
		Email:  strings.TrimSpace(row[cols.email]),
		Name:   strings.TrimSpace(row[cols.name]),
		Active: active == 1,
	}, nil
}
