// Package sheet loads the participant roster from a Google Sheet.
//
// The sheet is found by display name, exported as CSV through the Drive
// API, and parsed with the same rules as a local roster file. Keeping the
// roster in Drive lets researchers edit it without touching the host the
// daemon runs on.
package sheet

import (
	"bytes"
	"context"
	"fmt"

	gdrive "github.com/lateowl-labs/driveminder/internal/connectors/google/drive"

	"github.com/lateowl-labs/driveminder/internal/adapters/driven/roster/csvfile"
	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.RosterLoader = (*Loader)(nil)

// Loader exports a named spreadsheet to CSV on every Load call.
type Loader struct {
	lister    *gdrive.Lister
	sheetName string
}

// NewLoader creates a loader for the named spreadsheet.
func NewLoader(lister *gdrive.Lister, sheetName string) *Loader {
	return &Loader{lister: lister, sheetName: sheetName}
}

// Load exports and parses the roster sheet.
func (l *Loader) Load(ctx context.Context) ([]domain.Participant, error) {
	data, err := l.lister.ExportSheetCSV(ctx, l.sheetName)
	if err != nil {
		return nil, fmt.Errorf("export roster sheet: %w", err)
	}
	return csvfile.ParseRoster(ctx, bytes.NewReader(data))
}
