package drive

import (
	"context"
	"fmt"
	"io"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

// ExportMimeCSV is the export format for Google Sheets.
const ExportMimeCSV = "text/csv"

// MaxExportSize caps exported roster content (5MB). A roster sheet past
// this size is malformed, not large.
const MaxExportSize = 5 * 1024 * 1024

// ExportSheetCSV finds the spreadsheet with the given display name and
// exports its first sheet as CSV bytes. Like folder resolution, namesakes
// are an error rather than a guess.
func (l *Lister) ExportSheetCSV(ctx context.Context, name string) ([]byte, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := l.svc.Files.List().
		Q(sheetQuery(name)).
		Fields("files(id, name)").
		Context(ctx).Do()
	if err != nil {
		return nil, l.apiError("search sheet", err)
	}

	switch len(result.Files) {
	case 0:
		return nil, fmt.Errorf("%w: sheet %q", domain.ErrRosterNotFound, name)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %d sheets named %q", domain.ErrRosterInvalid, len(result.Files), name)
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := l.svc.Files.Export(result.Files[0].Id, ExportMimeCSV).Context(ctx).Download()
	if err != nil {
		return nil, l.apiError("export sheet", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxExportSize))
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	return data, nil
}
