// Package drive implements the upload-listing port against the Google
// Drive v3 API.
package drive

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/lateowl-labs/driveminder/internal/connectors/google"
	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// pageSize is the Files.List page size. Listings larger than one page are
// common on busy days; every page must be drained before concluding that a
// participant did not upload.
const pageSize = 100

// Ensure Lister implements the interface.
var _ driven.UploadLister = (*Lister)(nil)

// Lister queries Google Drive for the monitored folder and its uploads.
type Lister struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// NewLister creates a Lister on top of an authorised Drive service.
func NewLister(svc *drive.Service, limiter *google.RateLimiter) *Lister {
	return &Lister{svc: svc, limiter: limiter}
}

// apiError wraps a Drive API failure. Rate-limit responses are fed back to
// the limiter so subsequent calls back off; the failing call itself is not
// retried, the run aborts and the next scheduled pass picks up.
func (l *Lister) apiError(op string, err error) error {
	if google.IsRateLimited(err) {
		l.limiter.RecordRateLimitError(0)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ResolveFolder returns the identifier of the Drive folder with the given
// display name. Zero matches and multiple matches are both errors: the
// folder is the single source of truth for the day's uploads, so guessing
// between namesakes is not an option.
func (l *Lister) ResolveFolder(ctx context.Context, name string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}

	result, err := l.svc.Files.List().
		Q(folderQuery(name)).
		Fields("files(id, name)").
		Context(ctx).Do()
	if err != nil {
		return "", l.apiError("search folder", err)
	}

	switch len(result.Files) {
	case 0:
		return "", fmt.Errorf("%w: %q", domain.ErrFolderNotFound, name)
	case 1:
		logger.Debug("resolved folder %q to %s", name, result.Files[0].Id)
		return result.Files[0].Id, nil
	default:
		return "", fmt.Errorf("%w: %d folders named %q", domain.ErrFolderAmbiguous, len(result.Files), name)
	}
}

// ListUploadOwners returns the distinct owner identities of files in the
// folder modified on the local calendar day containing day. The listing is
// paginated; every page is fetched before the set is returned.
func (l *Lister) ListUploadOwners(ctx context.Context, folderID string, day time.Time) (domain.OwnerSet, error) {
	start, end := domain.DayWindow(day)
	owners := domain.NewOwnerSet()

	pageToken := ""
	pages := 0
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := l.svc.Files.List().
			Q(uploadsQuery(folderID, start, end)).
			Fields("nextPageToken, files(id, name, owners(emailAddress), modifiedTime, createdTime)").
			PageSize(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			return nil, l.apiError("list files", err)
		}

		pages++
		collectOwners(owners, result.Files)

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	logger.Debug("listed %d pages of uploads for folder %s", pages, folderID)
	return owners, nil
}

// collectOwners folds the owner identities of the listed files into the set.
func collectOwners(owners domain.OwnerSet, files []*drive.File) {
	for _, f := range files {
		for _, o := range f.Owners {
			owners.Add(o.EmailAddress)
		}
	}
}
