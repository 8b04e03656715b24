package driven

import (
	"context"
	"time"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
)

// UploadLister queries the file-listing service for the monitored folder.
type UploadLister interface {
	// ResolveFolder returns the identifier of the folder with the given
	// display name.
	//
	// Returns domain.ErrFolderNotFound if no folder matches and
	// domain.ErrFolderAmbiguous if more than one does. Both are fatal
	// for the run.
	ResolveFolder(ctx context.Context, name string) (string, error)

	// ListUploadOwners returns the distinct owner identities of files in
	// the folder whose modification time falls on the local calendar day
	// containing day. Implementations must drain every page of the
	// listing before returning; a partial listing produces false
	// "no upload" results.
	ListUploadOwners(ctx context.Context, folderID string, day time.Time) (domain.OwnerSet, error)
}
