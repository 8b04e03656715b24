// Package google provides constructors and rate limiting for the Google
// API services driveminder talks to.
package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveScope is the only Google API scope the application needs: upload
// checking reads file metadata and exports the roster sheet, nothing more.
const DriveScope = drive.DriveReadonlyScope

// NewDriveService creates a Google Drive API service using the provided TokenSource.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithTokenSource(ts))
}
