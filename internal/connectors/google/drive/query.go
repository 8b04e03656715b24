package drive

import (
	"fmt"
	"strings"
	"time"
)

// MIME types used in Drive queries.
const (
	MimeTypeFolder = "application/vnd.google-apps.folder"
	MimeTypeSheet  = "application/vnd.google-apps.spreadsheet"
)

// escapeName escapes a display name for use inside a single-quoted Drive
// query literal.
func escapeName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	return strings.ReplaceAll(name, `'`, `\'`)
}

// folderQuery matches non-trashed folders with the given display name.
func folderQuery(name string) string {
	return fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeName(name), MimeTypeFolder)
}

// sheetQuery matches non-trashed spreadsheets with the given display name.
func sheetQuery(name string) string {
	return fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeName(name), MimeTypeSheet)
}

// uploadsQuery matches non-trashed files in the folder whose modification
// time falls in [start, end). Times are sent in RFC 3339, the Drive API's
// timestamp format.
func uploadsQuery(folderID string, start, end time.Time) string {
	return fmt.Sprintf(
		"'%s' in parents and modifiedTime >= '%s' and modifiedTime < '%s' and trashed = false",
		folderID, start.Format(time.RFC3339), end.Format(time.RFC3339))
}
