package domain

import (
	"strings"
	"time"
)

// UploadRecord is a file observed in the monitored Drive folder.
// Records are transient: fetched fresh each run and never persisted.
type UploadRecord struct {
	// ID is the Drive file identifier.
	ID string

	// Name is the file name.
	Name string

	// OwnerEmails are the email addresses of the file's owners.
	OwnerEmails []string

	// ModifiedTime is when the file was last modified.
	ModifiedTime time.Time
}

// OwnerSet is the set of identities that own at least one upload for the
// target day. Membership tests are case-insensitive: identities are
// normalised on insertion and on lookup.
type OwnerSet map[string]struct{}

// NewOwnerSet creates an empty owner set.
func NewOwnerSet() OwnerSet {
	return make(OwnerSet)
}

// Add inserts an identity into the set.
func (s OwnerSet) Add(email string) {
	key := strings.ToLower(strings.TrimSpace(email))
	if key == "" {
		return
	}
	s[key] = struct{}{}
}

// Contains reports whether the identity is in the set.
func (s OwnerSet) Contains(email string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Len returns the number of distinct identities in the set.
func (s OwnerSet) Len() int {
	return len(s)
}
