package google

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrRateLimited indicates the API rate limit was exceeded.
var ErrRateLimited = errors.New("google: rate limit exceeded")

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}
