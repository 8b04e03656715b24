// Package auth manages the Google OAuth client configuration and the
// persisted user token.
//
// The token lives in token.json, written by `driveminder login` and read
// at every startup. Refreshed tokens are written back so the refresh token
// keeps working across restarts.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// NewOAuthConfig builds the oauth2 config from the client secrets JSON
// downloaded from Google Cloud Console (credentials.json).
func NewOAuthConfig(credentialsFile string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s missing, download it from Google Cloud Console", domain.ErrAuthRequired, credentialsFile)
		}
		return nil, fmt.Errorf("read client secrets: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a persisted token.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no token at %s, run `driveminder login` first", domain.ErrAuthRequired, path)
		}
		return nil, fmt.Errorf("open token: %w", err)
	}
	defer f.Close()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: token at %s is unreadable", domain.ErrAuthRequired, path)
	}
	return &token, nil
}

// SaveToken persists a token with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// persistingTokenSource wraps an oauth2.TokenSource and writes every
// refreshed token back to disk.
type persistingTokenSource struct {
	mu   sync.Mutex
	path string
	src  oauth2.TokenSource
	last string
}

// TokenSource returns a self-refreshing token source seeded from the
// persisted token. Refreshed access tokens are saved back to path.
func TokenSource(ctx context.Context, cfg *oauth2.Config, path string) (oauth2.TokenSource, error) {
	token, err := LoadToken(path)
	if err != nil {
		return nil, err
	}
	return &persistingTokenSource{
		path: path,
		src:  cfg.TokenSource(ctx, token),
		last: token.AccessToken,
	}, nil
}

// Token returns a valid token, persisting it if the underlying source
// refreshed it.
func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	token, err := p.src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthRequired, err)
	}

	if token.AccessToken != p.last {
		p.last = token.AccessToken
		if err := SaveToken(p.path, token); err != nil {
			logger.Warn("persist refreshed token: %v", err)
		} else {
			logger.Debug("refreshed token persisted to %s", p.path)
		}
	}

	return token, nil
}
