package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/lateowl-labs/driveminder/internal/adapters/driving/oauth"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

var (
	loginPort    int
	loginTimeout time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize driveminder with Google",
	Long: `Run the one-time Google authorization flow.

Opens a browser to the Google consent page and waits for the redirect on a
local callback server. The resulting token is saved next to the config and
refreshed automatically afterwards; login only needs to be repeated if the
token is revoked.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().IntVar(&loginPort, "port", 0, "Local callback port (0 picks a free port)")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "How long to wait for the browser callback")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if oauthConfig == nil {
		return errors.New("oauth client not configured; check that the credentials file exists")
	}
	if tokenSaver == nil {
		return errors.New("token store not configured")
	}

	state, err := oauth.GenerateState()
	if err != nil {
		return err
	}

	server := oauth.NewCallbackServer(loginPort, state)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() {
		if stopErr := server.Stop(); stopErr != nil {
			logger.Warn("callback server shutdown: %v", stopErr)
		}
	}()

	cfg := *oauthConfig
	cfg.RedirectURL = server.RedirectURI()

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	cmd.Println("Opening your browser to authorize driveminder.")
	cmd.Println("If it does not open, visit this URL:")
	cmd.Println()
	cmd.Printf("  %s\n\n", authURL)

	if err := oauth.OpenBrowser(authURL); err != nil {
		logger.Debug("could not open browser: %v", err)
	}

	cmd.Println("Waiting for authorization...")
	code, err := server.WaitForCode(loginTimeout)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := tokenSaver(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	cmd.Println("Authorization successful. Token saved.")
	return nil
}
