package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Inspect and test mail settings",
}

var mailTestTo string

var mailTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test email using the configured SMTP settings",
	Long: `Send a single test message through the configured SMTP server.

If no password is configured, it is read from the terminal without echo and
used for this test only; it is not written anywhere.

Examples:
  driveminder mail test
  driveminder mail test --to someone@example.com`,
	RunE: runMailTest,
}

func init() {
	mailTestCmd.Flags().StringVar(&mailTestTo, "to", "", "Recipient address (default: the configured sender)")
	mailCmd.AddCommand(mailTestCmd)
	rootCmd.AddCommand(mailCmd)
}

func runMailTest(cmd *cobra.Command, _ []string) error {
	if appConfig == nil {
		return errors.New("configuration not loaded")
	}
	if mailerFactory == nil {
		return errors.New("mailer not configured")
	}

	mailCfg := appConfig.Mail
	if mailCfg.Username == "" {
		return fmt.Errorf("%w: MAIL_USERNAME is not set", domain.ErrMailNotConfigured)
	}
	if mailCfg.Password == "" {
		cmd.Printf("Password for %s: ", mailCfg.Username)
		mailCfg.Password = readPassword()
		cmd.Println()
		if mailCfg.Password == "" {
			return fmt.Errorf("%w: no password provided", domain.ErrMailNotConfigured)
		}
	}

	mailer, err := mailerFactory(mailCfg)
	if err != nil {
		return err
	}

	to := mailTestTo
	if to == "" {
		to = mailCfg.DefaultSender
	}
	if to == "" {
		to = mailCfg.Username
	}

	msg := driven.Message{
		To:      to,
		Subject: "driveminder test message",
		Body: fmt.Sprintf("This is a test message from driveminder, sent at %s.\n\n"+
			"If you are reading this, the SMTP settings work.\n",
			time.Now().Format(time.RFC1123)),
	}

	cmd.Printf("Sending test message to %s via %s...\n", to, mailCfg.Addr())

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if err := mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("test message failed: %w", err)
	}

	cmd.Println("Test message sent.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
