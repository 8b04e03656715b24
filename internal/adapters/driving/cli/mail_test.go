package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
)

type stubMailer struct {
	sent []driven.Message
	err  error
}

func (s *stubMailer) Send(_ context.Context, msg driven.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func withMailTestDeps(t *testing.T, cfg domain.Config, mailer *stubMailer) {
	t.Helper()
	originalConfig := appConfig
	originalFactory := mailerFactory
	appConfig = &cfg
	mailerFactory = func(_ domain.MailConfig) (driven.Mailer, error) {
		return mailer, nil
	}
	t.Cleanup(func() {
		appConfig = originalConfig
		mailerFactory = originalFactory
	})
}

func testMailConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Mail.Username = "owls@example.com"
	cfg.Mail.Password = "secret"
	cfg.Mail.DefaultSender = "owls@example.com"
	return cfg
}

func TestMailTestCmd_SendsToDefaultSender(t *testing.T) {
	mailer := &stubMailer{}
	withMailTestDeps(t, testMailConfig(), mailer)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"mail", "test"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "owls@example.com", mailer.sent[0].To)
	assert.Equal(t, "driveminder test message", mailer.sent[0].Subject)
	assert.Contains(t, buf.String(), "Test message sent.")
}

func TestMailTestCmd_ToFlagOverridesRecipient(t *testing.T) {
	mailer := &stubMailer{}
	withMailTestDeps(t, testMailConfig(), mailer)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"mail", "test", "--to", "other@example.com"})
	defer func() {
		rootCmd.SetArgs(nil)
		mailTestTo = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "other@example.com", mailer.sent[0].To)
}

func TestMailTestCmd_MissingUsername(t *testing.T) {
	cfg := testMailConfig()
	cfg.Mail.Username = ""
	withMailTestDeps(t, cfg, &stubMailer{})

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"mail", "test"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMailNotConfigured)
}

func TestMailTestCmd_SendFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("connection refused")}
	withMailTestDeps(t, testMailConfig(), mailer)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"mail", "test"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "test message failed")
}
