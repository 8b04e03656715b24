package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driven"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driving"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// Ensure ReminderService implements the interface.
var _ driving.ReminderService = (*ReminderService)(nil)

// ReminderService coordinates one reconciliation pass over the monitored
// folder: roster in, reminders out.
type ReminderService struct {
	folderName string
	roster     driven.RosterLoader
	uploads    driven.UploadLister
	mailer     driven.Mailer
	runStore   driven.RunStore
	now        func() time.Time
}

// NewReminderService creates a reminder service. runStore may be nil, in
// which case run outcomes are only logged.
func NewReminderService(
	folderName string,
	roster driven.RosterLoader,
	uploads driven.UploadLister,
	mailer driven.Mailer,
	runStore driven.RunStore,
) *ReminderService {
	return &ReminderService{
		folderName: folderName,
		roster:     roster,
		uploads:    uploads,
		mailer:     mailer,
		runStore:   runStore,
		now:        time.Now,
	}
}

// RunOnce executes a full pass for the local calendar day containing day.
func (s *ReminderService) RunOnce(ctx context.Context, day time.Time) (*domain.RunSummary, error) {
	run := &domain.RunRecord{
		ID:        uuid.NewString(),
		Day:       domain.DayKey(day),
		StartedAt: s.now(),
	}

	logger.Section("daily reminder check " + run.Day)

	summary, err := s.runPass(ctx, day, run)

	run.EndedAt = s.now()
	if err != nil {
		run.Error = err.Error()
	}
	if summary != nil {
		run.Summary = *summary
	}
	s.journalRun(ctx, run)

	if err != nil {
		return nil, err
	}

	logger.Info("daily check completed: %d uploaded, %d reminded, %d checked",
		summary.Satisfied, summary.Reminded, summary.Total)
	return summary, nil
}

// runPass performs the pass steps. Any returned error aborts the run; the
// caller journals and logs it, and the scheduler carries on to the next day.
func (s *ReminderService) runPass(ctx context.Context, day time.Time, run *domain.RunRecord) (*domain.RunSummary, error) {
	// 1. Load the roster fresh
	participants, err := s.roster.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if len(participants) == 0 {
		return nil, domain.ErrNoParticipants
	}
	logger.Info("checking %d active participants", len(participants))

	// 2. Resolve the monitored folder
	folderID, err := s.uploads.ResolveFolder(ctx, s.folderName)
	if err != nil {
		return nil, fmt.Errorf("resolve folder %q: %w", s.folderName, err)
	}
	logger.Debug("monitoring folder %q (%s)", s.folderName, folderID)

	// 3. Single folder-wide listing for the day, all pages drained
	owners, err := s.uploads.ListUploadOwners(ctx, folderID, day)
	if err != nil {
		return nil, fmt.Errorf("list upload owners: %w", err)
	}
	logger.Debug("found %d distinct uploaders for %s", owners.Len(), run.Day)

	// 4. Classify and notify
	results, summary := Reconcile(participants, owners)
	for _, r := range results {
		if r.Classification == domain.ClassificationSatisfied {
			logger.Info("%s (%s) has uploaded today", r.Participant.Name, r.Participant.Email)
			continue
		}
		logger.Info("no upload found for %s (%s), sending reminder", r.Participant.Name, r.Participant.Email)
		s.notify(ctx, run.ID, r.Participant, day)
	}

	return &summary, nil
}

// notify sends one reminder. A dispatch failure degrades to a logged copy
// of the full message so no reminder is silently lost; it never aborts the
// rest of the run.
func (s *ReminderService) notify(ctx context.Context, runID string, p domain.Participant, day time.Time) {
	msg := ReminderMessage(p, day)

	err := s.mailer.Send(ctx, msg)
	if err != nil {
		logger.Error("failed to send reminder to %s: %v", msg.To, err)
		logger.Error("[EMAIL SEND FAILED] TO: %s | SUBJECT: %s | BODY: %s", msg.To, msg.Subject, msg.Body)
	} else {
		logger.Debug("reminder sent to %s", msg.To)
	}

	s.journalDispatch(ctx, &domain.DispatchRecord{
		RunID:     runID,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Delivered: err == nil,
		Error:     errString(err),
		SentAt:    s.now(),
	})
}

func (s *ReminderService) journalRun(ctx context.Context, run *domain.RunRecord) {
	if s.runStore == nil {
		return
	}
	if err := s.runStore.SaveRun(ctx, run); err != nil {
		logger.Warn("journal run %s: %v", run.ID, err)
	}
}

func (s *ReminderService) journalDispatch(ctx context.Context, d *domain.DispatchRecord) {
	if s.runStore == nil {
		return
	}
	if err := s.runStore.RecordDispatch(ctx, d); err != nil {
		logger.Warn("journal dispatch to %s: %v", d.Recipient, err)
	}
}

// ReminderMessage composes the reminder email for one participant.
func ReminderMessage(p domain.Participant, day time.Time) driven.Message {
	return driven.Message{
		To:      p.Email,
		Subject: fmt.Sprintf("Diary Reminder - %s", day.Format("02/01")),
		Body: fmt.Sprintf(`Dear %s,

Thanks for your response! Can you update the progress of your reading yesterday? We're really interested in your personal finding.

LateOwls`, p.Name),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
