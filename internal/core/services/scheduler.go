package services

import (
	"context"
	"sync"
	"time"

	"github.com/lateowl-labs/driveminder/internal/core/domain"
	"github.com/lateowl-labs/driveminder/internal/core/ports/driving"
	"github.com/lateowl-labs/driveminder/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// pollInterval is how often the loop checks whether the trigger time has
// been reached. Sub-minute precision is not a goal.
const pollInterval = time.Minute

// Scheduler fires the reminder pass once per day at the configured time.
// Two states: idle (waiting for the trigger) and running (one pass in
// flight). A pass always returns the loop to idle, whether it succeeded
// or aborted, and missed triggers are never caught up.
type Scheduler struct {
	trigger  domain.TriggerTime
	reminder driving.ReminderService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	now func() time.Time
}

// NewScheduler creates a scheduler that runs reminder at the trigger time.
func NewScheduler(trigger domain.TriggerTime, reminder driving.ReminderService) *Scheduler {
	return &Scheduler{
		trigger:  trigger,
		reminder: reminder,
		now:      time.Now,
	}
}

// Start begins the scheduler loop. This method blocks until ctx is
// cancelled or Stop is called; both are clean shutdowns and return nil.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	nextRun := s.trigger.Next(s.now())
	logger.Info("daily check scheduled for %s, next run at %s",
		s.trigger, nextRun.Format("2006-01-02 15:04"))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Context cancellation is how an interrupt reaches the loop;
			// it is a clean shutdown, same as Stop.
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			if s.now().Before(nextRun) {
				continue
			}
			s.runPass(ctx)
			// Schedule from now: a pass that overran the next trigger is
			// not replayed.
			nextRun = s.trigger.Next(s.now())
			logger.Info("next run at %s", nextRun.Format("2006-01-02 15:04"))
		}
	}
}

// Stop gracefully shuts down the scheduler, waiting for a running pass.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// runPass executes one reminder pass. Pass failures are logged and the
// loop continues to the next scheduled trigger.
func (s *Scheduler) runPass(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	if _, err := s.reminder.RunOnce(ctx, s.now()); err != nil {
		logger.Error("daily check aborted: %v", err)
	}
}
