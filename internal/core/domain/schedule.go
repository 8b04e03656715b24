package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TriggerTime is the local wall-clock time the daily pass fires.
type TriggerTime struct {
	Hour   int
	Minute int
}

// ParseTriggerTime parses a "HH:MM" string into a TriggerTime. The whole
// string must be consumed; trailing text or extra fields are errors.
func ParseTriggerTime(s string) (TriggerTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TriggerTime{}, fmt.Errorf("%w: trigger time %q must be HH:MM", ErrInvalidInput, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TriggerTime{}, fmt.Errorf("%w: trigger time %q must be HH:MM", ErrInvalidInput, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TriggerTime{}, fmt.Errorf("%w: trigger time %q must be HH:MM", ErrInvalidInput, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TriggerTime{}, fmt.Errorf("%w: trigger time %q out of range", ErrInvalidInput, s)
	}
	return TriggerTime{Hour: hour, Minute: minute}, nil
}

// String returns the trigger time in HH:MM form.
func (t TriggerTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Next returns the first instant strictly after now at which the trigger
// fires: today at the trigger time if that is still ahead, otherwise the
// same time tomorrow. Missed triggers are never caught up; callers simply
// ask for the next occurrence.
func (t TriggerTime) Next(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// DayWindow returns the local calendar day containing ts as a half-open
// interval [start, end). This is the window upload modification times are
// checked against.
func DayWindow(ts time.Time) (start, end time.Time) {
	start = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	return start, start.AddDate(0, 0, 1)
}

// DayKey returns the YYYY-MM-DD key for the local calendar day containing ts.
func DayKey(ts time.Time) string {
	return ts.Format("2006-01-02")
}
