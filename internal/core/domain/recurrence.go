package domain

import (
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
)

// OccurrenceSchedule lazily produces the occurrence dates of a recurrence
// template. The sequence starts at the template's own date; callers pull as
// many dates as they need, so the schedule is horizon-agnostic. A schedule
// is restartable via Reset and never shared between goroutines.
type OccurrenceSchedule struct {
	start    time.Time
	kind     RecurrenceKind
	interval int
	end      *time.Time // exclusive; nil means unbounded
	step     int
}

// NewOccurrenceSchedule builds a schedule starting at start, advancing by
// interval units of kind. Dates on or after end are never produced.
func NewOccurrenceSchedule(start time.Time, kind RecurrenceKind, interval int, end *time.Time) (*OccurrenceSchedule, error) {
	if !ValidRecurrenceKind(kind) {
		return nil, fmt.Errorf("%w: invalid recurrence kind %q", apperrors.ErrValidation, kind)
	}
	if interval < 1 {
		return nil, fmt.Errorf("%w: recurrence interval must be positive, got %d", apperrors.ErrValidation, interval)
	}
	return &OccurrenceSchedule{
		start:    start,
		kind:     kind,
		interval: interval,
		end:      end,
	}, nil
}

// Next returns the next occurrence date. The first call yields the start
// date itself. ok is false once the end date (exclusive) is reached.
func (s *OccurrenceSchedule) Next() (time.Time, bool) {
	d := s.dateAt(s.step)
	if s.end != nil && !d.Before(*s.end) {
		return time.Time{}, false
	}
	s.step++
	return d, true
}

// Reset rewinds the schedule to its first occurrence.
func (s *OccurrenceSchedule) Reset() {
	s.step = 0
}

// dateAt computes occurrence n without mutating the schedule. Month and
// year steps clamp to the last valid day of the target month, so a template
// anchored on the 31st lands on Feb 28/29 instead of spilling into March.
func (s *OccurrenceSchedule) dateAt(n int) time.Time {
	units := n * s.interval
	switch s.kind {
	case Weekly:
		return s.start.AddDate(0, 0, 7*units)
	case Yearly:
		return addMonthsClamped(s.start, 12*units)
	default: // Monthly
		return addMonthsClamped(s.start, units)
	}
}

// addMonthsClamped adds months to t keeping the anchor day-of-month,
// clamped to the last day of the target month. time.Time.AddDate is not
// used directly because it normalizes overflow (Jan 31 + 1 month = Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// OccurrenceExternalID derives the deterministic external id of occurrence
// seq of a template. Re-running an expansion reproduces the same ids, so
// the store's per-account uniqueness constraint turns repeats into
// conflicts instead of duplicates.
func OccurrenceExternalID(templateID string, seq int) string {
	return fmt.Sprintf("%s#%d", templateID, seq)
}
