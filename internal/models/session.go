package models

import (
	"fmt"
	"time"
)

type StudySession struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int64      `json:"duration"`
	Date      string     `json:"date"`
}

func (s *StudySession) GetID() string   { return s.ID }
func (s *StudySession) SetID(id string) { s.ID = id }

// NewStudySession builds a session spanning [start, end]. Both instants are
// truncated to whole seconds so Duration equals EndTime-StartTime exactly.
// The session is dated by the local day on which it ended.
func NewStudySession(start, end time.Time, loc *time.Location) *StudySession {
	start = start.Truncate(time.Second)
	end = end.Truncate(time.Second)
	if end.Before(start) {
		end = start
	}
	return &StudySession{
		ID:        NewID(),
		StartTime: start,
		EndTime:   &end,
		Duration:  int64(end.Sub(start) / time.Second),
		Date:      FormatDate(end.In(loc)),
	}
}

// Validate checks a session built outside NewStudySession, such as an
// imported one.
func (s *StudySession) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("%w: negative duration %d", ErrInvalidRecord, s.Duration)
	}
	if _, err := ParseDate(s.Date, time.UTC); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidRecord, s.Date)
	}
	if s.EndTime != nil {
		if span := int64(s.EndTime.Sub(s.StartTime) / time.Second); span != s.Duration {
			return fmt.Errorf("%w: duration %d does not match span %d", ErrInvalidRecord, s.Duration, span)
		}
	}
	return nil
}
