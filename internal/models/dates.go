package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by every dated record.
const DateLayout = "2006-01-02"

// ClockTime is a wall-clock "HH:MM" value.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses "HH:MM" into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("malformed time %q", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("malformed hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("malformed minute in %q", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// On returns the instant at which the clock time occurs on the given date.
func (c ClockTime) On(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, c.Hour, c.Minute, 0, 0, date.Location())
}

// ParseDate parses a YYYY-MM-DD string as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay zeroes the time of day, keeping the location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayNumber counts calendar days since 1970-01-01 for the local date of t.
// It is independent of DST because it is computed on the date alone.
func DayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
