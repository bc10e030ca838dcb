package models

import (
	"fmt"
	"time"
)

const (
	EventTypeExam       = "exam"
	EventTypeAssignment = "assignment"
	EventTypeStudy      = "study"
	EventTypeOther      = "other"

	CategoryPersonal = "personal"
	CategoryStudy    = "estudio"
)

type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required|date"`
	Time        string `json:"time,omitempty"`
	Type        string `json:"type" validate:"required|in:exam,assignment,study,other"`
	Category    string `json:"category" validate:"in:personal,estudio"`
	Description string `json:"description,omitempty"`
}

func (e *CalendarEvent) GetID() string   { return e.ID }
func (e *CalendarEvent) SetID(id string) { e.ID = id }

// Normalize fills the defaults of optional fields before validation.
func (e *CalendarEvent) Normalize() {
	if e.Type == "" {
		e.Type = EventTypeOther
	}
	if e.Category == "" {
		e.Category = CategoryStudy
	}
}

func (e *CalendarEvent) Validate() error {
	if err := validateStruct(e); err != nil {
		return err
	}
	if e.Time != "" {
		if _, err := ParseClock(e.Time); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRecord, err)
		}
	}
	return nil
}

// EffectiveTime is the instant the event happens: its own time of day, or
// fallback when it has none.
func (e *CalendarEvent) EffectiveTime(loc *time.Location, fallback ClockTime) (time.Time, error) {
	day, err := ParseDate(e.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	clock := fallback
	if e.Time != "" {
		clock, err = ParseClock(e.Time)
		if err != nil {
			return time.Time{}, fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	return clock.On(day), nil
}

// IsStudy reports whether the event belongs to the study category. Legacy
// records without a category count as study.
func (e *CalendarEvent) IsStudy() bool {
	return e.Category == "" || e.Category == CategoryStudy
}
