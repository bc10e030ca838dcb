package services

import (
	"fmt"
	"sort"
	"strings"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/structures"
	"time"

	ical "github.com/arran4/golang-ical"
)

const (
	icsProductID       = "-//studytrack//calendar//EN"
	timedEventDuration = time.Hour
)

type CalendarServiceInterface interface {
	List() []*models.CalendarEvent
	ListByDate(date string) []*models.CalendarEvent
	ListByMonth(month string) []*models.CalendarEvent
	Get(id string) (*models.CalendarEvent, bool)
	Create(ev models.CalendarEvent) (*models.CalendarEvent, error)
	Update(ev models.CalendarEvent) (*models.CalendarEvent, error)
	Delete(id string) error
	Move(id, date string) (*models.CalendarEvent, error)
	Duplicate(id, date string) (*models.CalendarEvent, error)
	ExportICS() string
}

type CalendarService struct {
	events *collections.Collection[*models.CalendarEvent]
	loc    *time.Location
	logger providers.Logger
}

func NewCalendarService(conf *structures.Config, registry *collections.Registry, logger providers.Logger) CalendarServiceInterface {
	return &CalendarService{
		events: registry.Events,
		loc:    conf.Location(),
		logger: logger,
	}
}

func (cs *CalendarService) List() []*models.CalendarEvent {
	return cs.events.All()
}

func (cs *CalendarService) ListByDate(date string) []*models.CalendarEvent {
	return cs.filter(func(e *models.CalendarEvent) bool { return e.Date == date })
}

// ListByMonth returns the events of a "YYYY-MM" month ordered by date and time.
func (cs *CalendarService) ListByMonth(month string) []*models.CalendarEvent {
	prefix := month + "-"
	out := cs.filter(func(e *models.CalendarEvent) bool { return strings.HasPrefix(e.Date, prefix) })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func (cs *CalendarService) filter(keep func(*models.CalendarEvent) bool) []*models.CalendarEvent {
	out := make([]*models.CalendarEvent, 0)
	for _, e := range cs.events.All() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (cs *CalendarService) Get(id string) (*models.CalendarEvent, bool) {
	return cs.events.Get(id)
}

func (cs *CalendarService) Create(ev models.CalendarEvent) (*models.CalendarEvent, error) {
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Normalize()
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := cs.events.Add(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (cs *CalendarService) Update(ev models.CalendarEvent) (*models.CalendarEvent, error) {
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Normalize()
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := cs.events.Update(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (cs *CalendarService) Delete(id string) error {
	return cs.events.Remove(id)
}

// Move puts the event on another date, keeping its time of day.
func (cs *CalendarService) Move(id, date string) (*models.CalendarEvent, error) {
	current, ok := cs.events.Get(id)
	if !ok {
		return nil, fmt.Errorf("event %q: %w", id, collections.ErrNotFound)
	}
	moved := *current
	moved.Date = date
	return cs.Update(moved)
}

// Duplicate copies the event under a new id onto date, or onto the same date
// when date is empty.
func (cs *CalendarService) Duplicate(id, date string) (*models.CalendarEvent, error) {
	current, ok := cs.events.Get(id)
	if !ok {
		return nil, fmt.Errorf("event %q: %w", id, collections.ErrNotFound)
	}
	clone := *current
	clone.ID = ""
	if date != "" {
		clone.Date = date
	}
	return cs.Create(clone)
}

// ExportICS renders all events as an iCalendar document. Events without a
// time become all-day entries.
func (cs *CalendarService) ExportICS() string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := time.Now().UTC()
	for _, e := range cs.events.All() {
		day, err := models.ParseDate(e.Date, cs.loc)
		if err != nil {
			cs.logger.Warnf(providers.TypeApp, "Event %s left out of export: %s", e.ID, err)
			continue
		}

		vevent := cal.AddEvent(e.ID)
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
		vevent.AddProperty(ical.ComponentPropertyCategories, strings.ToUpper(e.Category+","+e.Type))

		if e.Time == "" {
			vevent.SetAllDayStartAt(day)
			vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		clock, err := models.ParseClock(e.Time)
		if err != nil {
			vevent.SetAllDayStartAt(day)
			vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		start := clock.On(day)
		vevent.SetStartAt(start)
		vevent.SetEndAt(start.Add(timedEventDuration))
	}
	return cal.Serialize()
}
