package services

import (
	"fmt"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/providers"
)

// DataServiceInterface moves all collections in and out in one document,
// the shape a sync provider pushes and pulls.
type DataServiceInterface interface {
	Export() *models.UserData
	Import(data *models.UserData) error
}

type DataService struct {
	registry *collections.Registry
	logger   providers.Logger
}

func NewDataService(registry *collections.Registry, logger providers.Logger) DataServiceInterface {
	return &DataService{registry: registry, logger: logger}
}

func (ds *DataService) Export() *models.UserData {
	return &models.UserData{
		StudySessions:  ds.registry.Sessions.All(),
		Questions:      ds.registry.Questions.All(),
		Notes:          ds.registry.Notes.All(),
		Tasks:          ds.registry.Tasks.All(),
		CalendarEvents: ds.registry.Events.All(),
		MoodEntries:    ds.registry.Mood.All(),
	}
}

// Import replaces every collection present in data. Every present
// collection is checked first; nothing is replaced if one is rejected.
func (ds *DataService) Import(data *models.UserData) error {
	for _, ev := range data.CalendarEvents {
		if ev == nil {
			continue
		}
		collections.MigrateEventCategory(ev)
		ev.Normalize()
	}

	steps := []struct {
		name    string
		present bool
		check   func() error
		replace func() error
	}{
		{"studySessions", data.StudySessions != nil,
			func() error { return ds.registry.Sessions.Check(data.StudySessions) },
			func() error { return ds.registry.Sessions.Replace(data.StudySessions) }},
		{"questions", data.Questions != nil,
			func() error { return ds.registry.Questions.Check(data.Questions) },
			func() error { return ds.registry.Questions.Replace(data.Questions) }},
		{"notes", data.Notes != nil,
			func() error { return ds.registry.Notes.Check(data.Notes) },
			func() error { return ds.registry.Notes.Replace(data.Notes) }},
		{"tasks", data.Tasks != nil,
			func() error { return ds.registry.Tasks.Check(data.Tasks) },
			func() error { return ds.registry.Tasks.Replace(data.Tasks) }},
		{"calendarEvents", data.CalendarEvents != nil,
			func() error { return ds.registry.Events.Check(data.CalendarEvents) },
			func() error { return ds.registry.Events.Replace(data.CalendarEvents) }},
		{"moodEntries", data.MoodEntries != nil,
			func() error { return checkMoodDates(data.MoodEntries, ds.registry.Mood.Check) },
			func() error { return ds.registry.Mood.Replace(data.MoodEntries) }},
	}

	for _, step := range steps {
		if !step.present {
			continue
		}
		if err := step.check(); err != nil {
			return fmt.Errorf("import %s: %w", step.name, err)
		}
	}
	for _, step := range steps {
		if !step.present {
			continue
		}
		if err := step.replace(); err != nil {
			return err
		}
		ds.logger.Infof(providers.TypeApp, "Imported %s", step.name)
	}
	return nil
}

// checkMoodDates rejects two entries for the same date on top of check.
func checkMoodDates(entries []*models.MoodEntry, check func([]*models.MoodEntry) error) error {
	if err := check(entries); err != nil {
		return err
	}
	dates := make(map[string]string, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if other, taken := dates[e.Date]; taken {
			return fmt.Errorf("moodEntries %q: %s already has entry %q: %w", e.ID, e.Date, other, collections.ErrDuplicateID)
		}
		dates[e.Date] = e.ID
	}
	return nil
}
