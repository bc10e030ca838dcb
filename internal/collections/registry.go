package collections

import (
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/storage"
)

// Registry holds every record collection of the application.
type Registry struct {
	Sessions  *Collection[*models.StudySession]
	Events    *Collection[*models.CalendarEvent]
	Notes     *Collection[*models.Note]
	Questions *Collection[*models.Question]
	Tasks     *Collection[*models.TodoItem]
	Mood      *Collection[*models.MoodEntry]
}

func NewRegistry(store storage.KeyValueStore, logger providers.Logger) *Registry {
	r := &Registry{
		Sessions:  New[*models.StudySession](storage.KeyStudySessions, store, logger),
		Events:    New[*models.CalendarEvent](storage.KeyCalendarEvents, store, logger),
		Notes:     New[*models.Note](storage.KeyNotes, store, logger),
		Questions: New[*models.Question](storage.KeyQuestions, store, logger),
		Tasks:     New[*models.TodoItem](storage.KeyTodoItems, store, logger),
		Mood:      New[*models.MoodEntry](storage.KeyMoodEntries, store, logger),
	}

	if n := r.Events.Migrate(MigrateEventCategory); n > 0 {
		logger.Infof(providers.TypeApp, "Migrated %d calendar events to the default category", n)
	}
	return r
}

// MigrateEventCategory gives legacy events without a category the study one.
func MigrateEventCategory(e *models.CalendarEvent) bool {
	if e.Category != "" {
		return false
	}
	e.Category = models.CategoryStudy
	return true
}

// Sizes returns the record count per collection key.
func (r *Registry) Sizes() map[string]int {
	return map[string]int{
		r.Sessions.Key():  r.Sessions.Len(),
		r.Events.Key():    r.Events.Len(),
		r.Notes.Key():     r.Notes.Len(),
		r.Questions.Key(): r.Questions.Len(),
		r.Tasks.Key():     r.Tasks.Len(),
		r.Mood.Key():      r.Mood.Len(),
	}
}

// ReportSizes publishes Sizes to the records gauge.
func (r *Registry) ReportSizes(metrics providers.MetricsProviderInterface) {
	for key, n := range r.Sizes() {
		metrics.SetRecordsTotal(key, n)
	}
}
