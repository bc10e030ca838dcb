package services

import (
	"fmt"
	"strings"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/stats"
	"studytrack/internal/structures"
	"time"
)

// RecordStore is the CRUD surface of a record collection.
type RecordStore[T models.Record] interface {
	All() []T
	Get(id string) (T, bool)
	Add(item T) error
	Update(item T) error
	Remove(id string) error
}

type validatable interface {
	Validate() error
}

// hookedStore validates records and lets the owner stamp them before they
// reach the collection.
type hookedStore[T models.Record] struct {
	*collections.Collection[T]
	beforeAdd    func(item T)
	beforeUpdate func(prev, next T)
}

func (h *hookedStore[T]) Add(item T) error {
	if h.beforeAdd != nil {
		h.beforeAdd(item)
	}
	if v, ok := any(item).(validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return h.Collection.Add(item)
}

func (h *hookedStore[T]) Update(item T) error {
	prev, ok := h.Collection.Get(item.GetID())
	if !ok {
		return fmt.Errorf("%s %q: %w", h.Key(), item.GetID(), collections.ErrNotFound)
	}
	if h.beforeUpdate != nil {
		h.beforeUpdate(prev, item)
	}
	if v, ok := any(item).(validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return h.Collection.Update(item)
}

// moodBook keeps at most one mood entry per date: adding for a date that
// already has an entry replaces it, and moving an entry onto a taken date is
// rejected with ErrDuplicateID.
type moodBook struct {
	*hookedStore[*models.MoodEntry]
	now func() time.Time
}

// normalize fills the date with today and trims the note. It runs before the
// date lookup so undated saves collide with today's entry.
func (m *moodBook) normalize(entry *models.MoodEntry) {
	if entry.Date == "" {
		entry.Date = models.FormatDate(m.now())
	}
	entry.Note = strings.TrimSpace(entry.Note)
}

func (m *moodBook) onDate(date, exceptID string) (*models.MoodEntry, bool) {
	for _, existing := range m.All() {
		if existing.Date == date && existing.ID != exceptID {
			return existing, true
		}
	}
	return nil, false
}

func (m *moodBook) Add(entry *models.MoodEntry) error {
	m.normalize(entry)
	if existing, ok := m.onDate(entry.Date, entry.ID); ok {
		entry.ID = existing.ID
		return m.hookedStore.Update(entry)
	}
	return m.hookedStore.Add(entry)
}

func (m *moodBook) Update(entry *models.MoodEntry) error {
	prev, ok := m.Get(entry.GetID())
	if !ok {
		return fmt.Errorf("%s %q: %w", m.Key(), entry.GetID(), collections.ErrNotFound)
	}
	if entry.Date == "" {
		entry.Date = prev.Date
	}
	m.normalize(entry)
	if clash, ok := m.onDate(entry.Date, entry.ID); ok {
		return fmt.Errorf("mood %q: %s already has entry %q: %w", entry.ID, entry.Date, clash.ID, collections.ErrDuplicateID)
	}
	return m.hookedStore.Update(entry)
}

type JournalServiceInterface interface {
	Notes() RecordStore[*models.Note]
	Questions() RecordStore[*models.Question]
	Tasks() RecordStore[*models.TodoItem]
	Mood() RecordStore[*models.MoodEntry]
	MoodSummary(period string) models.MoodSummary
	TodoSummary() models.TodoSummary
	QuestionSummary() models.QuestionSummary
}

type JournalService struct {
	notes     *hookedStore[*models.Note]
	questions *hookedStore[*models.Question]
	tasks     *hookedStore[*models.TodoItem]
	mood      *moodBook
	now       func() time.Time
}

func NewJournalService(conf *structures.Config, registry *collections.Registry) JournalServiceInterface {
	loc := conf.Location()
	return newJournalService(registry, func() time.Time { return time.Now().In(loc) })
}

func newJournalService(registry *collections.Registry, now func() time.Time) *JournalService {
	js := &JournalService{now: now}

	js.notes = &hookedStore[*models.Note]{
		Collection: registry.Notes,
		beforeAdd: func(n *models.Note) {
			n.Title = strings.TrimSpace(n.Title)
			if n.CreatedAt.IsZero() {
				n.CreatedAt = now()
			}
			n.UpdatedAt = now()
		},
		beforeUpdate: func(prev, next *models.Note) {
			next.Title = strings.TrimSpace(next.Title)
			next.CreatedAt = prev.CreatedAt
			next.UpdatedAt = now()
		},
	}

	js.questions = &hookedStore[*models.Question]{
		Collection: registry.Questions,
		beforeAdd: func(q *models.Question) {
			q.Text = strings.TrimSpace(q.Text)
			if q.CreatedAt.IsZero() {
				q.CreatedAt = now()
			}
		},
		beforeUpdate: func(prev, next *models.Question) {
			next.Text = strings.TrimSpace(next.Text)
			next.CreatedAt = prev.CreatedAt
		},
	}

	js.tasks = &hookedStore[*models.TodoItem]{
		Collection: registry.Tasks,
		beforeAdd: func(t *models.TodoItem) {
			t.Text = strings.TrimSpace(t.Text)
			if t.Priority == "" {
				t.Priority = models.PriorityMedium
			}
			if t.Category == "" {
				t.Category = models.CategoryPersonal
			}
			if t.CreatedAt.IsZero() {
				t.CreatedAt = now()
			}
			if t.IsCompleted && t.CompletedAt == nil {
				at := now()
				t.CompletedAt = &at
			}
		},
		beforeUpdate: func(prev, next *models.TodoItem) {
			next.Text = strings.TrimSpace(next.Text)
			next.CreatedAt = prev.CreatedAt
			switch {
			case next.IsCompleted && !prev.IsCompleted:
				at := now()
				next.CompletedAt = &at
			case next.IsCompleted:
				next.CompletedAt = prev.CompletedAt
			default:
				next.CompletedAt = nil
			}
		},
	}

	js.mood = &moodBook{
		hookedStore: &hookedStore[*models.MoodEntry]{Collection: registry.Mood},
		now:         now,
	}

	return js
}

func (js *JournalService) Notes() RecordStore[*models.Note]         { return js.notes }
func (js *JournalService) Questions() RecordStore[*models.Question] { return js.questions }
func (js *JournalService) Tasks() RecordStore[*models.TodoItem]     { return js.tasks }
func (js *JournalService) Mood() RecordStore[*models.MoodEntry]     { return js.mood }

func (js *JournalService) MoodSummary(period string) models.MoodSummary {
	return stats.MoodSummary(js.mood.All(), period, js.now())
}

func (js *JournalService) TodoSummary() models.TodoSummary {
	return stats.TodoSummary(js.tasks.All())
}

func (js *JournalService) QuestionSummary() models.QuestionSummary {
	return stats.QuestionSummary(js.questions.All())
}
