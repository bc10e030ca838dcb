package models

import "time"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) GetID() string   { return n.ID }
func (n *Note) SetID(id string) { n.ID = id }
func (n *Note) Validate() error { return validateStruct(n) }

type Question struct {
	ID         string    `json:"id"`
	Text       string    `json:"text" validate:"required"`
	Category   string    `json:"category"`
	IsResolved bool      `json:"isResolved"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (q *Question) GetID() string   { return q.ID }
func (q *Question) SetID(id string) { q.ID = id }
func (q *Question) Validate() error { return validateStruct(q) }

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type TodoItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text" validate:"required"`
	IsCompleted bool       `json:"isCompleted"`
	Priority    string     `json:"priority" validate:"in:low,medium,high"`
	Category    string     `json:"category" validate:"in:personal,estudio"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (t *TodoItem) GetID() string   { return t.ID }
func (t *TodoItem) SetID(id string) { t.ID = id }
func (t *TodoItem) Validate() error { return validateStruct(t) }

const (
	MoodExcellent = "excellent"
	MoodGood      = "good"
	MoodOkay      = "okay"
	MoodStressed  = "stressed"
	MoodSad       = "sad"
)

var moodScores = map[string]int{
	MoodExcellent: 5,
	MoodGood:      4,
	MoodOkay:      3,
	MoodStressed:  2,
	MoodSad:       1,
}

// MoodScore maps a mood onto 1..5; unknown moods score 0.
func MoodScore(mood string) int {
	return moodScores[mood]
}

type MoodEntry struct {
	ID         string   `json:"id"`
	Date       string   `json:"date" validate:"required|date"`
	Mood       string   `json:"mood" validate:"required|in:excellent,good,okay,stressed,sad"`
	Note       string   `json:"note,omitempty"`
	StudyHours *float64 `json:"studyHours,omitempty"`
}

func (m *MoodEntry) GetID() string   { return m.ID }
func (m *MoodEntry) SetID(id string) { m.ID = id }
func (m *MoodEntry) Validate() error { return validateStruct(m) }
