package models

// UserData is the full set of collections, as exported for backup or handed
// to a sync provider. Nil slices on import mean "leave untouched".
type UserData struct {
	StudySessions  []*StudySession  `json:"studySessions,omitempty"`
	Questions      []*Question      `json:"questions,omitempty"`
	Notes          []*Note          `json:"notes,omitempty"`
	Tasks          []*TodoItem      `json:"tasks,omitempty"`
	CalendarEvents []*CalendarEvent `json:"calendarEvents,omitempty"`
	MoodEntries    []*MoodEntry     `json:"moodEntries,omitempty"`
}
