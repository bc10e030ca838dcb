package models

type BestDay struct {
	Date     string `json:"date"`
	Duration int64  `json:"duration"`
}

// StudyStats are the rollups over the session collection, in seconds.
type StudyStats struct {
	Today                int64   `json:"today"`
	ThisWeek             int64   `json:"thisWeek"`
	ThisMonth            int64   `json:"thisMonth"`
	TotalSessions        int     `json:"totalSessions"`
	AverageSessionLength int64   `json:"averageSessionLength"`
	BestDay              BestDay `json:"bestDay"`
	CurrentStreak        int     `json:"currentStreak"`
}

type DayTotal struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Duration int64  `json:"duration"`
}

type MoodSummary struct {
	Period         string  `json:"period"`
	Entries        int     `json:"entries"`
	AverageScore   float64 `json:"averageScore"`
	MostCommonMood string  `json:"mostCommonMood"`
}

type TodoSummary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

type QuestionSummary struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Pending  int `json:"pending"`
}
