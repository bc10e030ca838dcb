package stats

import (
	"math"
	"studytrack/internal/models"
	"time"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// MoodSummary averages mood scores over the last 7 (week) or 30 (month)
// days. An entry counts when its local midnight is not before now minus the
// period.
func MoodSummary(entries []*models.MoodEntry, period string, now time.Time) models.MoodSummary {
	days := 7
	if period == PeriodMonth {
		days = 30
	} else {
		period = PeriodWeek
	}
	since := now.Add(-time.Duration(days) * 24 * time.Hour)

	summary := models.MoodSummary{Period: period}
	counts := make(map[string]int)
	order := make([]string, 0, 5)
	score := 0

	for _, e := range entries {
		if e == nil {
			continue
		}
		day, err := models.ParseDate(e.Date, now.Location())
		if err != nil || day.Before(since) {
			continue
		}
		summary.Entries++
		score += models.MoodScore(e.Mood)
		if counts[e.Mood] == 0 {
			order = append(order, e.Mood)
		}
		counts[e.Mood]++
	}

	if summary.Entries == 0 {
		return summary
	}
	summary.AverageScore = float64(score) / float64(summary.Entries)
	best := 0
	for _, mood := range order {
		if counts[mood] > best {
			best = counts[mood]
			summary.MostCommonMood = mood
		}
	}
	return summary
}

func TodoSummary(items []*models.TodoItem) models.TodoSummary {
	var s models.TodoSummary
	for _, t := range items {
		if t == nil {
			continue
		}
		s.Total++
		if t.IsCompleted {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

func QuestionSummary(items []*models.Question) models.QuestionSummary {
	var s models.QuestionSummary
	for _, q := range items {
		if q == nil {
			continue
		}
		s.Total++
		if q.IsResolved {
			s.Resolved++
		}
	}
	s.Pending = s.Total - s.Resolved
	return s
}
