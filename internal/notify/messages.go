package notify

import (
	"fmt"
	"strings"
	"studytrack/internal/models"
)

const dailySummaryTitle = "🌅 Good morning! You have events today:"

func eventIcon(e *models.CalendarEvent) string {
	if !e.IsStudy() {
		return "📅"
	}
	switch e.Type {
	case models.EventTypeExam:
		return "📝"
	case models.EventTypeAssignment:
		return "📋"
	case models.EventTypeStudy:
		return "📚"
	default:
		return "📖"
	}
}

func reminderTitle(e *models.CalendarEvent) string {
	return fmt.Sprintf("%s Reminder: %s", eventIcon(e), e.Title)
}

func reminderBody(e *models.CalendarEvent, reminderMinutes int) string {
	category := "📅 Personal"
	if e.IsStudy() {
		category = "📚 Study"
	}
	at := ""
	if e.Time != "" {
		at = " at " + e.Time
	}
	return fmt.Sprintf("%s%s • %d min before", category, at, reminderMinutes)
}

func dailySummaryBody(events []*models.CalendarEvent) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, "• "+e.Title)
	}
	return strings.Join(lines, "\n")
}
