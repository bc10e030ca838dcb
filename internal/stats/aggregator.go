// Package stats computes read-only rollups over the record collections.
// Nothing here mutates its input.
package stats

import (
	"math"
	"studytrack/internal/models"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

// WeekStart returns local midnight of the Monday on or before now.
func WeekStart(now time.Time) time.Time {
	back := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		back = 6
	}
	return models.StartOfDay(now).AddDate(0, 0, -back)
}

// MonthStart returns local midnight of the first day of now's month.
func MonthStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

// Compute derives StudyStats from the full session collection as seen at now.
// Dates are interpreted in now's location. Sessions whose date does not parse
// still count toward the totals, the average and the best day, but not toward
// the week, the month or the streak.
func Compute(sessions []*models.StudySession, now time.Time) models.StudyStats {
	var st models.StudyStats

	loc := now.Location()
	today := models.FormatDate(now)
	weekStart := WeekStart(now)
	monthStart := MonthStart(now)

	dailyTotals := make(map[string]int64)
	firstSeen := make([]string, 0)
	activeDays := roaring.New()
	var total int64

	for _, s := range sessions {
		if s == nil {
			continue
		}
		st.TotalSessions++
		total += s.Duration

		if s.Date == today {
			st.Today += s.Duration
		}
		if _, ok := dailyTotals[s.Date]; !ok {
			firstSeen = append(firstSeen, s.Date)
		}
		dailyTotals[s.Date] += s.Duration

		day, err := models.ParseDate(s.Date, loc)
		if err != nil {
			continue
		}
		if !day.Before(weekStart) {
			st.ThisWeek += s.Duration
		}
		if !day.Before(monthStart) {
			st.ThisMonth += s.Duration
		}
		if n := models.DayNumber(day); n >= 0 && n <= math.MaxUint32 {
			activeDays.Add(uint32(n))
		}
	}

	if st.TotalSessions > 0 {
		st.AverageSessionLength = int64(math.Round(float64(total) / float64(st.TotalSessions)))
	}

	for _, date := range firstSeen {
		if d := dailyTotals[date]; d > st.BestDay.Duration {
			st.BestDay = models.BestDay{Date: date, Duration: d}
		}
	}

	st.CurrentStreak = streak(activeDays, models.DayNumber(now))
	return st
}

// streak counts consecutive active days ending today; 0 when today is idle.
func streak(days *roaring.Bitmap, today int64) int {
	if today < 0 || today > math.MaxUint32 || !days.Contains(uint32(today)) {
		return 0
	}
	n := 1
	for d := today - 1; d >= 0 && days.Contains(uint32(d)); d-- {
		n++
	}
	return n
}

// WeeklyBreakdown sums session durations for each day of the current week,
// Monday first.
func WeeklyBreakdown(sessions []*models.StudySession, now time.Time) []models.DayTotal {
	start := WeekStart(now)
	week := make([]models.DayTotal, 7)
	byDate := make(map[string]int, 7)
	for i := range week {
		day := start.AddDate(0, 0, i)
		week[i] = models.DayTotal{
			Date:    models.FormatDate(day),
			Weekday: day.Weekday().String(),
		}
		byDate[week[i].Date] = i
	}
	for _, s := range sessions {
		if s == nil {
			continue
		}
		if i, ok := byDate[s.Date]; ok {
			week[i].Duration += s.Duration
		}
	}
	return week
}
