package notify

import (
	"studytrack/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTask_NextIsTodayWhenNotPassed(t *testing.T) {
	now := time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)
	task, err := NewDailyTask(models.ClockTime{Hour: 8}, time.UTC, now, func(time.Time) {})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC), task.Next(now))
}

func TestDailyTask_NextIsTomorrowWhenPassed(t *testing.T) {
	now := time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)
	task, err := NewDailyTask(models.ClockTime{Hour: 8}, time.UTC, now, func(time.Time) {})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC), task.Next(now))
}

func TestDailyTask_NextIsStrictlyAfter(t *testing.T) {
	now := time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)
	task, err := NewDailyTask(models.ClockTime{Hour: 8, Minute: 30}, time.UTC, now, func(time.Time) {})
	require.NoError(t, err)

	first := task.Next(now)
	second := task.Next(first)
	third := task.Next(second)
	assert.Equal(t, time.Date(2024, 3, 11, 8, 30, 0, 0, time.UTC), first)
	assert.Equal(t, 24*time.Hour, second.Sub(first))
	assert.Equal(t, 24*time.Hour, third.Sub(second))
}

func TestDailyTask_KeepsWallClockAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database not available")
	}
	// DST starts in New York on 2024-03-10.
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, ny)
	task, err := NewDailyTask(models.ClockTime{Hour: 8}, ny, now, func(time.Time) {})
	require.NoError(t, err)

	next := task.Next(now)
	assert.Equal(t, 8, next.Hour())
	assert.Equal(t, 10, next.Day())
	assert.Equal(t, 23*time.Hour, next.Sub(now.Add(-4*time.Hour)))
}

func TestDailyTask_StartStop(t *testing.T) {
	task, err := NewDailyTask(models.ClockTime{Hour: 8}, time.UTC, time.Now(), func(time.Time) {})
	require.NoError(t, err)

	assert.False(t, task.Running())
	task.Start()
	task.Start()
	assert.True(t, task.Running())
	task.Stop()
	assert.False(t, task.Running())
	task.Stop()
}
