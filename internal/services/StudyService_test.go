package services

import (
	"errors"
	"studytrack/internal/collections"
	"studytrack/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStudyService(now time.Time) (*StudyService, *manualClock, *collections.Registry) {
	registry, _ := newRegistry()
	clock := &manualClock{now: now}
	return newStudyService(registry.Sessions, time.UTC, clock.Now, &testutil.MockLogger{}), clock, registry
}

func TestStudyService_AddSessionKeepsDurationInvariant(t *testing.T) {
	ss, _, _ := newTestStudyService(time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC))

	start := time.Date(2024, 1, 2, 10, 0, 0, 400_000_000, time.UTC)
	end := start.Add(25*time.Minute + 700*time.Millisecond)
	session, err := ss.AddSession(start, end)
	require.NoError(t, err)

	require.NotNil(t, session.EndTime)
	assert.Equal(t, int64(session.EndTime.Sub(session.StartTime)/time.Second), session.Duration)
	assert.Equal(t, "2024-01-02", session.Date)
	assert.NotEmpty(t, session.ID)
}

func TestStudyService_RejectsEmptySession(t *testing.T) {
	ss, _, _ := newTestStudyService(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	now := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

	_, err := ss.AddSession(now, now.Add(500*time.Millisecond))
	assert.True(t, errors.Is(err, ErrEmptySession))
	_, err = ss.AddSession(now, now.Add(-time.Hour))
	assert.True(t, errors.Is(err, ErrEmptySession))
	assert.Empty(t, ss.Sessions())
}

func TestStudyService_StatsScenario(t *testing.T) {
	ss, _, _ := newTestStudyService(time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC))

	_, err := ss.AddSession(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = ss.AddSession(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC))
	require.NoError(t, err)

	st := ss.Stats()
	assert.Equal(t, int64(900), st.Today)
	assert.Equal(t, 2, st.TotalSessions)
	assert.Equal(t, int64(1350), st.AverageSessionLength)
	assert.Equal(t, "2024-01-02", ss.Today())
	assert.Len(t, ss.WeeklyBreakdown(), 7)
}

func TestStudyService_TimerRecordsSession(t *testing.T) {
	ss, clock, registry := newTestStudyService(time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))

	status, err := ss.StartTimer()
	require.NoError(t, err)
	assert.True(t, status.Running)

	_, err = ss.StartTimer()
	assert.True(t, errors.Is(err, ErrTimerRunning))

	clock.Advance(42 * time.Minute)
	assert.Equal(t, int64(42*60), ss.TimerStatus().Elapsed)

	v := ss.SessionsVersion()
	session, err := ss.StopTimer()
	require.NoError(t, err)
	assert.Equal(t, int64(42*60), session.Duration)
	assert.Equal(t, 1, registry.Sessions.Len())
	assert.Greater(t, ss.SessionsVersion(), v)
	assert.False(t, ss.TimerStatus().Running)

	_, err = ss.StopTimer()
	assert.True(t, errors.Is(err, ErrTimerNotRunning))
}

func TestStudyService_TimerShortRunRejected(t *testing.T) {
	ss, _, _ := newTestStudyService(time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))
	_, err := ss.StartTimer()
	require.NoError(t, err)

	_, err = ss.StopTimer()
	assert.True(t, errors.Is(err, ErrEmptySession))
	assert.False(t, ss.TimerStatus().Running)
}

func TestStudyService_ResetDiscardsRun(t *testing.T) {
	ss, clock, _ := newTestStudyService(time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))
	_, err := ss.StartTimer()
	require.NoError(t, err)
	clock.Advance(time.Minute)

	ss.ResetTimer()
	assert.Equal(t, TimerStatus{}, ss.TimerStatus())
	_, err = ss.StopTimer()
	assert.True(t, errors.Is(err, ErrTimerNotRunning))
	assert.Empty(t, ss.Sessions())
}

func TestStudyService_RemoveSession(t *testing.T) {
	ss, _, _ := newTestStudyService(time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))
	s, err := ss.AddSession(time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, ss.RemoveSession(s.ID))
	assert.True(t, errors.Is(ss.RemoveSession(s.ID), collections.ErrNotFound))
}
