package controllers

import (
	"fmt"
	"net/http"
	"studytrack/internal/models"
	"studytrack/internal/services"
	"studytrack/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStudyController() (*StudyController, services.StudyServiceInterface, *testutil.MockCache) {
	svc := services.NewStudyService(utcConfig(), newTestRegistry(), &testutil.MockLogger{})
	cache := testutil.NewMockCache()
	return NewStudyController(&testutil.MockLogger{}, svc, cache), svc, cache
}

func TestStudyController_StatsServedFromCache(t *testing.T) {
	sc, svc, cache := newTestStudyController()
	key := fmt.Sprintf("stats:%d:%s", svc.SessionsVersion(), svc.Today())
	cache.Set(key, []byte(`{"cached":true}`))

	rr := do(t, sc.GetStats, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"cached":true}`, rr.Body.String())
}

func TestStudyController_StatsKeyFollowsSessions(t *testing.T) {
	sc, svc, cache := newTestStudyController()

	rr := do(t, sc.GetStats, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, cache.Data, 1)

	end := time.Now().UTC()
	_, err := svc.AddSession(end.Add(-30*time.Minute), end)
	require.NoError(t, err)

	rr = do(t, sc.GetStats, http.MethodGet, "/stats", nil)
	st := decode[models.StudyStats](t, rr)
	assert.Equal(t, 1, st.TotalSessions)
	assert.Equal(t, int64(1800), st.AverageSessionLength)
	assert.Len(t, cache.Data, 2)
}

func TestStudyController_Weekly(t *testing.T) {
	sc, _, _ := newTestStudyController()
	rr := do(t, sc.GetWeekly, http.MethodGet, "/stats/weekly", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.DayTotal](t, rr), 7)
}

func TestStudyController_AddListDeleteSession(t *testing.T) {
	sc, _, _ := newTestStudyController()

	body := map[string]string{"startTime": "2024-03-11T09:00:00Z", "endTime": "2024-03-11T09:45:00Z"}
	rr := do(t, sc.AddSession, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, rr.Code)
	session := decode[models.StudySession](t, rr)
	assert.Equal(t, int64(2700), session.Duration)
	assert.Equal(t, "2024-03-11", session.Date)

	rr = do(t, sc.ListSessions, http.MethodGet, "/sessions", nil)
	assert.Len(t, decode[[]models.StudySession](t, rr), 1)

	rr = do(t, sc.DeleteSession, http.MethodDelete, "/sessions?id="+session.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, sc.DeleteSession, http.MethodDelete, "/sessions?id="+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = do(t, sc.DeleteSession, http.MethodDelete, "/sessions", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStudyController_AddSessionRejectsBadInput(t *testing.T) {
	sc, _, _ := newTestStudyController()

	rr := do(t, sc.AddSession, http.MethodPost, "/sessions", "{")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := map[string]string{"startTime": "2024-03-11T10:00:00Z", "endTime": "2024-03-11T09:00:00Z"}
	rr = do(t, sc.AddSession, http.MethodPost, "/sessions", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStudyController_TimerLifecycle(t *testing.T) {
	sc, _, _ := newTestStudyController()

	rr := do(t, sc.StartTimer, http.MethodPost, "/timer/start", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[services.TimerStatus](t, rr).Running)

	rr = do(t, sc.StartTimer, http.MethodPost, "/timer/start", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, sc.TimerStatus, http.MethodGet, "/timer", nil)
	assert.True(t, decode[services.TimerStatus](t, rr).Running)

	rr = do(t, sc.ResetTimer, http.MethodPost, "/timer/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[services.TimerStatus](t, rr).Running)

	rr = do(t, sc.StopTimer, http.MethodPost, "/timer/stop", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
