package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"studytrack/internal/providers"
	"studytrack/internal/services"
	"time"
)

type StudyController struct {
	logger  providers.Logger
	service services.StudyServiceInterface
	cache   providers.CacheProviderInterface
}

type sessionRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func NewStudyController(logger providers.Logger, service services.StudyServiceInterface, cache providers.CacheProviderInterface) *StudyController {
	return &StudyController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// serveFromCacheOrCompute keys rollups by session version and local date, so
// a new session or a new day never serves a stale payload.
func (sc *StudyController) serveFromCacheOrCompute(w http.ResponseWriter, name string, compute func() any) {
	cacheKey := fmt.Sprintf("%s:%d:%s", name, sc.service.SessionsVersion(), sc.service.Today())
	if data, ok := sc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	gson, err := json.Marshal(compute())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (sc *StudyController) GetStats(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, "stats", func() any {
		return sc.service.Stats()
	})
}

func (sc *StudyController) GetWeekly(w http.ResponseWriter, r *http.Request) {
	sc.serveFromCacheOrCompute(w, "weekly", func() any {
		return sc.service.WeeklyBreakdown()
	})
}

func (sc *StudyController) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.Sessions())
}

func (sc *StudyController) AddSession(w http.ResponseWriter, r *http.Request) {
	var payload sessionRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	session, err := sc.service.AddSession(payload.StartTime, payload.EndTime)
	if err != nil {
		writeError(w, sc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (sc *StudyController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := sc.service.RemoveSession(id); err != nil {
		writeError(w, sc.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (sc *StudyController) TimerStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.TimerStatus())
}

func (sc *StudyController) StartTimer(w http.ResponseWriter, r *http.Request) {
	status, err := sc.service.StartTimer()
	if err != nil {
		writeError(w, sc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (sc *StudyController) StopTimer(w http.ResponseWriter, r *http.Request) {
	session, err := sc.service.StopTimer()
	if err != nil {
		writeError(w, sc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (sc *StudyController) ResetTimer(w http.ResponseWriter, r *http.Request) {
	sc.service.ResetTimer()
	writeJSON(w, http.StatusOK, sc.service.TimerStatus())
}
