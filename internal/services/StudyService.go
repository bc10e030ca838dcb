package services

import (
	"errors"
	"fmt"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/stats"
	"studytrack/internal/structures"
	"time"
)

var (
	ErrTimerRunning    = errors.New("timer already running")
	ErrTimerNotRunning = errors.New("timer not running")
	ErrEmptySession    = errors.New("session shorter than one second")
)

type StudyServiceInterface interface {
	Sessions() []*models.StudySession
	SessionsVersion() uint64
	AddSession(start, end time.Time) (*models.StudySession, error)
	RemoveSession(id string) error
	Stats() models.StudyStats
	WeeklyBreakdown() []models.DayTotal
	Today() string
	StartTimer() (TimerStatus, error)
	StopTimer() (*models.StudySession, error)
	ResetTimer()
	TimerStatus() TimerStatus
}

type StudyService struct {
	sessions *collections.Collection[*models.StudySession]
	timer    *StudyTimer
	loc      *time.Location
	now      func() time.Time
	logger   providers.Logger
}

func NewStudyService(conf *structures.Config, registry *collections.Registry, logger providers.Logger) StudyServiceInterface {
	loc := conf.Location()
	now := func() time.Time { return time.Now().In(loc) }
	return newStudyService(registry.Sessions, loc, now, logger)
}

func newStudyService(sessions *collections.Collection[*models.StudySession], loc *time.Location, now func() time.Time, logger providers.Logger) *StudyService {
	return &StudyService{
		sessions: sessions,
		timer:    NewStudyTimer(now),
		loc:      loc,
		now:      now,
		logger:   logger,
	}
}

func (ss *StudyService) Sessions() []*models.StudySession {
	return ss.sessions.All()
}

func (ss *StudyService) SessionsVersion() uint64 {
	return ss.sessions.Version()
}

// AddSession records a finished run. Runs shorter than a second are rejected.
func (ss *StudyService) AddSession(start, end time.Time) (*models.StudySession, error) {
	session := models.NewStudySession(start, end, ss.loc)
	if session.Duration <= 0 {
		return nil, ErrEmptySession
	}
	if err := ss.sessions.Add(session); err != nil {
		return nil, err
	}
	ss.logger.Infof(providers.TypeApp, "Recorded study session %s: %ds on %s", session.ID, session.Duration, session.Date)
	return session, nil
}

func (ss *StudyService) RemoveSession(id string) error {
	return ss.sessions.Remove(id)
}

func (ss *StudyService) Stats() models.StudyStats {
	return stats.Compute(ss.sessions.All(), ss.now())
}

func (ss *StudyService) WeeklyBreakdown() []models.DayTotal {
	return stats.WeeklyBreakdown(ss.sessions.All(), ss.now())
}

// Today is the current local date, used to key cached rollups.
func (ss *StudyService) Today() string {
	return models.FormatDate(ss.now())
}

func (ss *StudyService) StartTimer() (TimerStatus, error) {
	if !ss.timer.Start() {
		return ss.timer.Status(), ErrTimerRunning
	}
	return ss.timer.Status(), nil
}

// StopTimer ends the run and records it as a session.
func (ss *StudyService) StopTimer() (*models.StudySession, error) {
	start, end, ok := ss.timer.Stop()
	if !ok {
		return nil, ErrTimerNotRunning
	}
	session, err := ss.AddSession(start, end)
	if err != nil {
		return nil, fmt.Errorf("stop timer: %w", err)
	}
	return session, nil
}

func (ss *StudyService) ResetTimer() {
	ss.timer.Reset()
}

func (ss *StudyService) TimerStatus() TimerStatus {
	return ss.timer.Status()
}
