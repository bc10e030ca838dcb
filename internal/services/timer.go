package services

import (
	"sync"
	"time"
)

type TimerStatus struct {
	Running   bool       `json:"running"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	Elapsed   int64      `json:"elapsed"`
}

// StudyTimer measures one study run at a time.
type StudyTimer struct {
	mu        sync.Mutex
	now       func() time.Time
	running   bool
	startedAt time.Time
}

func NewStudyTimer(now func() time.Time) *StudyTimer {
	return &StudyTimer{now: now}
}

// Start begins a run. It returns false when a run is already going.
func (t *StudyTimer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return false
	}
	t.running = true
	t.startedAt = t.now()
	return true
}

// Stop ends the current run and returns its bounds.
func (t *StudyTimer) Stop() (start, end time.Time, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return time.Time{}, time.Time{}, false
	}
	t.running = false
	return t.startedAt, t.now(), true
}

// Reset discards the current run.
func (t *StudyTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.startedAt = time.Time{}
}

func (t *StudyTimer) Status() TimerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return TimerStatus{}
	}
	started := t.startedAt
	return TimerStatus{
		Running:   true,
		StartedAt: &started,
		Elapsed:   int64(t.now().Sub(t.startedAt) / time.Second),
	}
}
