package notify

import (
	"errors"
	"sort"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/structures"
	"studytrack/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock only moves when Advance is called. Due timers run on the
// caller's goroutine in trigger order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := make([]*fakeTimer, 0)
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

type emitted struct {
	Title string
	Body  string
	Opts  EmitOptions
}

type recordingEmitter struct {
	mu    sync.Mutex
	items []emitted
	err   error
}

func (r *recordingEmitter) Emit(title, body string, opts EmitOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, emitted{Title: title, Body: body, Opts: opts})
	return r.err
}

func (r *recordingEmitter) All() []emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]emitted, len(r.items))
	copy(out, r.items)
	return out
}

type panickingEmitter struct{}

func (panickingEmitter) Emit(string, string, EmitOptions) error { panic("audio context unavailable") }

type failingEmitter struct{}

func (failingEmitter) Emit(string, string, EmitOptions) error { return errors.New("permission denied") }

// fakeEvents is an in-memory EventSource keeping insertion order.
type fakeEvents struct {
	mu     sync.Mutex
	events []*models.CalendarEvent
}

func (f *fakeEvents) All() []*models.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.CalendarEvent, len(f.events))
	copy(out, f.events)
	return out
}

func (f *fakeEvents) Get(id string) (*models.CalendarEvent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e != nil && e.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (f *fakeEvents) Put(events ...*models.CalendarEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
}

func (f *fakeEvents) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.events[:0]
	for _, e := range f.events {
		if e == nil || e.ID != id {
			kept = append(kept, e)
		}
	}
	f.events = kept
}

type harness struct {
	sched    *Scheduler
	clock    *fakeClock
	events   *fakeEvents
	settings *SettingsStore
	sent     *SentLog
	emitter  *recordingEmitter
	logger   *testutil.MockLogger
	metrics  *testutil.MockMetrics
	store    *testutil.MemoryStore
}

// 2024-03-11 is a Monday.
var monday = time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC)

func testConfig() *structures.Config {
	conf := &structures.Config{Timezone: "UTC"}
	providers.ApplyNotificationDefaults(conf)
	return conf
}

func newHarness(t *testing.T, now time.Time, settings models.NotificationSettings) *harness {
	t.Helper()
	h := &harness{
		clock:   newFakeClock(now),
		events:  &fakeEvents{},
		emitter: &recordingEmitter{},
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
		store:   testutil.NewMemoryStore(),
	}
	h.settings = NewSettingsStore(h.store, h.logger)
	require.NoError(t, h.settings.Update(settings))
	h.sent = NewSentLog(h.store, h.logger)

	sched, err := NewScheduler(testConfig(), h.logger, h.metrics, h.events, h.settings, h.sent, h.emitter, h.clock)
	require.NoError(t, err)
	h.sched = sched
	t.Cleanup(sched.Stop)
	return h
}

// quietSettings are the defaults without the cron-driven daily reminder.
func quietSettings() models.NotificationSettings {
	s := models.DefaultNotificationSettings()
	s.DailyReminder = false
	return s
}

func studyEvent(id, date, clock string) *models.CalendarEvent {
	return &models.CalendarEvent{
		ID:       id,
		Title:    "Event " + id,
		Date:     date,
		Time:     clock,
		Type:     models.EventTypeExam,
		Category: models.CategoryStudy,
	}
}
