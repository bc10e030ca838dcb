package jobs

import (
	"errors"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/structures"
	"studytrack/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type mockFlusher struct {
	calls atomic.Int32
	err   error
}

func (m *mockFlusher) Flush() error {
	m.calls.Add(1)
	return m.err
}

type mockNotifier struct {
	started atomic.Int32
	stopped atomic.Int32
	rescans atomic.Int32
}

func (m *mockNotifier) Start()  { m.started.Add(1) }
func (m *mockNotifier) Stop()   { m.stopped.Add(1) }
func (m *mockNotifier) Rescan() { m.rescans.Add(1) }

func testConfig() *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			DataDir:      "/tmp/studytrack-test",
			SaveInterval: 1 * time.Second,
		},
		Notifications: structures.NotificationConfig{
			ScanInterval: 1 * time.Second,
		},
	}
}

func newTestScheduler(flusher *mockFlusher, notifier *mockNotifier) (*Scheduler, *collections.Registry, *testutil.MockMetrics) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	registry := collections.NewRegistry(testutil.NewMemoryStore(), logger)
	s := NewScheduler(testConfig(), logger, metrics, flusher, registry, notifier).(*Scheduler)
	return s, registry, metrics
}

func TestScheduler_PersistFlushes(t *testing.T) {
	flusher := &mockFlusher{}
	s, _, _ := newTestScheduler(flusher, &mockNotifier{})

	require.NoError(t, s.Persist())
	assert.Equal(t, int32(1), flusher.calls.Load())
}

func TestScheduler_PersistError(t *testing.T) {
	flusher := &mockFlusher{err: errors.New("disk full")}
	s, _, _ := newTestScheduler(flusher, &mockNotifier{})

	assert.Error(t, s.Persist())
}

func TestScheduler_StopNilCron(t *testing.T) {
	notifier := &mockNotifier{}
	s, _, _ := newTestScheduler(&mockFlusher{}, notifier)
	// Should not panic with nil cron
	s.Stop()
	assert.Equal(t, int32(1), notifier.stopped.Load())
}

func TestScheduler_InitStartsNotifierAndReportsSizes(t *testing.T) {
	notifier := &mockNotifier{}
	s, registry, metrics := newTestScheduler(&mockFlusher{}, notifier)
	require.NoError(t, registry.Notes.Add(&models.Note{Title: "n"}))

	s.Init()
	defer s.Stop()

	assert.Equal(t, int32(1), notifier.started.Load())
	assert.Equal(t, 1, metrics.Records["notes"])
}

func TestScheduler_CalendarChangeTriggersRescan(t *testing.T) {
	notifier := &mockNotifier{}
	s, registry, _ := newTestScheduler(&mockFlusher{}, notifier)
	s.Init()
	defer s.Stop()

	before := notifier.rescans.Load()
	require.NoError(t, registry.Events.Add(&models.CalendarEvent{Title: "Exam", Date: "2024-03-11", Type: models.EventTypeExam, Category: models.CategoryStudy}))
	assert.Equal(t, before+1, notifier.rescans.Load())
}

func TestScheduler_PeriodicFlush(t *testing.T) {
	flusher := &mockFlusher{}
	s, _, _ := newTestScheduler(flusher, &mockNotifier{})
	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool { return flusher.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
