package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/structures"
	"studytrack/internal/testutil"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *collections.Registry {
	return collections.NewRegistry(testutil.NewMemoryStore(), &testutil.MockLogger{})
}

func utcConfig() *structures.Config {
	return &structures.Config{Timezone: "UTC"}
}

func do(t *testing.T, handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

type mockNotifier struct {
	mu      sync.Mutex
	tests   int
	pending int
	next    time.Time
}

func (m *mockNotifier) Test() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tests++
}

func (m *mockNotifier) Pending() int { return m.pending }

func (m *mockNotifier) NextDailyReminder() (time.Time, bool) {
	return m.next, !m.next.IsZero()
}

type mockSettings struct {
	current models.NotificationSettings
}

func (m *mockSettings) Get() models.NotificationSettings { return m.current }

func (m *mockSettings) Update(next models.NotificationSettings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	m.current = next
	return nil
}

type mockFeed struct {
	items []models.Notification
	limit int
}

func (m *mockFeed) List(limit int) []models.Notification {
	m.limit = limit
	if limit > 0 && limit < len(m.items) {
		return m.items[:limit]
	}
	return m.items
}

type mockStates struct{}

func (mockStates) ReminderState(ev *models.CalendarEvent) string {
	if ev.IsStudy() {
		return "pending"
	}
	return ""
}

type mockSizes map[string]int

func (m mockSizes) Sizes() map[string]int { return m }
