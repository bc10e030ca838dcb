package services

import (
	"studytrack/internal/collections"
	"studytrack/internal/structures"
	"studytrack/internal/testutil"
	"sync"
	"time"
)

// manualClock is a settable now func.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func utcConfig() *structures.Config {
	return &structures.Config{Timezone: "UTC"}
}

func newRegistry() (*collections.Registry, *testutil.MemoryStore) {
	store := testutil.NewMemoryStore()
	return collections.NewRegistry(store, &testutil.MockLogger{}), store
}
