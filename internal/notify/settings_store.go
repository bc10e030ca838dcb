package notify

import (
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/storage"
	"sync"
)

// SettingsStore owns the notification settings: it persists them and tells
// subscribers about every change.
type SettingsStore struct {
	mu          sync.RWMutex
	store       storage.KeyValueStore
	logger      providers.Logger
	current     models.NotificationSettings
	subscribers map[int]func(models.NotificationSettings)
	nextID      int
}

func NewSettingsStore(store storage.KeyValueStore, logger providers.Logger) *SettingsStore {
	current := storage.Load(store, storage.KeyNotificationSettings, models.DefaultNotificationSettings(), logger)
	if err := current.Validate(); err != nil {
		logger.Warnf(providers.TypeApp, "Stored notification settings rejected, using defaults: %s", err)
		current = models.DefaultNotificationSettings()
	}
	return &SettingsStore{
		store:       store,
		logger:      logger,
		current:     current,
		subscribers: make(map[int]func(models.NotificationSettings)),
	}
}

func (s *SettingsStore) Get() models.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and stores next, then notifies subscribers.
func (s *SettingsStore) Update(next models.NotificationSettings) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := storage.Save(s.store, storage.KeyNotificationSettings, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	subs := make([]func(models.NotificationSettings), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Subscribe registers fn for settings changes and returns its cancel func.
func (s *SettingsStore) Subscribe(fn func(models.NotificationSettings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
