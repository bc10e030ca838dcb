package storage

import (
	"studytrack/internal/providers"

	json "github.com/goccy/go-json"
)

// Keys of the persisted collections and singletons.
const (
	KeyStudySessions        = "studySessions"
	KeyCalendarEvents       = "calendarEvents"
	KeyNotificationSettings = "notificationSettings"
	KeySentNotifications    = "sentNotifications"
	KeyNotes                = "notes"
	KeyQuestions            = "questions"
	KeyTodoItems            = "todoItems"
	KeyMoodEntries          = "moodEntries"
)

// KeyValueStore maps string keys to JSON documents. An absent key reads as
// whatever default the caller supplies.
type KeyValueStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// Load decodes the value under key. Absent keys and malformed documents both
// yield def; the latter is logged.
func Load[T any](store KeyValueStore, key string, def T, logger providers.Logger) T {
	raw, ok := store.Get(key)
	if !ok || len(raw) == 0 {
		return def
	}
	out := def
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warnf(providers.TypeApp, "Malformed value under %q, using default: %s", key, err)
		return def
	}
	return out
}

// Save encodes v and stores it under key.
func Save(store KeyValueStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	store.Set(key, data)
	return nil
}
