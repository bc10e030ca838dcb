package notify

import (
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/storage"
	"sync"
	"time"
)

// SentLog remembers which reminders already fired. It only serves
// de-duplication and is never shown to the user.
type SentLog struct {
	mu      sync.Mutex
	store   storage.KeyValueStore
	logger  providers.Logger
	records []models.EventNotificationRecord
}

func NewSentLog(store storage.KeyValueStore, logger providers.Logger) *SentLog {
	return &SentLog{
		store:   store,
		logger:  logger,
		records: storage.Load[[]models.EventNotificationRecord](store, storage.KeySentNotifications, nil, logger),
	}
}

// HasNear reports whether a reminder for eventID is recorded less than
// tolerance away from at.
func (l *SentLog) HasNear(eventID string, at time.Time, tolerance time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	ms := at.UnixMilli()
	for _, r := range l.records {
		if r.EventID == eventID && absMillis(r.NotificationTime-ms) < tolerance.Milliseconds() {
			return true
		}
	}
	return false
}

func (l *SentLog) Append(rec models.EventNotificationRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	l.persist()
}

// Cleanup drops records whose notification time is older than retention
// and returns how many were removed.
func (l *SentLog) Cleanup(now time.Time, retention time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-retention).UnixMilli()
	kept := l.records[:0]
	for _, r := range l.records {
		if r.NotificationTime > cutoff {
			kept = append(kept, r)
		}
	}
	removed := len(l.records) - len(kept)
	l.records = kept
	if removed > 0 {
		l.persist()
	}
	return removed
}

func (l *SentLog) Records() []models.EventNotificationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.EventNotificationRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *SentLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *SentLog) persist() {
	if err := storage.Save(l.store, storage.KeySentNotifications, l.records); err != nil {
		l.logger.Errorf(providers.TypeNotify, "Failed to store sent notifications: %s", err)
	}
}

func absMillis(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
