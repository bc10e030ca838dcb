package notify

import (
	"fmt"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/structures"
	"sync"
	"time"
)

const (
	KindEventReminder = "event_reminder"
	KindDailySummary  = "daily_summary"
	KindTest          = "test"
)

type EmitOptions struct {
	Icon    string
	Sound   bool
	Visual  bool
	Kind    string
	EventID string
}

// Emitter delivers a notification to whoever renders it.
type Emitter interface {
	Emit(title, body string, opts EmitOptions) error
}

// Feed keeps the most recent notifications in memory for the presentation
// layer to poll. It holds at most size entries.
type Feed struct {
	mu    sync.RWMutex
	size  int
	items []models.Notification
	now   func() time.Time
}

func NewFeed(conf *structures.Config) *Feed {
	size := conf.Notifications.FeedSize
	if size <= 0 {
		size = 50
	}
	return &Feed{size: size, now: time.Now}
}

func (f *Feed) Emit(title, body string, opts EmitOptions) error {
	n := models.Notification{
		Kind:    opts.Kind,
		Title:   title,
		Body:    body,
		Icon:    opts.Icon,
		Sound:   opts.Sound,
		Visual:  opts.Visual,
		EventID: opts.EventID,
		At:      f.now().UnixMilli(),
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.size {
		f.items = f.items[len(f.items)-f.size:]
	}
	return nil
}

// List returns up to limit notifications, newest first. limit <= 0 means all.
func (f *Feed) List(limit int) []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	out := make([]models.Notification, 0, limit)
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.items[i])
	}
	return out
}

// LogEmitter writes every notification to the notify log.
type LogEmitter struct {
	logger providers.Logger
}

func NewLogEmitter(logger providers.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (l *LogEmitter) Emit(title, body string, opts EmitOptions) error {
	l.logger.Infof(providers.TypeNotify, "[%s] %s | %s (sound=%t visual=%t)", opts.Kind, title, body, opts.Sound, opts.Visual)
	return nil
}

// MultiEmitter fans out to every sink. A failing or panicking sink does not
// stop the others; the first failure is returned.
type MultiEmitter struct {
	sinks []Emitter
}

func NewMultiEmitter(sinks ...Emitter) *MultiEmitter {
	return &MultiEmitter{sinks: sinks}
}

func (m *MultiEmitter) Emit(title, body string, opts EmitOptions) error {
	var first error
	for _, sink := range m.sinks {
		if err := safeEmit(sink, title, body, opts); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func safeEmit(sink Emitter, title, body string, opts EmitOptions) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("emitter panic: %v", r)
		}
	}()
	return sink.Emit(title, body, opts)
}

// NewDefaultEmitter sends notifications to the log and to the feed.
func NewDefaultEmitter(logger providers.Logger, feed *Feed) Emitter {
	return NewMultiEmitter(NewLogEmitter(logger), feed)
}
