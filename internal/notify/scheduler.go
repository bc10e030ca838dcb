package notify

import (
	"fmt"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/structures"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ReminderState is the per-event reminder state. It is never stored; it is
// derived from the event, the current time, the sent log and the armed
// timers.
type ReminderState int

const (
	StateUnscheduled ReminderState = iota
	StateScheduled
	StateFired
)

func (s ReminderState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateFired:
		return "fired"
	default:
		return "unscheduled"
	}
}

// EventSource is the calendar the scheduler reads.
type EventSource interface {
	All() []*models.CalendarEvent
	Get(id string) (*models.CalendarEvent, bool)
}

type reminderKey struct {
	eventID string
	trigger int64
}

type Scheduler struct {
	conf        structures.NotificationConfig
	loc         *time.Location
	defaultTime models.ClockTime
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	events      EventSource
	settings    *SettingsStore
	sent        *SentLog
	emitter     Emitter
	clock       Clock

	mu          sync.Mutex
	pending     map[reminderKey]Timer
	daily       *RecurringTask
	unsubscribe func()
	active      atomic.Bool
}

func NewScheduler(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, events EventSource, settings *SettingsStore, sent *SentLog, emitter Emitter, clock Clock) (*Scheduler, error) {
	defaultTime, err := models.ParseClock(conf.Notifications.DefaultEventTime)
	if err != nil {
		return nil, fmt.Errorf("default event time: %w", err)
	}
	return &Scheduler{
		conf:        conf.Notifications,
		loc:         conf.Location(),
		defaultTime: defaultTime,
		logger:      logger,
		metrics:     metrics,
		events:      events,
		settings:    settings,
		sent:        sent,
		emitter:     emitter,
		clock:       clock,
		pending:     make(map[reminderKey]Timer),
	}, nil
}

// Start purges stale sent records, scans once, arms the daily reminder and
// follows settings changes.
func (s *Scheduler) Start() {
	if s.active.Swap(true) {
		return
	}
	now := s.clock.Now()
	if n := s.sent.Cleanup(now, s.conf.SentRetention); n > 0 {
		s.logger.Infof(providers.TypeNotify, "Purged %d sent notification records", n)
	}

	current := s.settings.Get()
	s.armDaily(current)
	s.mu.Lock()
	s.unsubscribe = s.settings.Subscribe(s.onSettingsChange)
	s.mu.Unlock()

	s.Scan(now)
}

// Stop cancels all armed reminders and the daily task. Reminders due after
// Stop never fire.
func (s *Scheduler) Stop() {
	if !s.active.Swap(false) {
		return
	}
	s.mu.Lock()
	for key, timer := range s.pending {
		timer.Stop()
		delete(s.pending, key)
	}
	if s.daily != nil {
		s.daily.Stop()
		s.daily = nil
	}
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.metrics.SetPendingReminders(0)
}

// Scan arms reminders for every event whose effective time lies within the
// lookahead window after now. A failure on one event is logged and the scan
// goes on.
func (s *Scheduler) Scan(now time.Time) {
	if !s.active.Load() {
		return
	}
	settings := s.settings.Get()
	if !settings.Enabled {
		return
	}

	start := time.Now()
	horizon := now.Add(s.conf.Lookahead)
	for _, ev := range s.events.All() {
		s.scanEvent(ev, settings, now, horizon)
	}
	s.metrics.ObserveScanDuration(time.Since(start))
	s.metrics.SetPendingReminders(s.Pending())
}

func (s *Scheduler) scanEvent(ev *models.CalendarEvent, settings models.NotificationSettings, now, horizon time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf(providers.TypeNotify, "Scheduling event %q panicked: %v", eventID(ev), r)
		}
	}()

	at, err := ev.EffectiveTime(s.loc, s.defaultTime)
	if err != nil {
		s.logger.Warnf(providers.TypeNotify, "Skipping event: %s", err)
		return
	}
	if !at.After(now) || at.After(horizon) {
		return
	}
	if _, err := s.ScheduleEvent(ev, settings, now); err != nil {
		s.logger.Warnf(providers.TypeNotify, "Skipping event: %s", err)
	}
}

// TriggerAt is the instant the reminder for ev should fire.
func (s *Scheduler) TriggerAt(ev *models.CalendarEvent, settings models.NotificationSettings) (time.Time, error) {
	at, err := ev.EffectiveTime(s.loc, s.defaultTime)
	if err != nil {
		return time.Time{}, err
	}
	return at.Add(-time.Duration(settings.ReminderMinutes) * time.Minute), nil
}

// ScheduleEvent arms the reminder of ev when its trigger instant is in the
// future and neither a sent record nor an armed timer exists within the
// de-duplication tolerance. Repeated calls are idempotent.
func (s *Scheduler) ScheduleEvent(ev *models.CalendarEvent, settings models.NotificationSettings, now time.Time) (ReminderState, error) {
	if !settings.Enabled {
		return StateUnscheduled, nil
	}
	trigger, err := s.TriggerAt(ev, settings)
	if err != nil {
		return StateUnscheduled, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sent.HasNear(ev.ID, trigger, s.conf.DedupTolerance) {
		return StateFired, nil
	}
	if !trigger.After(now) {
		return StateUnscheduled, nil
	}
	if s.pendingNear(ev.ID, trigger) {
		return StateScheduled, nil
	}
	if !s.active.Load() {
		return StateUnscheduled, nil
	}

	key := reminderKey{eventID: ev.ID, trigger: trigger.UnixMilli()}
	wait := trigger.Sub(now)
	s.pending[key] = s.clock.AfterFunc(wait, func() { s.fire(key) })
	s.logger.Infof(providers.TypeNotify, "Reminder for %q scheduled in %d minutes", ev.Title, int(wait.Round(time.Minute).Minutes()))
	return StateScheduled, nil
}

// StateOf derives the reminder state of ev at now.
func (s *Scheduler) StateOf(ev *models.CalendarEvent, now time.Time) ReminderState {
	trigger, err := s.TriggerAt(ev, s.settings.Get())
	if err != nil {
		return StateUnscheduled
	}
	if s.sent.HasNear(ev.ID, trigger, s.conf.DedupTolerance) {
		return StateFired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if trigger.After(now) && s.pendingNear(ev.ID, trigger) {
		return StateScheduled
	}
	return StateUnscheduled
}

// ReminderState is StateOf at the current instant, rendered for the API.
func (s *Scheduler) ReminderState(ev *models.CalendarEvent) string {
	return s.StateOf(ev, s.clock.Now()).String()
}

// Rescan runs a scan at the current instant. It is hooked to calendar
// mutations so new or edited events are armed without waiting for the
// periodic scan.
func (s *Scheduler) Rescan() {
	s.Scan(s.clock.Now())
}

// Pending returns the number of armed reminders.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// pendingNear must be called with s.mu held.
func (s *Scheduler) pendingNear(eventID string, trigger time.Time) bool {
	ms := trigger.UnixMilli()
	for key := range s.pending {
		if key.eventID == eventID && absMillis(key.trigger-ms) < s.conf.DedupTolerance.Milliseconds() {
			return true
		}
	}
	return false
}

// fire runs when a reminder's trigger instant elapses. The event is looked
// up again so reminders of deleted or rescheduled events are dropped.
func (s *Scheduler) fire(key reminderKey) {
	s.mu.Lock()
	delete(s.pending, key)
	ev, settings, ok := s.confirmFire(key)
	if ok {
		s.sent.Append(models.EventNotificationRecord{
			EventID:          key.eventID,
			NotificationTime: key.trigger,
			Sent:             true,
		})
	}
	s.mu.Unlock()
	s.metrics.SetPendingReminders(s.Pending())

	if !ok {
		return
	}
	s.emit(reminderTitle(ev), reminderBody(ev, settings.ReminderMinutes), EmitOptions{
		Icon:    s.conf.Icon,
		Sound:   settings.SoundEnabled,
		Visual:  settings.ShowBrowserNotification,
		Kind:    KindEventReminder,
		EventID: ev.ID,
	})
}

// confirmFire must be called with s.mu held.
func (s *Scheduler) confirmFire(key reminderKey) (*models.CalendarEvent, models.NotificationSettings, bool) {
	settings := s.settings.Get()
	if !s.active.Load() || !settings.Enabled {
		return nil, settings, false
	}
	trigger := time.UnixMilli(key.trigger)
	if s.sent.HasNear(key.eventID, trigger, s.conf.DedupTolerance) {
		return nil, settings, false
	}
	ev, ok := s.events.Get(key.eventID)
	if !ok {
		s.logger.Infof(providers.TypeNotify, "Dropping reminder of removed event %s", key.eventID)
		return nil, settings, false
	}
	current, err := s.TriggerAt(ev, settings)
	if err != nil || absMillis(current.UnixMilli()-key.trigger) >= s.conf.DedupTolerance.Milliseconds() {
		s.logger.Infof(providers.TypeNotify, "Dropping stale reminder of event %s", key.eventID)
		return nil, settings, false
	}
	return ev, settings, true
}

// DailySummary emits one notification listing the events dated on day's
// local date. It emits nothing and returns false when there are none.
func (s *Scheduler) DailySummary(day time.Time) bool {
	date := models.FormatDate(day.In(s.loc))
	todays := make([]*models.CalendarEvent, 0)
	for _, ev := range s.events.All() {
		if ev.Date == date {
			todays = append(todays, ev)
		}
	}
	if len(todays) == 0 {
		return false
	}
	settings := s.settings.Get()
	s.emit(dailySummaryTitle, dailySummaryBody(todays), EmitOptions{
		Icon:   s.conf.Icon,
		Sound:  settings.SoundEnabled,
		Visual: settings.ShowBrowserNotification,
		Kind:   KindDailySummary,
	})
	return true
}

// NextDailyReminder returns when the daily summary fires next, or false when
// it is not armed.
func (s *Scheduler) NextDailyReminder() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily == nil {
		return time.Time{}, false
	}
	return s.daily.Next(s.clock.Now()), true
}

// Test emits a sample notification with the current settings.
func (s *Scheduler) Test() {
	settings := s.settings.Get()
	s.emit("🔔 Test notification", "Notifications are working", EmitOptions{
		Icon:   s.conf.Icon,
		Sound:  settings.SoundEnabled,
		Visual: settings.ShowBrowserNotification,
		Kind:   KindTest,
	})
}

func (s *Scheduler) emit(title, body string, opts EmitOptions) {
	if err := s.emitter.Emit(title, body, opts); err != nil {
		s.logger.Warnf(providers.TypeNotify, "Notification channel failed: %s", err)
	}
	s.metrics.IncNotificationsTotal(opts.Kind)
}

func (s *Scheduler) onSettingsChange(next models.NotificationSettings) {
	if !s.active.Load() {
		return
	}
	s.armDaily(next)
	s.Scan(s.clock.Now())
}

func (s *Scheduler) armDaily(settings models.NotificationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.daily != nil {
		s.daily.Stop()
		s.daily = nil
	}
	if !settings.DailyReminder || !s.active.Load() {
		return
	}
	at, err := models.ParseClock(settings.DailyReminderTime)
	if err != nil {
		s.logger.Warnf(providers.TypeNotify, "Daily reminder not armed: %s", err)
		return
	}
	task, err := NewDailyTask(at, s.loc, s.clock.Now(), func(fireTime time.Time) {
		s.DailySummary(fireTime)
	})
	if err != nil {
		s.logger.Warnf(providers.TypeNotify, "Daily reminder not armed: %s", err)
		return
	}
	task.Start()
	s.daily = task
	s.logger.Infof(providers.TypeNotify, "Daily reminder armed for %s", task.Next(s.clock.Now()).Format(time.RFC3339))
}

func eventID(ev *models.CalendarEvent) string {
	if ev == nil {
		return ""
	}
	return ev.ID
}
