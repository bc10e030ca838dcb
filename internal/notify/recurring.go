package notify

import (
	"fmt"
	"studytrack/internal/models"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/teambition/rrule-go"
)

// RecurringTask runs job at every occurrence of a recurrence rule until it
// is stopped. Next is computed from the rule on every tick.
type RecurringTask struct {
	mu     sync.Mutex
	rule   *rrule.RRule
	loc    *time.Location
	job    func(fireTime time.Time)
	runner *cron.Cron
	entry  cron.EntryID
}

// NewDailyTask builds a task firing every day at the given wall-clock time
// in loc. The first occurrence is the next one strictly after now, which is
// today when that time has not passed yet.
func NewDailyTask(at models.ClockTime, loc *time.Location, now time.Time, job func(fireTime time.Time)) (*RecurringTask, error) {
	anchor := at.On(now.In(loc)).AddDate(0, 0, -1)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  anchor,
		Byhour:   []int{at.Hour},
		Byminute: []int{at.Minute},
		Bysecond: []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("daily rule at %s: %w", at, err)
	}
	return &RecurringTask{rule: rule, loc: loc, job: job}, nil
}

// Next implements cron.Schedule: the first occurrence strictly after t.
func (t *RecurringTask) Next(after time.Time) time.Time {
	return t.rule.After(after.In(t.loc), false)
}

// Start arms the task. Calling Start on a running task is a no-op.
func (t *RecurringTask) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner != nil {
		return
	}
	t.runner = cron.New(cron.WithLocation(t.loc))
	t.entry = t.runner.Schedule(t, cron.FuncJob(func() {
		t.job(t.rule.Before(time.Now().In(t.loc), true))
	}))
	t.runner.Start()
}

// Stop cancels future runs. A run already in progress completes.
func (t *RecurringTask) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.runner == nil {
		return
	}
	t.runner.Remove(t.entry)
	t.runner.Stop()
	t.runner = nil
}

func (t *RecurringTask) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runner != nil
}
