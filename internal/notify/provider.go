package notify

import (
	"studytrack/internal/collections"
	"studytrack/internal/providers"
	"studytrack/internal/structures"
)

// NewNotifier builds the scheduler over the calendar collection on the wall
// clock of the configured time zone.
func NewNotifier(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, registry *collections.Registry, settings *SettingsStore, sent *SentLog, emitter Emitter) (*Scheduler, error) {
	return NewScheduler(conf, logger, metrics, registry.Events, settings, sent, emitter, NewRealClock(conf.Location()))
}
