package jobs

import (
	"github.com/roylee0704/gron"
	"studytrack/internal/collections"
	"studytrack/internal/jobs/interfaces"
	"studytrack/internal/providers"
	"studytrack/internal/structures"
	"sync"
)

// Flusher writes pending store changes to disk.
type Flusher interface {
	Flush() error
}

// Notifier is the reminder engine driven by the periodic scan.
type Notifier interface {
	Start()
	Stop()
	Rescan()
}

// Scheduler runs the background jobs: periodic persistence of the store and
// the periodic reminder scan.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	store    Flusher
	registry *collections.Registry
	notifier Notifier
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.store.Flush(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.registry.ReportSizes(s.metrics)
		s.logger.Debugf(providers.TypeApp, "Persisted data to %s", s.config.Persistence.DataDir)
	})

	s.cron.AddFunc(gron.Every(s.config.Notifications.ScanInterval), func() {
		s.notifier.Rescan()
	})

	s.registry.Events.Subscribe(s.notifier.Rescan)
	s.registry.ReportSizes(s.metrics)
	s.notifier.Start()
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	s.notifier.Stop()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting data to %s...", s.config.Persistence.DataDir)
	if err := s.store.Flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store Flusher, registry *collections.Registry, notifier Notifier) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		store:    store,
		registry: registry,
		notifier: notifier,
	}
}
