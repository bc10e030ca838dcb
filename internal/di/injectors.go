//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"studytrack/internal"
	"studytrack/internal/collections"
	"studytrack/internal/controllers"
	"studytrack/internal/jobs"
	"studytrack/internal/notify"
	"studytrack/internal/providers"
	"studytrack/internal/services"
	"studytrack/internal/storage"
	"studytrack/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewFileStore,
		wire.Bind(new(storage.KeyValueStore), new(*storage.FileStore)),
		wire.Bind(new(jobs.Flusher), new(*storage.FileStore)),
		collections.NewRegistry,
		wire.Bind(new(controllers.HealthSource), new(*collections.Registry)),

		services.NewStudyService,
		services.NewCalendarService,
		services.NewJournalService,
		services.NewDataService,

		notify.NewSettingsStore,
		notify.NewSentLog,
		notify.NewFeed,
		notify.NewDefaultEmitter,
		notify.NewNotifier,
		wire.Bind(new(jobs.Notifier), new(*notify.Scheduler)),
		wire.Bind(new(controllers.NotifierInterface), new(*notify.Scheduler)),
		wire.Bind(new(controllers.ReminderStates), new(*notify.Scheduler)),
		wire.Bind(new(controllers.SettingsStoreInterface), new(*notify.SettingsStore)),
		wire.Bind(new(controllers.FeedInterface), new(*notify.Feed)),

		controllers.NewStudyController,
		controllers.NewCalendarController,
		controllers.NewNotificationController,
		controllers.NewJournalController,
		controllers.NewHealthController,
		jobs.NewScheduler,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
