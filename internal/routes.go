package internal

import (
	"net/http"
	"studytrack/internal/controllers"
	"studytrack/internal/providers"
)

func InitRoutes(study *controllers.StudyController, calendar *controllers.CalendarController, notifications *controllers.NotificationController, journal *controllers.JournalController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/stats", http.HandlerFunc(study.GetStats))
	routers.Get("/stats/weekly", http.HandlerFunc(study.GetWeekly))
	routers.Get("/sessions", http.HandlerFunc(study.ListSessions))
	routers.Post("/sessions", http.HandlerFunc(study.AddSession))
	routers.Delete("/sessions", http.HandlerFunc(study.DeleteSession))
	routers.Get("/timer", http.HandlerFunc(study.TimerStatus))
	routers.Post("/timer/start", http.HandlerFunc(study.StartTimer))
	routers.Post("/timer/stop", http.HandlerFunc(study.StopTimer))
	routers.Post("/timer/reset", http.HandlerFunc(study.ResetTimer))

	routers.Get("/events", http.HandlerFunc(calendar.List))
	routers.Post("/events", http.HandlerFunc(calendar.Create))
	routers.Put("/events", http.HandlerFunc(calendar.Update))
	routers.Delete("/events", http.HandlerFunc(calendar.Delete))
	routers.Post("/events/move", http.HandlerFunc(calendar.Move))
	routers.Post("/events/duplicate", http.HandlerFunc(calendar.Duplicate))
	routers.Get("/events.ics", http.HandlerFunc(calendar.ExportICS))

	routers.Get("/settings/notifications", http.HandlerFunc(notifications.GetSettings))
	routers.Put("/settings/notifications", http.HandlerFunc(notifications.UpdateSettings))
	routers.Post("/notifications/test", http.HandlerFunc(notifications.Test))
	routers.Get("/notifications", http.HandlerFunc(notifications.Feed))

	registerRecords(routers, "/notes", journal.Notes)
	registerRecords(routers, "/questions", journal.Questions)
	registerRecords(routers, "/tasks", journal.Tasks)
	registerRecords(routers, "/mood", journal.Mood)
	routers.Get("/mood/summary", http.HandlerFunc(journal.MoodSummary))
	routers.Get("/tasks/summary", http.HandlerFunc(journal.TodoSummary))
	routers.Get("/questions/summary", http.HandlerFunc(journal.QuestionSummary))

	routers.Get("/export", http.HandlerFunc(journal.Export))
	routers.Post("/import", http.HandlerFunc(journal.Import))
	return routers
}

type crudHandlers interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func registerRecords(routers providers.RouterProviderInterface, url string, c crudHandlers) {
	routers.Get(url, http.HandlerFunc(c.List))
	routers.Post(url, http.HandlerFunc(c.Create))
	routers.Put(url, http.HandlerFunc(c.Update))
	routers.Delete(url, http.HandlerFunc(c.Delete))
}
