package controllers

import (
	"net/http"
	"strconv"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"time"
)

type SettingsStoreInterface interface {
	Get() models.NotificationSettings
	Update(next models.NotificationSettings) error
}

type NotifierInterface interface {
	Test()
	Pending() int
	NextDailyReminder() (time.Time, bool)
}

type FeedInterface interface {
	List(limit int) []models.Notification
}

type NotificationController struct {
	logger   providers.Logger
	settings SettingsStoreInterface
	notifier NotifierInterface
	feed     FeedInterface
}

type settingsView struct {
	models.NotificationSettings
	NextDailyReminder *time.Time `json:"nextDailyReminder,omitempty"`
	PendingReminders  int        `json:"pendingReminders"`
}

func NewNotificationController(logger providers.Logger, settings SettingsStoreInterface, notifier NotifierInterface, feed FeedInterface) *NotificationController {
	return &NotificationController{
		logger:   logger,
		settings: settings,
		notifier: notifier,
		feed:     feed,
	}
}

func (nc *NotificationController) view() settingsView {
	v := settingsView{
		NotificationSettings: nc.settings.Get(),
		PendingReminders:     nc.notifier.Pending(),
	}
	if next, ok := nc.notifier.NextDailyReminder(); ok {
		v.NextDailyReminder = &next
	}
	return v
}

func (nc *NotificationController) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nc.view())
}

// UpdateSettings merges the body over the current settings, so partial
// updates keep the fields they leave out.
func (nc *NotificationController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	next := nc.settings.Get()
	if !decodeJSON(w, r, &next) {
		return
	}
	if err := nc.settings.Update(next); err != nil {
		writeError(w, nc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nc.view())
}

func (nc *NotificationController) Test(w http.ResponseWriter, r *http.Request) {
	nc.notifier.Test()
	w.WriteHeader(http.StatusAccepted)
}

// Feed serves the latest notifications, newest first. ?limit caps the count.
func (nc *NotificationController) Feed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, nc.feed.List(limit))
}
