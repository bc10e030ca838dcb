package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
)

// HealthSource reports what the health endpoint shows.
type HealthSource interface {
	Sizes() map[string]int
}

type HealthController struct {
	records   HealthSource
	notifier  NotifierInterface
	startTime time.Time
}

type healthResponse struct {
	Status           string         `json:"status"`
	Uptime           string         `json:"uptime"`
	UptimeSeconds    float64        `json:"uptime_seconds"`
	PendingReminders int            `json:"pending_reminders"`
	Records          map[string]int `json:"records"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:           "ok",
		Uptime:           formatDuration(uptime),
		UptimeSeconds:    uptime.Seconds(),
		PendingReminders: hc.notifier.Pending(),
		Records:          hc.records.Sizes(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(records HealthSource, notifier NotifierInterface) *HealthController {
	return &HealthController{
		records:   records,
		notifier:  notifier,
		startTime: time.Now(),
	}
}
