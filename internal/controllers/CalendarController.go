package controllers

import (
	"net/http"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/services"
)

// ReminderStates reports the derived reminder state of an event.
type ReminderStates interface {
	ReminderState(ev *models.CalendarEvent) string
}

type CalendarController struct {
	logger  providers.Logger
	service services.CalendarServiceInterface
	states  ReminderStates
}

type eventView struct {
	*models.CalendarEvent
	Reminder string `json:"reminder,omitempty"`
}

type moveRequest struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

func NewCalendarController(logger providers.Logger, service services.CalendarServiceInterface, states ReminderStates) *CalendarController {
	return &CalendarController{
		logger:  logger,
		service: service,
		states:  states,
	}
}

func (cc *CalendarController) view(events []*models.CalendarEvent) []eventView {
	out := make([]eventView, 0, len(events))
	for _, ev := range events {
		v := eventView{CalendarEvent: ev}
		if cc.states != nil {
			v.Reminder = cc.states.ReminderState(ev)
		}
		out = append(out, v)
	}
	return out
}

// List serves all events, or those of ?date=YYYY-MM-DD or ?month=YYYY-MM.
func (cc *CalendarController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var events []*models.CalendarEvent
	switch {
	case q.Get("id") != "":
		ev, ok := cc.service.Get(q.Get("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
			return
		}
		writeJSON(w, http.StatusOK, cc.view([]*models.CalendarEvent{ev})[0])
		return
	case q.Get("date") != "":
		events = cc.service.ListByDate(q.Get("date"))
	case q.Get("month") != "":
		events = cc.service.ListByMonth(q.Get("month"))
	default:
		events = cc.service.List()
	}
	writeJSON(w, http.StatusOK, cc.view(events))
}

func (cc *CalendarController) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.CalendarEvent
	if !decodeJSON(w, r, &payload) {
		return
	}
	ev, err := cc.service.Create(payload)
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (cc *CalendarController) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.CalendarEvent
	if !decodeJSON(w, r, &payload) {
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		payload.ID = id
	}
	ev, err := cc.service.Update(payload)
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (cc *CalendarController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := cc.service.Delete(id); err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (cc *CalendarController) Move(w http.ResponseWriter, r *http.Request) {
	var payload moveRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	ev, err := cc.service.Move(payload.ID, payload.Date)
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (cc *CalendarController) Duplicate(w http.ResponseWriter, r *http.Request) {
	var payload moveRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	ev, err := cc.service.Duplicate(payload.ID, payload.Date)
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (cc *CalendarController) ExportICS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="studytrack.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cc.service.ExportICS()))
}
