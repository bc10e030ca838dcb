package controllers

import (
	"net/http"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/services"
	"studytrack/internal/stats"
)

type JournalController struct {
	logger  providers.Logger
	journal services.JournalServiceInterface
	data    services.DataServiceInterface

	Notes     *RecordController[*models.Note]
	Questions *RecordController[*models.Question]
	Tasks     *RecordController[*models.TodoItem]
	Mood      *RecordController[*models.MoodEntry]
}

func NewJournalController(logger providers.Logger, journal services.JournalServiceInterface, data services.DataServiceInterface) *JournalController {
	return &JournalController{
		logger:    logger,
		journal:   journal,
		data:      data,
		Notes:     NewRecordController(logger, journal.Notes(), func() *models.Note { return &models.Note{} }),
		Questions: NewRecordController(logger, journal.Questions(), func() *models.Question { return &models.Question{} }),
		Tasks:     NewRecordController(logger, journal.Tasks(), func() *models.TodoItem { return &models.TodoItem{} }),
		Mood:      NewRecordController(logger, journal.Mood(), func() *models.MoodEntry { return &models.MoodEntry{} }),
	}
}

// MoodSummary serves the rollup of ?period=week (default) or month.
func (jc *JournalController) MoodSummary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	switch period {
	case "":
		period = stats.PeriodWeek
	case stats.PeriodWeek, stats.PeriodMonth:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "period must be week or month"})
		return
	}
	writeJSON(w, http.StatusOK, jc.journal.MoodSummary(period))
}

func (jc *JournalController) TodoSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jc.journal.TodoSummary())
}

func (jc *JournalController) QuestionSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jc.journal.QuestionSummary())
}

func (jc *JournalController) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="studytrack-export.json"`)
	writeJSON(w, http.StatusOK, jc.data.Export())
}

func (jc *JournalController) Import(w http.ResponseWriter, r *http.Request) {
	var payload models.UserData
	if !decodeJSON(w, r, &payload) {
		return
	}
	if err := jc.data.Import(&payload); err != nil {
		writeError(w, jc.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
