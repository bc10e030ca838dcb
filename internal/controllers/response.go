package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"net/http"
	"studytrack/internal/collections"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request"})
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidRecord),
		errors.Is(err, services.ErrEmptySession):
		return http.StatusBadRequest
	case errors.Is(err, collections.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, collections.ErrDuplicateID),
		errors.Is(err, services.ErrTimerRunning),
		errors.Is(err, services.ErrTimerNotRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger providers.Logger, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorf(providers.TypeApp, "%s %s: %s", r.Method, r.URL.Path, err)
		writeJSON(w, status, errorResponse{Error: "Internal Server Error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing id"})
		return "", false
	}
	return id, true
}
