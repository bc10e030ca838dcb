package controllers

import (
	"net/http"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/services"
)

// RecordController serves CRUD for one journal collection.
type RecordController[T models.Record] struct {
	logger  providers.Logger
	store   services.RecordStore[T]
	newItem func() T
}

func NewRecordController[T models.Record](logger providers.Logger, store services.RecordStore[T], newItem func() T) *RecordController[T] {
	return &RecordController[T]{logger: logger, store: store, newItem: newItem}
}

func (rc *RecordController[T]) List(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		item, ok := rc.store.Get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "record not found"})
			return
		}
		writeJSON(w, http.StatusOK, item)
		return
	}
	writeJSON(w, http.StatusOK, rc.store.All())
}

func (rc *RecordController[T]) Create(w http.ResponseWriter, r *http.Request) {
	item := rc.newItem()
	if !decodeJSON(w, r, item) {
		return
	}
	if err := rc.store.Add(item); err != nil {
		writeError(w, rc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (rc *RecordController[T]) Update(w http.ResponseWriter, r *http.Request) {
	item := rc.newItem()
	if !decodeJSON(w, r, item) {
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		item.SetID(id)
	}
	if item.GetID() == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing id"})
		return
	}
	if err := rc.store.Update(item); err != nil {
		writeError(w, rc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (rc *RecordController[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := rc.store.Remove(id); err != nil {
		writeError(w, rc.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
