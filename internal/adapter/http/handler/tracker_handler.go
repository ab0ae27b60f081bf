package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/expenses-tracker/internal/adapter/http/dto"
	"github.com/iho/expenses-tracker/internal/domain"
)

// TrackerService defines the behavior needed by TrackerHandler.
type TrackerService interface {
	Today() domain.Date
	AddEntry(ctx context.Context, draft domain.NewEntry) (*domain.Entry, error)
	RemoveEntry(ctx context.Context, id string) error
	Filter() domain.Filter
	SetFilter(ctx context.Context, f domain.Filter) error
	Entries(ctx context.Context) ([]domain.Entry, error)
	EntriesWithFilter(ctx context.Context, f domain.Filter) ([]domain.Entry, error)
	Summary(ctx context.Context) (domain.Summary, error)
	SummaryWithFilter(ctx context.Context, f domain.Filter) (domain.Summary, error)
	Save(ctx context.Context) error
}

// TrackerHandler handles entry, summary and filter requests.
type TrackerHandler struct {
	tracker TrackerService
	logger  zerolog.Logger
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(tracker TrackerService, logger zerolog.Logger) *TrackerHandler {
	return &TrackerHandler{tracker: tracker, logger: logger}
}

// ListEntries lists the entries visible under the active filter, or under ?filter= when given.
func (h *TrackerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	f, explicit, err := parseFilterQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	var entries []domain.Entry
	if explicit {
		entries, err = h.tracker.EntriesWithFilter(r.Context(), f)
	} else {
		f = h.tracker.Filter()
		entries, err = h.tracker.Entries(r.Context())
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListEntriesResponse(f, entries))
}

// CreateEntry commits a draft entry.
func (h *TrackerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	draft, err := req.ToDraft(h.tracker.Today())
	if err != nil {
		writeError(w, mapDomainError(err), "invalid entry", err.Error())
		return
	}

	entry, err := h.tracker.AddEntry(r.Context(), draft)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(*entry))
}

// DeleteEntry removes an entry by ID.
func (h *TrackerHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.tracker.RemoveEntry(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary returns income, expenses and total for the active filter, or for ?filter=.
func (h *TrackerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	f, explicit, err := parseFilterQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	var s domain.Summary
	if explicit {
		s, err = h.tracker.SummaryWithFilter(r.Context(), f)
	} else {
		s, err = h.tracker.Summary(r.Context())
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(s))
}

// GetFilter returns the active filter.
func (h *TrackerHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.FilterFromDomain(h.tracker.Filter()))
}

// SetFilter changes the active filter.
func (h *TrackerHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req dto.SetFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	f, err := req.ToDomain()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid filter", err.Error())
		return
	}

	if err := h.tracker.SetFilter(r.Context(), f); err != nil {
		writeError(w, mapDomainError(err), "failed to set filter", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FilterFromDomain(f))
}

// SaveState checkpoints the state immediately.
func (h *TrackerHandler) SaveState(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Save(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("explicit save failed")
		writeError(w, http.StatusInternalServerError, "failed to save state", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
