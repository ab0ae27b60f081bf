package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/expenses-tracker/internal/adapter/http/dto"
	"github.com/iho/expenses-tracker/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidEntryType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseFilterQuery reads the optional ?filter= parameter. ok is false when it is absent.
func parseFilterQuery(r *http.Request) (f domain.Filter, ok bool, err error) {
	val := r.URL.Query().Get("filter")
	if val == "" {
		return domain.NoFilter, false, nil
	}
	f, err = domain.ParseFilter(val)
	if err != nil {
		return domain.NoFilter, false, err
	}
	return f, true, nil
}
