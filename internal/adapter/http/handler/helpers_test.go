package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/expenses-tracker/internal/adapter/http/dto"
	"github.com/iho/expenses-tracker/internal/domain"
)

func TestParseFilterQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/entries?filter=this-year", nil)
	f, ok, err := parseFilterQuery(req)
	if err != nil || !ok || f != domain.ThisYear {
		t.Fatalf("expected this-year, got %v ok=%v err=%v", f, ok, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries", nil)
	if _, ok, err := parseFilterQuery(req); ok || err != nil {
		t.Fatalf("expected absent filter, got ok=%v err=%v", ok, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries?filter=weekly", nil)
	if _, _, err := parseFilterQuery(req); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"wrapped invalid date", fmt.Errorf("%w: bad", domain.ErrInvalidDate), http.StatusBadRequest},
		{"description too long", domain.ErrDescriptionTooLong, http.StatusBadRequest},
		{"unsupported filter", domain.ErrUnsupportedFilter, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" || resp.Message != "detail" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
