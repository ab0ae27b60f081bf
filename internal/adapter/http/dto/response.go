package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/expenses-tracker/internal/domain"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Amount      decimal.Decimal `json:"amount"`
	EntryType   string          `json:"entry_type"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		CreatedAt:   e.CreatedAt,
		Amount:      e.Amount,
		EntryType:   e.Type.String(),
		Date:        e.Date.String(),
		Description: e.Description,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []domain.Entry) []EntryResponse {
	result := make([]EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse represents a filtered view of entries.
type ListEntriesResponse struct {
	Filter  string          `json:"filter"`
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// NewListEntriesResponse builds a list response for the filter that produced entries.
func NewListEntriesResponse(f domain.Filter, entries []domain.Entry) ListEntriesResponse {
	return ListEntriesResponse{
		Filter:  f.Flag(),
		Entries: EntriesFromDomain(entries),
		Total:   len(entries),
	}
}

// SummaryResponse represents the aggregates of a filtered view.
type SummaryResponse struct {
	Filter   string          `json:"filter"`
	Count    int             `json:"count"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

// SummaryFromDomain converts a domain summary to response.
func SummaryFromDomain(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		Filter:   s.Filter.Flag(),
		Count:    s.Count,
		Income:   s.Income,
		Expenses: s.Expenses,
		Total:    s.Total,
	}
}

// FilterResponse represents the active filter.
type FilterResponse struct {
	Filter string `json:"filter"`
	Label  string `json:"label"`
}

// FilterFromDomain converts a filter to response.
func FilterFromDomain(f domain.Filter) FilterResponse {
	return FilterResponse{Filter: f.Flag(), Label: f.Label()}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
