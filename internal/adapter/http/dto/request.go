package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/expenses-tracker/internal/domain"
)

// CreateEntryRequest represents a request to add an entry.
type CreateEntryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	EntryType   string          `json:"entry_type"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
}

// ToDraft converts the request to a draft. A missing type means expense and a missing
// date means today.
func (r *CreateEntryRequest) ToDraft(today domain.Date) (domain.NewEntry, error) {
	draft := domain.DefaultNewEntry(today)
	draft.Amount = r.Amount
	draft.Description = r.Description

	if strings.TrimSpace(r.EntryType) != "" {
		typ, err := domain.ParseEntryType(r.EntryType)
		if err != nil {
			return domain.NewEntry{}, err
		}
		draft.Type = typ
	}

	if r.Date != "" {
		date, err := domain.ParseDate(r.Date)
		if err != nil {
			return domain.NewEntry{}, err
		}
		draft.Date = date
	}

	return draft, nil
}

// SetFilterRequest represents a request to change the active filter.
type SetFilterRequest struct {
	Filter string `json:"filter"`
}

// ToDomain parses the filter name.
func (r *SetFilterRequest) ToDomain() (domain.Filter, error) {
	return domain.ParseFilter(r.Filter)
}
