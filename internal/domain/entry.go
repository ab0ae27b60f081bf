package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells whether an entry adds to or subtracts from the total.
type EntryType int

const (
	Expense EntryType = iota
	Income
)

func (t EntryType) String() string {
	switch t {
	case Expense:
		return "Expense"
	case Income:
		return "Income"
	default:
		return fmt.Sprintf("EntryType(%d)", int(t))
	}
}

// ParseEntryType accepts "income" or "expense" in any case, ignoring
// surrounding space. "expenses" and "-" also mean Expense, "+" means Income.
func ParseEntryType(s string) (EntryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses", "-":
		return Expense, nil
	case "income", "+":
		return Income, nil
	default:
		return Expense, fmt.Errorf("%w: %q", ErrInvalidEntryType, s)
	}
}

func (t EntryType) MarshalJSON() ([]byte, error) {
	if t != Expense && t != Income {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEntryType, int(t))
	}
	return json.Marshal(t.String())
}

func (t *EntryType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseEntryType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Entry is one recorded transaction. Entries are never modified once created.
type Entry struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"entry_type"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
}

// Equal reports whether both entries carry the same values.
func (e Entry) Equal(o Entry) bool {
	return e.ID == o.ID &&
		e.CreatedAt.Equal(o.CreatedAt) &&
		e.Amount.Equal(o.Amount) &&
		e.Type == o.Type &&
		e.Date == o.Date &&
		e.Description == o.Description
}

// NewEntry is a draft transaction being composed by the user.
type NewEntry struct {
	Amount      decimal.Decimal
	Type        EntryType
	Description string
	Date        Date
}

// DefaultNewEntry returns an empty expense draft dated today.
func DefaultNewEntry(today Date) NewEntry {
	return NewEntry{
		Amount: decimal.Zero,
		Type:   Expense,
		Date:   today,
	}
}

// Reset puts the draft back to its defaults after it has been committed.
func (n *NewEntry) Reset(today Date) {
	*n = DefaultNewEntry(today)
}

// ToEntry commits the draft. Values are copied verbatim.
func (n NewEntry) ToEntry(id string, createdAt time.Time) Entry {
	return Entry{
		ID:          id,
		CreatedAt:   createdAt,
		Amount:      n.Amount,
		Type:        n.Type,
		Date:        n.Date,
		Description: n.Description,
	}
}
