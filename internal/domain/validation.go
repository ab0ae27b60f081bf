package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxEntryAmount       = "1000000000000" // 1 trillion
)

var maxEntryAmount = decimal.RequireFromString(MaxEntryAmount)

// ValidateNewEntry checks a draft before it is committed. The manager itself never validates;
// this is called by the presentation layer.
func ValidateNewEntry(n NewEntry) error {
	if err := ValidateAmount(n.Amount); err != nil {
		return err
	}

	if n.Type != Expense && n.Type != Income {
		return fmt.Errorf("%w: %d", ErrInvalidEntryType, int(n.Type))
	}

	if n.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if utf8.RuneCountInString(n.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount validates a draft amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(maxEntryAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}
