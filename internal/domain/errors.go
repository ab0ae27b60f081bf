package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound      = errors.New("entry not found")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidEntryType   = errors.New("invalid entry type")

	// Filter errors
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrUnsupportedFilter = errors.New("filter is not supported")
)
