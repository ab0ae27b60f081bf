package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Filter selects which entries are visible and aggregated.
type Filter int

const (
	NoFilter Filter = iota
	ThisMonth
	ThisYear
	LastYear
	LastMonth
	// Range is reserved for custom date ranges and is not implemented.
	Range
)

// Filters lists the selectable filters in display order. Range is left out.
var Filters = []Filter{NoFilter, ThisMonth, ThisYear, LastMonth, LastYear}

var filterNames = map[Filter]string{
	NoFilter:  "NoFilter",
	ThisMonth: "ThisMonth",
	ThisYear:  "ThisYear",
	LastYear:  "LastYear",
	LastMonth: "LastMonth",
	Range:     "Range",
}

var filterFlags = map[Filter]string{
	NoFilter:  "none",
	ThisMonth: "this-month",
	ThisYear:  "this-year",
	LastYear:  "last-year",
	LastMonth: "last-month",
	Range:     "range",
}

var filterLabels = map[Filter]string{
	NoFilter:  "None",
	ThisMonth: "Current month",
	ThisYear:  "Current year",
	LastYear:  "Last year",
	LastMonth: "Last month",
	Range:     "Range",
}

// String returns the variant name, which is also the persisted form.
func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Flag returns the kebab-case form used on the command line and in the API.
func (f Filter) Flag() string {
	return filterFlags[f]
}

// Label returns a human readable name.
func (f Filter) Label() string {
	return filterLabels[f]
}

// ParseFilter accepts both the flag form ("this-month") and the variant name ("ThisMonth").
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	for f, flag := range filterFlags {
		if strings.EqualFold(s, flag) || strings.EqualFold(s, filterNames[f]) {
			return f, nil
		}
	}
	if s == "" {
		return NoFilter, nil
	}
	return NoFilter, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

func (f Filter) valid() bool {
	_, ok := filterNames[f]
	return ok
}

// Match reports whether an entry dated d is selected by f, relative to now.
func (f Filter) Match(d Date, now time.Time) (bool, error) {
	switch f {
	case NoFilter:
		return true, nil
	case ThisMonth:
		return d.Year() == now.Year() && d.Month() == now.Month(), nil
	case ThisYear:
		return d.Year() == now.Year(), nil
	case LastYear:
		return d.Year() == now.Year()-1, nil
	case LastMonth:
		prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return d.Year() == prev.Year() && d.Month() == prev.Month(), nil
	case Range:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedFilter, f)
	default:
		return false, fmt.Errorf("%w: %d", ErrInvalidFilter, int(f))
	}
}

func (f Filter) MarshalJSON() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFilter, int(f))
	}
	return json.Marshal(f.String())
}

func (f *Filter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseFilter(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
