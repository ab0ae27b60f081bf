package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ParallelThreshold is the collection size above which scans are split across goroutines.
const ParallelThreshold = 4096

// EntryManager owns every recorded entry and the active filter.
type EntryManager struct {
	Entries []Entry `json:"entries"`
	Filter  Filter  `json:"filter"`
}

// NewEntryManager returns an empty manager with no filter.
func NewEntryManager() *EntryManager {
	return &EntryManager{Entries: []Entry{}, Filter: NoFilter}
}

// AddEntry appends e and restores display order. It always succeeds.
func (m *EntryManager) AddEntry(e Entry) bool {
	m.Entries = append(m.Entries, e)
	m.Sort()
	return true
}

// RemoveEntryByID removes the entry with the given id and reports whether it existed.
func (m *EntryManager) RemoveEntryByID(id string) bool {
	idx := slices.IndexFunc(m.Entries, func(e Entry) bool { return e.ID == id })
	if idx < 0 {
		return false
	}
	m.Entries = slices.Delete(m.Entries, idx, idx+1)
	return true
}

// Sort orders entries newest attributed date first, then most recently recorded first.
// Ids break the remaining ties so the order is total.
func (m *EntryManager) Sort() {
	slices.SortStableFunc(m.Entries, compareDisplay)
}

func compareDisplay(a, b Entry) int {
	if c := b.Date.Time().Compare(a.Date.Time()); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// SetFilter changes the active filter. Range is rejected.
func (m *EntryManager) SetFilter(f Filter) error {
	if !f.valid() {
		return ErrInvalidFilter
	}
	if f == Range {
		return ErrUnsupportedFilter
	}
	m.Filter = f
	return nil
}

// FilteredEntries returns a copy of the entries matching the active filter, in display order.
func (m *EntryManager) FilteredEntries(now time.Time) ([]Entry, error) {
	return filterEntries(m.Entries, m.Filter, now)
}

// FilteredEntriesBy is FilteredEntries with an explicit filter instead of the active one.
func (m *EntryManager) FilteredEntriesBy(f Filter, now time.Time) ([]Entry, error) {
	return filterEntries(m.Entries, f, now)
}

// TotalIncome sums income amounts over the filtered view.
func (m *EntryManager) TotalIncome(now time.Time) (decimal.Decimal, error) {
	s, err := m.Summarize(now)
	return s.Income, err
}

// TotalExpenses sums expense amounts over the filtered view.
func (m *EntryManager) TotalExpenses(now time.Time) (decimal.Decimal, error) {
	s, err := m.Summarize(now)
	return s.Expenses, err
}

// Total is TotalIncome minus TotalExpenses.
func (m *EntryManager) Total(now time.Time) (decimal.Decimal, error) {
	s, err := m.Summarize(now)
	return s.Total, err
}

// Summary holds the aggregates of one filtered view.
type Summary struct {
	Filter   Filter
	Count    int
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Total    decimal.Decimal
}

// Summarize computes every aggregate of the active filter in one pass.
func (m *EntryManager) Summarize(now time.Time) (Summary, error) {
	return m.SummarizeBy(m.Filter, now)
}

// SummarizeBy computes the aggregates for an explicit filter.
func (m *EntryManager) SummarizeBy(f Filter, now time.Time) (Summary, error) {
	entries, err := filterEntries(m.Entries, f, now)
	if err != nil {
		return Summary{Filter: f}, err
	}
	income, expenses := sumByType(entries)
	return Summary{
		Filter:   f,
		Count:    len(entries),
		Income:   income,
		Expenses: expenses,
		Total:    income.Sub(expenses),
	}, nil
}

// Clone returns a deep copy suitable for encoding outside of a lock.
func (m *EntryManager) Clone() *EntryManager {
	return &EntryManager{
		Entries: slices.Clone(m.Entries),
		Filter:  m.Filter,
	}
}

func filterEntries(entries []Entry, f Filter, now time.Time) ([]Entry, error) {
	if f == Range {
		return nil, ErrUnsupportedFilter
	}
	if len(entries) <= ParallelThreshold {
		return filterChunk(entries, f, now)
	}

	chunks := chunk(entries, ParallelThreshold)
	results := make([][]Entry, len(chunks))
	var g errgroup.Group
	for i, c := range chunks {
		g.Go(func() error {
			out, err := filterChunk(c, f, now)
			results[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

func filterChunk(entries []Entry, f Filter, now time.Time) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		ok, err := f.Match(e.Date, now)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func sumByType(entries []Entry) (income, expenses decimal.Decimal) {
	if len(entries) <= ParallelThreshold {
		return sumChunk(entries)
	}

	chunks := chunk(entries, ParallelThreshold)
	incomes := make([]decimal.Decimal, len(chunks))
	outgoings := make([]decimal.Decimal, len(chunks))
	var g errgroup.Group
	for i, c := range chunks {
		g.Go(func() error {
			incomes[i], outgoings[i] = sumChunk(c)
			return nil
		})
	}
	_ = g.Wait()
	return decimal.Sum(decimal.Zero, incomes...), decimal.Sum(decimal.Zero, outgoings...)
}

func sumChunk(entries []Entry) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case Income:
			income = income.Add(e.Amount)
		case Expense:
			expenses = expenses.Add(e.Amount)
		}
	}
	return income, expenses
}

func chunk(entries []Entry, size int) [][]Entry {
	var out [][]Entry
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		out = append(out, entries[start:end])
	}
	return out
}
