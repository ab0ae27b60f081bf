package render

import (
	"fmt"
	"strings"

	"github.com/iho/expenses-tracker/internal/domain"
)

// DisplayDateFormat renders dates as " 5/Mar/2024".
const DisplayDateFormat = "_2/Jan/2006"

// EmptyMessage is shown when a filtered view has no entries.
const EmptyMessage = "No entries. Try changing filters or adding new entries."

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", " ")

// Sign is "+" for income and "-" for expenses.
func Sign(t domain.EntryType) string {
	if t == domain.Income {
		return "+"
	}
	return "-"
}

// EntriesTable renders entries as a markdown table under a heading naming the filter.
func EntriesTable(entries []domain.Entry, filter domain.Filter, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Entries (%s)\n\n", filter.Label())

	if len(entries) == 0 {
		b.WriteString(EmptyMessage + "\n")
		return b.String()
	}

	b.WriteString("| | Description | Amount | Date | ID |\n")
	b.WriteString("|:-:|:--|--:|:--|:--|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | `%s` |\n",
			Sign(e.Type),
			cellEscaper.Replace(e.Description),
			FormatAmount(e.Amount, currency),
			strings.TrimSpace(e.Date.Format(DisplayDateFormat)),
			e.ID,
		)
	}
	return b.String()
}

// Summary renders the aggregates of a filtered view.
func Summary(s domain.Summary, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Stats (%s)\n\n", s.Filter.Label())
	fmt.Fprintf(&b, "- **Entries:** %d\n", s.Count)
	fmt.Fprintf(&b, "- **Total income:** %s\n", FormatAmount(s.Income, currency))
	fmt.Fprintf(&b, "- **Total expenses:** %s\n", FormatAmount(s.Expenses, currency))
	fmt.Fprintf(&b, "- **Total:** %s\n", FormatSigned(s.Total, currency))
	return b.String()
}

// Filters lists the selectable filters, marking the active one.
func Filters(active domain.Filter) string {
	var b strings.Builder
	b.WriteString("## Filters\n\n")
	for _, f := range domain.Filters {
		marker := " "
		if f == active {
			marker = "x"
		}
		fmt.Fprintf(&b, "- [%s] `%s` %s\n", marker, f.Flag(), f.Label())
	}
	return b.String()
}
