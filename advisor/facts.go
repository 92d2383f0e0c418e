// Package advisor produces financial insight reports from book aggregates
// using the Gemini API.
//
// The model only ever sees precomputed aggregates, never the raw book, and
// its report is stored verbatim: figures quoted in the text are not parsed
// back into the book.
package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minlog/moneybook"
)

// Facts is the aggregate picture of the book handed to the model: the
// current valuation and the running month's cashflow.
type Facts struct {
	Date      moneybook.Date
	Valuation *moneybook.Valuation
	Month     *moneybook.Summary
}

// NewFacts computes the aggregates for the book as of the given day.
func NewFacts(b *moneybook.Book, on moneybook.Date) *Facts {
	return &Facts{
		Date:      on,
		Valuation: moneybook.SnapshotAt(b.Assets, on, on.IsToday()),
		Month:     moneybook.Summarize(b.Transactions, moneybook.Monthly.Range(on)),
	}
}

// Prompt renders the facts as the model's input text.
func (f *Facts) Prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Financial position as of %s (all amounts in %s):\n\n", f.Date, moneybook.DefaultCurrency)

	fmt.Fprintf(&b, "Net worth: %s\n", moneybook.KRW(f.Valuation.NetWorth))
	fmt.Fprintf(&b, "Total assets: %s\n", moneybook.KRW(f.Valuation.TotalAssets))
	fmt.Fprintf(&b, "Total liabilities: %s\n\n", moneybook.KRW(f.Valuation.TotalLiabilities))

	if len(f.Valuation.Assets) > 0 || len(f.Valuation.Liabilities) > 0 {
		b.WriteString("Holdings:\n")
		for _, va := range f.Valuation.Assets {
			fmt.Fprintf(&b, "- %s (%s): %s\n", va.Name, va.Type, moneybook.KRW(va.ContextValue))
		}
		for _, va := range f.Valuation.Liabilities {
			fmt.Fprintf(&b, "- %s (%s, liability): %s\n", va.Name, va.Type, moneybook.KRW(va.ContextValue))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "This month (%s to %s):\n", f.Month.Range.From, f.Month.Range.To)
	fmt.Fprintf(&b, "- income: %s\n", moneybook.KRW(f.Month.Income))
	fmt.Fprintf(&b, "- expense: %s\n", moneybook.KRW(f.Month.Expense))
	fmt.Fprintf(&b, "- balance: %s\n", moneybook.KRW(f.Month.Balance()).SignedString())
	for _, cat := range sortedCategories(f.Month) {
		fmt.Fprintf(&b, "- spent on %s: %s\n", cat, moneybook.KRW(f.Month.ByCategory[cat]))
	}
	return b.String()
}

// sortedCategories returns the expense categories largest first, ties
// alphabetical, so the prompt is deterministic.
func sortedCategories(s *moneybook.Summary) []moneybook.Category {
	cats := make([]moneybook.Category, 0, len(s.ByCategory))
	for cat := range s.ByCategory {
		cats = append(cats, cat)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		x, y := s.ByCategory[cats[i]], s.ByCategory[cats[j]]
		if !x.Equal(y) {
			return x.GreaterThan(y)
		}
		return cats[i] < cats[j]
	})
	return cats
}
