package renderer

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/minlog/moneybook"
	"github.com/shopspring/decimal"
)

// Cashflow is the view of a summarized date range: income, expense, the
// balance, and the per-category expense breakdown.
type Cashflow struct {
	From    moneybook.Date  `json:"from"`
	To      moneybook.Date  `json:"to"`
	Income  moneybook.Money `json:"income"`
	Expense moneybook.Money `json:"expense"`
	Balance moneybook.Money `json:"balance"`
	// Categories lists the expense breakdown, largest first.
	Categories []CategoryLine `json:"categories"`
}

// CategoryLine is one category's cut of the range's expenses.
type CategoryLine struct {
	Category string          `json:"category"`
	Amount   moneybook.Money `json:"amount"`
	// Share is the category's percentage of the total expense, e.g. "42.5%".
	Share string `json:"share"`
}

// NewCashflow creates the view for a summary.
func NewCashflow(s *moneybook.Summary) *Cashflow {
	c := &Cashflow{
		From:       s.Range.From,
		To:         s.Range.To,
		Income:     moneybook.KRW(s.Income),
		Expense:    moneybook.KRW(s.Expense),
		Balance:    moneybook.KRW(s.Balance()),
		Categories: make([]CategoryLine, 0, len(s.ByCategory)),
	}
	for cat, amount := range s.ByCategory {
		line := CategoryLine{Category: cat, Amount: moneybook.KRW(amount)}
		if s.Expense.IsPositive() {
			line.Share = amount.Div(s.Expense).Mul(decimal.NewFromInt(100)).Round(1).String() + "%"
		}
		c.Categories = append(c.Categories, line)
	}
	sort.SliceStable(c.Categories, func(i, j int) bool {
		x, y := c.Categories[i].Amount.Amount(), c.Categories[j].Amount.Amount()
		if !x.Equal(y) {
			return x.GreaterThan(y)
		}
		return c.Categories[i].Category < c.Categories[j].Category
	})
	return c
}

const cashflowMarkdownTemplate = `# Cashflow from {{ .From }} to {{ .To }}

| **Balance** | **{{ .Balance.SignedString }}** |
|:---|---:|
| Income | {{ .Income }} |
| Expense | {{ .Expense }} |

{{- if .Categories }}

## Spending by Category

| Category | Amount | Share |
|:---|---:|---:|
{{- range .Categories }}
| {{ .Category }} | {{ .Amount }} | {{ .Share }} |
{{- end }}
{{- end -}}
`

// RenderCashflow renders the Cashflow view to a markdown string.
func RenderCashflow(c *Cashflow) string {
	tmpl := template.Must(template.New("cashflow").Parse(cashflowMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, c); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}

// Monthly is the month-by-month cashflow of one calendar year.
type Monthly struct {
	Year   int         `json:"year"`
	Months []MonthLine `json:"months"`
	// Balance is the year's income minus expense.
	Balance moneybook.Money `json:"balance"`
}

// MonthLine is one month's totals. Months with no transactions are omitted.
type MonthLine struct {
	Month   string          `json:"month"`
	Income  moneybook.Money `json:"income"`
	Expense moneybook.Money `json:"expense"`
	Balance moneybook.Money `json:"balance"`
}

// NewMonthly creates the month-by-month view of a year's transactions.
func NewMonthly(transactions []*moneybook.Transaction, year int) *Monthly {
	m := &Monthly{Year: year, Balance: moneybook.KRW(decimal.Decimal{})}
	for month := time.January; month <= time.December; month++ {
		r := moneybook.Monthly.Range(moneybook.NewDate(year, month, 1))
		s := moneybook.Summarize(transactions, r)
		if s.Income.IsZero() && s.Expense.IsZero() {
			continue
		}
		m.Months = append(m.Months, MonthLine{
			Month:   r.From.Format("2006-01"),
			Income:  moneybook.KRW(s.Income),
			Expense: moneybook.KRW(s.Expense),
			Balance: moneybook.KRW(s.Balance()),
		})
		m.Balance = m.Balance.Add(moneybook.KRW(s.Balance()))
	}
	return m
}

const monthlyMarkdownTemplate = `# Monthly Cashflow {{ .Year }}

| Month | Income | Expense | Balance |
|:---|---:|---:|---:|
{{- range .Months }}
| {{ .Month }} | {{ .Income }} | {{ .Expense }} | {{ .Balance.SignedString }} |
{{- end }}
| **Total** | | | **{{ .Balance.SignedString }}** |
`

// RenderMonthly renders the Monthly view to a markdown string.
func RenderMonthly(m *Monthly) string {
	tmpl := template.Must(template.New("monthly").Parse(monthlyMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, m); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}
