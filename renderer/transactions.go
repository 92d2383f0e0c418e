package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/minlog/moneybook"
)

// TransactionLog is the view of the transactions falling in a date range,
// in chronological order.
type TransactionLog struct {
	From    moneybook.Date    `json:"from"`
	To      moneybook.Date    `json:"to"`
	Entries []TransactionLine `json:"entries"`
	Balance moneybook.Money   `json:"balance"`
}

// TransactionLine is one cash movement in a transaction log.
type TransactionLine struct {
	ID          string          `json:"id"`
	Date        moneybook.Date  `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      moneybook.Money `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// NewTransactionLog creates the view of the transactions in a range.
// Input order is preserved; the book keeps its transactions chronological.
func NewTransactionLog(transactions []*moneybook.Transaction, r moneybook.Range) *TransactionLog {
	l := &TransactionLog{From: r.From, To: r.To}
	s := moneybook.Summarize(transactions, r)
	l.Balance = moneybook.KRW(s.Balance())
	for _, tx := range transactions {
		if !r.Contains(tx.Date) {
			continue
		}
		l.Entries = append(l.Entries, TransactionLine{
			ID:          tx.ID,
			Date:        tx.Date,
			Type:        tx.Type.String(),
			Category:    tx.Category,
			Amount:      moneybook.KRW(tx.Amount),
			Description: tx.Description,
		})
	}
	return l
}

const transactionLogMarkdownTemplate = `# Transactions from {{ .From }} to {{ .To }}

{{- if .Entries }}

| Date | Type | Category | Amount | Description |
|:---|:---|:---|---:|:---|
{{- range .Entries }}
| {{ .Date }} | {{ .Type }} | {{ .Category }} | {{ .Amount }} | {{ .Description }} |
{{- end }}

Balance: **{{ .Balance.SignedString }}**
{{- else }}

No transactions.
{{- end -}}
`

// RenderTransactionLog renders the TransactionLog view to a markdown string.
func RenderTransactionLog(l *TransactionLog) string {
	tmpl := template.Must(template.New("transactions").Parse(transactionLogMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, l); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}
