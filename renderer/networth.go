// Package renderer builds markdown reports from book data.
//
// Each report has a view struct holding preformatted values and a Render
// function executing a text/template over it. Views are also json-friendly
// so reports can be emitted as data instead of markdown.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/minlog/moneybook"
)

// NetWorth is the view of a valuation snapshot: the active holdings
// partitioned into assets and liabilities, with their totals.
type NetWorth struct {
	// Name of the book.
	Name string `json:"name,omitempty"`
	// Date is the snapshot's reference date.
	Date moneybook.Date `json:"date"`
	// NetWorth is total assets minus total liabilities.
	NetWorth moneybook.Money `json:"netWorth"`
	// TotalAssets is the sum of the asset lines.
	TotalAssets moneybook.Money `json:"totalAssets"`
	// TotalLiabilities is the sum of the liability lines.
	TotalLiabilities moneybook.Money `json:"totalLiabilities"`
	// Assets lists the holdings counted positively, in display order.
	Assets []NetWorthLine `json:"assets"`
	// Liabilities lists the holdings counted negatively, in display order.
	Liabilities []NetWorthLine `json:"liabilities"`
}

// NetWorthLine is a single holding in a net-worth report.
type NetWorthLine struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Value  moneybook.Money `json:"value"`
	Ticker string          `json:"ticker,omitempty"`
}

// NewNetWorth creates the view for a valuation snapshot. The snapshot's
// display ordering is preserved as-is.
func NewNetWorth(name string, v *moneybook.Valuation) *NetWorth {
	n := &NetWorth{
		Name:             name,
		Date:             v.On,
		NetWorth:         moneybook.KRW(v.NetWorth),
		TotalAssets:      moneybook.KRW(v.TotalAssets),
		TotalLiabilities: moneybook.KRW(v.TotalLiabilities),
		Assets:           make([]NetWorthLine, 0, len(v.Assets)),
		Liabilities:      make([]NetWorthLine, 0, len(v.Liabilities)),
	}
	for _, va := range v.Assets {
		n.Assets = append(n.Assets, newNetWorthLine(va))
	}
	for _, va := range v.Liabilities {
		n.Liabilities = append(n.Liabilities, newNetWorthLine(va))
	}
	return n
}

func newNetWorthLine(va moneybook.ValuedAsset) NetWorthLine {
	return NetWorthLine{
		Name:   va.Name,
		Type:   va.Type.String(),
		Value:  moneybook.KRW(va.ContextValue),
		Ticker: va.Ticker,
	}
}

const netWorthMarkdownTemplate = `# Net Worth on {{ .Date }}

Total {{ if .Name }}{{ .Name }} {{ end }}Net Worth: **{{ .NetWorth }}**

{{- if .Assets }}

## Assets

| Name | Type | Value |
|:---|:---|---:|
{{- range .Assets }}
| {{ .Name }} | {{ .Type }} | {{ .Value }} |
{{- end }}
| **Total** | | **{{ .TotalAssets }}** |
{{- end -}}

{{- if .Liabilities }}

## Liabilities

| Name | Type | Value |
|:---|:---|---:|
{{- range .Liabilities }}
| {{ .Name }} | {{ .Type }} | {{ .Value }} |
{{- end }}
| **Total** | | **{{ .TotalLiabilities }}** |
{{- end -}}
`

// RenderNetWorth renders the NetWorth view to a markdown string.
func RenderNetWorth(n *NetWorth) string {
	tmpl := template.Must(template.New("networth").Parse(netWorthMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, n); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}
