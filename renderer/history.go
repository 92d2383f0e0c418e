package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/minlog/moneybook"
)

// History is a value trajectory: the book's net worth over a date range,
// or one asset's recorded snapshots.
type History struct {
	// Name of the asset, empty for a net-worth history.
	Name    string         `json:"name,omitempty"`
	From    moneybook.Date `json:"from"`
	To      moneybook.Date `json:"to"`
	Entries []HistoryLine  `json:"entries"`
}

// HistoryLine is the net worth at one period's close and its change since
// the previous point.
type HistoryLine struct {
	Date     moneybook.Date  `json:"date"`
	NetWorth moneybook.Money `json:"netWorth"`
	Change   moneybook.Money `json:"change"`
}

// NewHistory computes the net-worth trajectory of the assets over the
// range, valuing at each period's last day. A period containing today is
// valued with the live values instead of the last snapshot.
func NewHistory(assets []*moneybook.Asset, r moneybook.Range, period moneybook.Period) *History {
	h := &History{From: r.From, To: r.To}
	var prev moneybook.Money
	for on := r.From.StartOf(period); !on.After(r.To); on = on.EndOf(period).Add(1) {
		end := on.EndOf(period)
		if end.After(r.To) {
			end = r.To
		}
		current := period.Range(end).Contains(moneybook.Today())
		v := moneybook.SnapshotAt(assets, end, current)
		line := HistoryLine{Date: end, NetWorth: moneybook.KRW(v.NetWorth)}
		if len(h.Entries) > 0 {
			line.Change = line.NetWorth.Sub(prev)
		}
		h.Entries = append(h.Entries, line)
		prev = line.NetWorth
	}
	return h
}

// NewAssetHistory lists one asset's recorded snapshots verbatim.
func NewAssetHistory(a *moneybook.Asset) *History {
	h := &History{Name: a.Name}
	var prev moneybook.Money
	for on, v := range a.History.Values() {
		line := HistoryLine{Date: on, NetWorth: moneybook.KRW(v)}
		if len(h.Entries) > 0 {
			line.Change = line.NetWorth.Sub(prev)
		}
		h.Entries = append(h.Entries, line)
		prev = line.NetWorth
	}
	if n := len(h.Entries); n > 0 {
		h.From, h.To = h.Entries[0].Date, h.Entries[n-1].Date
	}
	return h
}

const historyMarkdownTemplate = `# {{ if .Name }}{{ .Name }}{{ else }}Net Worth{{ end }} History from {{ .From }} to {{ .To }}

| Date | Value | Change |
|:---|---:|---:|
{{- range .Entries }}
| {{ .Date }} | {{ .NetWorth }} | {{ .Change.SignedString }} |
{{- end }}
`

// RenderHistory renders the History view to a markdown string.
func RenderHistory(h *History) string {
	tmpl := template.Must(template.New("history").Parse(historyMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, h); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}
