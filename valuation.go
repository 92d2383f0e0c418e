package moneybook

import (
	"log"
	"sort"

	"github.com/shopspring/decimal"
)

// ValuedAsset is an asset annotated with the value attributable to the
// snapshot's reference date.
type ValuedAsset struct {
	*Asset
	ContextValue decimal.Decimal
}

// Valuation is a derived, never stored, view of the book at a single
// reference date: the active assets partitioned into holdings and
// liabilities, each group in display order, plus their totals.
type Valuation struct {
	On          Date
	Assets      []ValuedAsset
	Liabilities []ValuedAsset

	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
}

// ValueAt returns the value attributable to the asset on the given day.
//
// When current is true the reference date falls in the live period (today,
// or the running month for monthly views) and CurrentValue is
// authoritative: it may carry a sub-day update not yet snapshotted.
// Otherwise the most recent history snapshot on or before the day is used.
//
// If no snapshot exists on or before the day, the value degrades to the
// purchase amount, then to the live value. That is a documented
// approximation, not a claim of historical accuracy: the asset simply has
// no recorded value that early. See docs/valuation.md.
func ValueAt(a *Asset, on Date, current bool) decimal.Decimal {
	if current {
		return a.CurrentValue
	}
	if v, ok := a.History.ValueAsOf(on); ok {
		return v
	}
	log.Printf("%s: no snapshot on or before %s, using fallback value", a.Name, on)
	if !a.PurchaseAmount.IsZero() {
		return a.PurchaseAmount
	}
	return a.CurrentValue
}

// SnapshotAt computes the valuation of the given assets at a reference
// date. It is pure: no mutation, no I/O, deterministic for a given input.
//
// Assets are filtered by their active window, valued with ValueAt,
// partitioned by liability semantics and summed. Missing values degrade to
// zero rather than failing: this is a reporting path, not a transactional
// one.
func SnapshotAt(assets []*Asset, on Date, current bool) *Valuation {
	v := &Valuation{On: on}
	for _, a := range assets {
		if !a.ActiveOn(on) {
			continue
		}
		va := ValuedAsset{Asset: a, ContextValue: ValueAt(a, on, current)}
		if a.Type.IsLiability() {
			v.Liabilities = append(v.Liabilities, va)
			v.TotalLiabilities = v.TotalLiabilities.Add(va.ContextValue)
		} else {
			v.Assets = append(v.Assets, va)
			v.TotalAssets = v.TotalAssets.Add(va.ContextValue)
		}
	}
	sortValued(v.Assets)
	sortValued(v.Liabilities)
	v.NetWorth = v.TotalAssets.Sub(v.TotalLiabilities)
	return v
}

// sortValued orders a group for display: by the fixed type ordering first,
// then by descending context value inside each type.
func sortValued(list []ValuedAsset) {
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := list[i].Type.displayRank(), list[j].Type.displayRank()
		if ri != rj {
			return ri < rj
		}
		return list[i].ContextValue.GreaterThan(list[j].ContextValue)
	})
}
