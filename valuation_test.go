package moneybook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// histAsset builds an asset with the given history snapshots for valuation tests.
func histAsset(name string, typ AssetType, createdAt string, purchase, current float64, snapshots map[string]float64) *Asset {
	a := &Asset{
		Name:           name,
		Type:           typ,
		PurchaseAmount: dec(purchase),
		CurrentValue:   dec(current),
		CreatedAt:      MustParse(createdAt),
	}
	for on, v := range snapshots {
		a.History.Append(MustParse(on), dec(v))
	}
	return a
}

func TestValueAtLookback(t *testing.T) {
	a := histAsset("fund", Bond, "2024-01-01", 90, 170, map[string]float64{
		"2024-01-01": 100,
		"2024-03-01": 150,
	})

	testCases := []struct {
		name    string
		on      string
		current bool
		want    float64
	}{
		{name: "between snapshots looks back", on: "2024-02-15", want: 100},
		{name: "after last snapshot", on: "2024-03-15", want: 150},
		{name: "on a snapshot day", on: "2024-03-01", want: 150},
		{name: "before first snapshot falls back to purchase", on: "2023-12-01", want: 90},
		{name: "current period bypasses history", on: "2024-02-15", current: true, want: 170},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValueAt(a, MustParse(tc.on), tc.current)
			if !got.Equal(dec(tc.want)) {
				t.Errorf("ValueAt(%s, current=%v) = %v, want %v", tc.on, tc.current, got, tc.want)
			}
		})
	}
}

func TestValueAtFallbackWithoutPurchaseAmount(t *testing.T) {
	a := histAsset("cash", Cash, "2024-01-01", 0, 42, map[string]float64{"2024-02-01": 40})
	if got := ValueAt(a, MustParse("2023-06-01"), false); !got.Equal(dec(42)) {
		t.Errorf("fallback without purchase amount = %v, want the live value 42", got)
	}
}

func TestSnapshotAtActiveWindow(t *testing.T) {
	open := histAsset("open", Savings, "2024-01-10", 0, 100, map[string]float64{"2024-01-10": 100})
	retired := histAsset("retired", Savings, "2024-01-10", 0, 100, map[string]float64{"2024-01-10": 100})
	retired.DeletedAt = MustParse("2024-03-01")

	testCases := []struct {
		name        string
		on          string
		wantOpen    bool
		wantRetired bool
	}{
		{name: "before creation", on: "2024-01-09", wantOpen: false, wantRetired: false},
		{name: "creation day", on: "2024-01-10", wantOpen: true, wantRetired: true},
		{name: "day before retirement", on: "2024-02-29", wantOpen: true, wantRetired: true},
		{name: "retirement day excludes", on: "2024-03-01", wantOpen: true, wantRetired: false},
		{name: "long after", on: "2025-01-01", wantOpen: true, wantRetired: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := SnapshotAt([]*Asset{open, retired}, MustParse(tc.on), false)
			has := func(name string) bool {
				for _, va := range v.Assets {
					if va.Name == name {
						return true
					}
				}
				return false
			}
			if has("open") != tc.wantOpen {
				t.Errorf("open asset included = %v, want %v", has("open"), tc.wantOpen)
			}
			if has("retired") != tc.wantRetired {
				t.Errorf("retired asset included = %v, want %v", has("retired"), tc.wantRetired)
			}
		})
	}
}

func TestSnapshotAtAdditivity(t *testing.T) {
	assets := []*Asset{
		histAsset("checking", Cash, "2024-01-01", 0, 300, map[string]float64{"2024-01-01": 300}),
		histAsset("deposit", Savings, "2024-01-01", 0, 500, map[string]float64{"2024-01-01": 500}),
		histAsset("shares", Stock, "2024-01-01", 150, 200, map[string]float64{"2024-01-01": 200}),
		histAsset("mortgage", Loan, "2024-01-01", 0, 400, map[string]float64{"2024-01-01": 400}),
		histAsset("card", Loan, "2024-01-01", 0, 100, map[string]float64{"2024-01-01": 100}),
	}
	v := SnapshotAt(assets, MustParse("2024-01-01"), false)

	if len(v.Assets) != 3 || len(v.Liabilities) != 2 {
		t.Fatalf("partition = %d assets, %d liabilities; want 3, 2", len(v.Assets), len(v.Liabilities))
	}
	if !v.TotalAssets.Equal(dec(1000)) {
		t.Errorf("TotalAssets = %v, want 1000", v.TotalAssets)
	}
	if !v.TotalLiabilities.Equal(dec(500)) {
		t.Errorf("TotalLiabilities = %v, want 500", v.TotalLiabilities)
	}
	if !v.NetWorth.Equal(dec(500)) {
		t.Errorf("NetWorth = %v, want 500", v.NetWorth)
	}
	if !v.NetWorth.Equal(v.TotalAssets.Sub(v.TotalLiabilities)) {
		t.Error("NetWorth must equal TotalAssets - TotalLiabilities exactly")
	}

	// Totals are exactly the sum of the group's context values.
	sum := decimal.Decimal{}
	for _, va := range v.Assets {
		sum = sum.Add(va.ContextValue)
	}
	if !sum.Equal(v.TotalAssets) {
		t.Errorf("sum of asset context values = %v, want %v", sum, v.TotalAssets)
	}
}

func TestSnapshotAtDisplayOrdering(t *testing.T) {
	assets := []*Asset{
		histAsset("small stock", Stock, "2024-01-01", 0, 100, map[string]float64{"2024-01-01": 100}),
		histAsset("flat", RealEstate, "2024-01-01", 0, 900, map[string]float64{"2024-01-01": 900}),
		histAsset("big stock", Stock, "2024-01-01", 0, 800, map[string]float64{"2024-01-01": 800}),
		histAsset("wallet", Cash, "2024-01-01", 0, 50, map[string]float64{"2024-01-01": 50}),
	}
	v := SnapshotAt(assets, MustParse("2024-01-01"), false)

	// Cash before stocks before real estate; within stocks, descending value.
	want := []string{"wallet", "big stock", "small stock", "flat"}
	for i, name := range want {
		if v.Assets[i].Name != name {
			got := make([]string, len(v.Assets))
			for j, va := range v.Assets {
				got[j] = va.Name
			}
			t.Fatalf("display order = %v, want %v", got, want)
		}
	}
}

func TestSnapshotEndToEnd(t *testing.T) {
	b := testBook()
	a, err := b.AddAsset(AssetSpec{Name: "A", Type: Stock, PurchaseAmount: dec(1000), InitialValue: dec(1000), Date: MustParse("2024-01-01")})
	if err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(1200)}, MustParse("2024-02-01")); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	// Same-day correction.
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(1100)}, MustParse("2024-02-01")); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	if _, err := b.RetireAsset(a.ID, MustParse("2024-03-01")); err != nil {
		t.Fatalf("RetireAsset: %v", err)
	}

	v := SnapshotAt(b.Assets, MustParse("2024-02-01"), false)
	if len(v.Assets) != 1 || !v.Assets[0].ContextValue.Equal(dec(1100)) {
		t.Errorf("on 2024-02-01 context value = %v, want 1100", v.Assets)
	}

	v = SnapshotAt(b.Assets, MustParse("2024-03-01"), false)
	if len(v.Assets) != 0 {
		t.Error("asset retired on 2024-03-01 must be excluded that day")
	}

	v = SnapshotAt(b.Assets, MustParse("2024-02-28"), false)
	if len(v.Assets) != 1 || !v.Assets[0].ContextValue.Equal(dec(1100)) {
		t.Errorf("on 2024-02-28 lookback = %v, want 1100", v.Assets)
	}
}
