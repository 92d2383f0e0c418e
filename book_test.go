package moneybook

import (
	"errors"
	"testing"
	"time"
)

func testBook() *Book {
	b := NewBook()
	b.SetClock(func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) })
	return b
}

func TestAddAssetSeedsHistory(t *testing.T) {
	b := testBook()
	a, err := b.AddAsset(AssetSpec{
		Name:           "Brokerage",
		Type:           Stock,
		PurchaseAmount: dec(1000),
		InitialValue:   dec(1000),
		Date:           MustParse("2024-01-10"),
		Ticker:         "VT",
		Quantity:       dec(10),
	})
	if err != nil {
		t.Fatalf("AddAsset returned an unexpected error: %v", err)
	}
	if a.ID == "" {
		t.Error("AddAsset must assign an id")
	}
	if a.CreatedAt != MustParse("2024-01-10") {
		t.Errorf("CreatedAt = %v, want 2024-01-10", a.CreatedAt)
	}
	if a.History.Len() != 1 {
		t.Fatalf("history must hold exactly the seed snapshot, got %d", a.History.Len())
	}
	if v, _ := a.History.Get(MustParse("2024-01-10")); !v.Equal(dec(1000)) {
		t.Errorf("seed snapshot = %v, want 1000", v)
	}
	if a.Retired() {
		t.Error("a fresh asset must not be retired")
	}
}

func TestAddAssetRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		spec AssetSpec
	}{
		{name: "missing name", spec: AssetSpec{InitialValue: dec(1), Date: MustParse("2024-01-01")}},
		{name: "missing date", spec: AssetSpec{Name: "x", InitialValue: dec(1)}},
		{name: "negative purchase", spec: AssetSpec{Name: "x", PurchaseAmount: dec(-1), Date: MustParse("2024-01-01")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBook()
			if _, err := b.AddAsset(tc.spec); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("AddAsset = %v, want ErrInvalidInput", err)
			}
			if len(b.Assets) != 0 {
				t.Error("a rejected AddAsset must not mutate the book")
			}
		})
	}
}

func TestRecordValueSameDayIdempotence(t *testing.T) {
	b := testBook()
	a, _ := b.AddAsset(AssetSpec{Name: "Fund", Type: Bond, InitialValue: dec(500), Date: MustParse("2024-01-01")})

	d := MustParse("2024-02-01")
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(600)}, d); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(600)}, d); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	if a.History.Len() != 2 { // seed + one for 2024-02-01
		t.Fatalf("same-day re-recording grew the history: len=%d", a.History.Len())
	}

	// A different value for the same day: overwrite, not append.
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(650)}, d); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	if a.History.Len() != 2 {
		t.Fatalf("same-day correction grew the history: len=%d", a.History.Len())
	}
	if v, _ := a.History.Get(d); !v.Equal(dec(650)) {
		t.Errorf("snapshot holds %v, want the second value 650", v)
	}
	if !a.CurrentValue.Equal(dec(650)) {
		t.Errorf("CurrentValue = %v, want 650", a.CurrentValue)
	}
}

func TestRecordValuePartialMarketFields(t *testing.T) {
	b := testBook()
	a, _ := b.AddAsset(AssetSpec{
		Name: "ETF", Type: Stock, InitialValue: dec(1000),
		Date: MustParse("2024-01-01"), Ticker: "SPY", Quantity: dec(2), UnitPrice: dec(500),
	})

	// Omitted unit price and quantity are preserved unchanged.
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(1100)}, MustParse("2024-02-01")); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	if !a.Quantity.Equal(dec(2)) || !a.UnitPrice.Equal(dec(500)) {
		t.Errorf("partial update clobbered market fields: quantity=%v unitPrice=%v", a.Quantity, a.UnitPrice)
	}

	// Supplied fields overwrite.
	if _, err := b.RecordValue(ValueUpdate{AssetID: a.ID, Value: dec(1650), UnitPrice: dec(550), Quantity: dec(3)}, MustParse("2024-02-02")); err != nil {
		t.Fatalf("RecordValue: %v", err)
	}
	if !a.Quantity.Equal(dec(3)) || !a.UnitPrice.Equal(dec(550)) {
		t.Errorf("market fields not updated: quantity=%v unitPrice=%v", a.Quantity, a.UnitPrice)
	}
}

func TestRecordValueUnknownAsset(t *testing.T) {
	b := testBook()
	if _, err := b.RecordValue(ValueUpdate{AssetID: "missing", Value: dec(1)}, MustParse("2024-01-01")); !errors.Is(err, ErrNotFound) {
		t.Errorf("RecordValue on unknown id = %v, want ErrNotFound", err)
	}
}

func TestRecordValuesBulkPartialApplication(t *testing.T) {
	b := testBook()
	a1, _ := b.AddAsset(AssetSpec{Name: "A", Type: Stock, InitialValue: dec(100), Date: MustParse("2024-01-01")})
	a2, _ := b.AddAsset(AssetSpec{Name: "B", Type: Crypto, InitialValue: dec(200), Date: MustParse("2024-01-01")})

	updates := []ValueUpdate{
		{AssetID: a1.ID, Value: dec(110)},
		{AssetID: "nope", Value: dec(999)},
		{AssetID: a2.ID, Value: dec(220)},
	}
	applied, err := b.RecordValues(updates, MustParse("2024-03-01"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("bulk error = %v, want a joined ErrNotFound", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied %d updates, want 2", len(applied))
	}
	if !a1.CurrentValue.Equal(dec(110)) || !a2.CurrentValue.Equal(dec(220)) {
		t.Errorf("valid entries not applied: %v, %v", a1.CurrentValue, a2.CurrentValue)
	}
}

func TestRetireAsset(t *testing.T) {
	b := testBook()
	a, _ := b.AddAsset(AssetSpec{Name: "Old car", Type: Car, InitialValue: dec(5000), Date: MustParse("2024-01-01")})
	before := a.History.Len()

	if _, err := b.RetireAsset(a.ID, MustParse("2024-03-01")); err != nil {
		t.Fatalf("RetireAsset: %v", err)
	}
	if a.DeletedAt != MustParse("2024-03-01") {
		t.Errorf("DeletedAt = %v, want 2024-03-01", a.DeletedAt)
	}
	if a.History.Len() != before {
		t.Error("retirement must not touch history")
	}
	if _, err := b.RetireAsset("missing", MustParse("2024-03-01")); !errors.Is(err, ErrNotFound) {
		t.Errorf("RetireAsset on unknown id = %v, want ErrNotFound", err)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	b := testBook()
	tx, err := b.AddTransaction(MustParse("2024-02-10"), Expense, "food", dec(12000), "lunch")
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.ID == "" {
		t.Error("AddTransaction must assign an id")
	}

	if _, err := b.UpdateTransaction(tx.ID, MustParse("2024-02-11"), Expense, "leisure", dec(15000), "cinema"); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	got, _ := b.Transaction(tx.ID)
	if got.Category != "leisure" || !got.Amount.Equal(dec(15000)) || got.Date != MustParse("2024-02-11") {
		t.Errorf("UpdateTransaction did not replace fields: %+v", got)
	}

	if err := b.DeleteTransaction(tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if err := b.DeleteTransaction(tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting twice = %v, want ErrNotFound", err)
	}
}

func TestTransactionsStayChronological(t *testing.T) {
	b := testBook()
	b.AddTransaction(MustParse("2024-03-01"), Expense, "food", dec(1), "")
	b.AddTransaction(MustParse("2024-01-01"), Income, "salary", dec(2), "")
	b.AddTransaction(MustParse("2024-02-01"), Expense, "transport", dec(3), "")
	for i := 1; i < len(b.Transactions); i++ {
		if b.Transactions[i].Date.Before(b.Transactions[i-1].Date) {
			t.Fatalf("transactions out of order at %d: %v", i, b.Transactions[i].Date)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if v, err := ParseAmount("1234.56"); err != nil || !v.Equal(dec(1234.56)) {
		t.Errorf("ParseAmount(1234.56) = %v, %v", v, err)
	}
	for _, bad := range []string{"", "abc", "12,000"} {
		if _, err := ParseAmount(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseAmount(%q) = %v, want ErrInvalidInput", bad, err)
		}
	}
}

func TestSaveInsightCapsHistory(t *testing.T) {
	b := testBook()
	for i := 0; i < maxInsights+10; i++ {
		b.SaveInsight(&Insight{Analysis: "report"})
	}
	if len(b.Insights) != maxInsights {
		t.Errorf("insights retained = %d, want %d", len(b.Insights), maxInsights)
	}
	if b.Insights[0].ID == "" {
		t.Error("SaveInsight must assign an id when missing")
	}
}
