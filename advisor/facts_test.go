package advisor

import (
	"strings"
	"testing"

	"github.com/minlog/moneybook"
	"github.com/shopspring/decimal"
)

func TestFactsPrompt(t *testing.T) {
	b := moneybook.NewBook()
	on := moneybook.MustParse("2024-01-01")
	if _, err := b.AddAsset(moneybook.AssetSpec{Name: "deposit", Type: moneybook.Savings, InitialValue: decimal.NewFromInt(5000000), Date: on}); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if _, err := b.AddAsset(moneybook.AssetSpec{Name: "mortgage", Type: moneybook.Loan, InitialValue: decimal.NewFromInt(2000000), Date: on}); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if _, err := b.AddTransaction(moneybook.MustParse("2024-01-05"), moneybook.Income, "salary", decimal.NewFromInt(3000000), ""); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := b.AddTransaction(moneybook.MustParse("2024-01-10"), moneybook.Expense, "food", decimal.NewFromInt(400000), ""); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := b.AddTransaction(moneybook.MustParse("2024-01-12"), moneybook.Expense, "transport", decimal.NewFromInt(100000), ""); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	prompt := NewFacts(b, moneybook.MustParse("2024-01-31")).Prompt()

	// The model must get the aggregates, not the raw records.
	for _, want := range []string{
		"as of 2024-01-31",
		"Net worth: ₩3,000,000",
		"Total assets: ₩5,000,000",
		"Total liabilities: ₩2,000,000",
		"- deposit (savings): ₩5,000,000",
		"- mortgage (loan, liability): ₩2,000,000",
		"This month (2024-01-01 to 2024-01-31)",
		"- income: ₩3,000,000",
		"- expense: ₩500,000",
		"- balance: +₩2,500,000",
		"- spent on food: ₩400,000",
		"- spent on transport: ₩100,000",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q:\n%s", want, prompt)
		}
	}

	// Category lines come largest first.
	if strings.Index(prompt, "spent on food") > strings.Index(prompt, "spent on transport") {
		t.Error("categories must be listed largest first")
	}
}
