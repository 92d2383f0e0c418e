package cmd

import (
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

// run executes a command against a book directory with the given argv.
func run(t *testing.T, dir string, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	*bookDir = dir
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing args %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestAddTxRoundTrip(t *testing.T) {
	dir := t.TempDir()

	status := run(t, dir, &addTxCmd{},
		"-type", "income", "-category", "salary", "-amount", "3000000", "-d", "2024-01-05")
	if status != subcommands.ExitSuccess {
		t.Fatalf("add-tx exited with %v", status)
	}

	b, err := moneybook.FindBook(dir, "")
	if err != nil {
		t.Fatalf("FindBook: %v", err)
	}
	if len(b.Transactions) != 1 {
		t.Fatalf("book holds %d transactions, want 1", len(b.Transactions))
	}
	tx := b.Transactions[0]
	if tx.Type != moneybook.Income || tx.Category != "salary" || tx.Date != moneybook.MustParse("2024-01-05") {
		t.Errorf("persisted transaction = %+v", tx)
	}
}

func TestAddAssetRejectsBadType(t *testing.T) {
	status := run(t, t.TempDir(), &addAssetCmd{},
		"-name", "x", "-type", "castle", "-value", "100")
	if status != subcommands.ExitUsageError {
		t.Errorf("add-asset with a bad type exited with %v, want usage error", status)
	}
}

func TestAddAssetAndRetire(t *testing.T) {
	dir := t.TempDir()

	if got := run(t, dir, &addAssetCmd{},
		"-name", "deposit", "-type", "savings", "-value", "5000000", "-d", "2024-01-01"); got != subcommands.ExitSuccess {
		t.Fatalf("add-asset exited with %v", got)
	}
	b, err := moneybook.FindBook(dir, "")
	if err != nil {
		t.Fatalf("FindBook: %v", err)
	}
	if len(b.Assets) != 1 {
		t.Fatalf("book holds %d assets, want 1", len(b.Assets))
	}
	id := b.Assets[0].ID

	if got := run(t, dir, &retireAssetCmd{}, "-id", id, "-d", "2024-06-01"); got != subcommands.ExitSuccess {
		t.Fatalf("retire-asset exited with %v", got)
	}
	b, err = moneybook.FindBook(dir, "")
	if err != nil {
		t.Fatalf("FindBook: %v", err)
	}
	a, err := b.Asset(id)
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	if !a.Retired() || a.DeletedAt != moneybook.MustParse("2024-06-01") {
		t.Errorf("asset was not retired: %+v", a)
	}
}

func TestParseRangeFlags(t *testing.T) {
	r, status := parseRangeFlags("2024-01-01", "2024-03-31", "")
	if status != subcommands.ExitSuccess {
		t.Fatalf("explicit range exited with %v", status)
	}
	want := moneybook.NewRange(moneybook.MustParse("2024-01-01"), moneybook.MustParse("2024-03-31"))
	if r != want {
		t.Errorf("range = %v, want %v", r, want)
	}

	if _, status := parseRangeFlags("2024-01-01", "", "monthly"); status != subcommands.ExitUsageError {
		t.Error("-from without -to must be a usage error")
	}
	if _, status := parseRangeFlags("", "", "fortnightly"); status != subcommands.ExitUsageError {
		t.Error("an unknown period must be a usage error")
	}

	r, status = parseRangeFlags("", "", "monthly")
	if status != subcommands.ExitSuccess {
		t.Fatalf("period fallback exited with %v", status)
	}
	if !r.Contains(moneybook.Today()) {
		t.Error("the period fallback must contain today")
	}
}
