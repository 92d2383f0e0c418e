package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

type updateValueCmd struct {
	id       string
	value    string
	unit     string
	quantity string
	date     string
}

func (*updateValueCmd) Name() string     { return "update-value" }
func (*updateValueCmd) Synopsis() string { return "record a newly observed value for an asset" }
func (*updateValueCmd) Usage() string {
	return `mbk update-value -id <asset> -value <amount> [-d <date>] [-unit-price <amount>] [-quantity <n>]

  Records a value observation in the asset's history. Recording twice on
  the same day overwrites that day's snapshot: the last call wins.
`
}

func (c *updateValueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (required), see 'mbk summary'")
	f.StringVar(&c.value, "value", "", "Observed value (required)")
	f.StringVar(&c.unit, "unit-price", "", "Unit price, for market assets")
	f.StringVar(&c.quantity, "quantity", "", "Number of units held, for market assets")
	f.StringVar(&c.date, "d", "", "Observation date. Defaults to today.")
}

func (c *updateValueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	value, err := moneybook.ParseAmount(c.value)
	if err != nil {
		errorf("parsing -value: %v", err)
		return subcommands.ExitUsageError
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		errorf("parsing date: %v", err)
		return subcommands.ExitUsageError
	}

	u := moneybook.ValueUpdate{AssetID: c.id, Value: value}
	if c.unit != "" {
		if u.UnitPrice, err = moneybook.ParseAmount(c.unit); err != nil {
			errorf("parsing -unit-price: %v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.quantity != "" {
		if u.Quantity, err = moneybook.ParseAmount(c.quantity); err != nil {
			errorf("parsing -quantity: %v", err)
			return subcommands.ExitUsageError
		}
	}

	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	a, err := b.RecordValue(u, on)
	if err != nil {
		errorf("recording value: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ %q is worth %s as of %s\n", a.Name, moneybook.KRW(a.CurrentValue), on)
	return subcommands.ExitSuccess
}
