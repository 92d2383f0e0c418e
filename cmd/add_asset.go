package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

type addAssetCmd struct {
	name     string
	typ      string
	value    string
	purchase string
	date     string
	ticker   string
	quantity string
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "declare a new asset or liability" }
func (*addAssetCmd) Usage() string {
	return `mbk add-asset -name <name> -type <type> -value <amount> [-purchase <amount>] [-d <date>] [-ticker <ticker> -quantity <n>]

  Declares a new asset in the book:
  - name: a free label (e.g., "emergency fund").
  - type: one of ` + strings.Join(typeNames(), ", ") + `.
    The "loan" type is a liability and counts negatively toward net worth.
  - value: the asset's value today, seeding its value history.
  - purchase: the original acquisition cost, if different from the value.
  - ticker: links a stock or crypto asset to the price oracle for 'mbk refresh'.
`
}

func typeNames() []string {
	var names []string
	for _, t := range moneybook.AssetTypes() {
		names = append(names, t.String())
	}
	return names
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Asset name (required)")
	f.StringVar(&c.typ, "type", "", "Asset type (required)")
	f.StringVar(&c.value, "value", "", "Current value (required)")
	f.StringVar(&c.purchase, "purchase", "", "Purchase amount. Defaults to the current value.")
	f.StringVar(&c.date, "d", "", "Creation date. Defaults to today.")
	f.StringVar(&c.ticker, "ticker", "", "Market ticker, for stock and crypto assets only")
	f.StringVar(&c.quantity, "quantity", "", "Number of units held, for market assets")
}

func (c *addAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := moneybook.ParseAssetType(c.typ)
	if err != nil {
		errorf("%v, want one of %s", err, strings.Join(typeNames(), ", "))
		return subcommands.ExitUsageError
	}
	value, err := moneybook.ParseAmount(c.value)
	if err != nil {
		errorf("parsing -value: %v", err)
		return subcommands.ExitUsageError
	}
	purchase := value
	if c.purchase != "" {
		if purchase, err = moneybook.ParseAmount(c.purchase); err != nil {
			errorf("parsing -purchase: %v", err)
			return subcommands.ExitUsageError
		}
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		errorf("parsing date: %v", err)
		return subcommands.ExitUsageError
	}
	if c.ticker != "" && !typ.Market() {
		errorf("-ticker only applies to stock and crypto assets, not %s", typ)
		return subcommands.ExitUsageError
	}

	spec := moneybook.AssetSpec{
		Name:           c.name,
		Type:           typ,
		PurchaseAmount: purchase,
		InitialValue:   value,
		Date:           on,
		Ticker:         c.ticker,
	}
	if c.quantity != "" {
		if spec.Quantity, err = moneybook.ParseAmount(c.quantity); err != nil {
			errorf("parsing -quantity: %v", err)
			return subcommands.ExitUsageError
		}
	}

	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	a, err := b.AddAsset(spec)
	if err != nil {
		errorf("adding asset: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Added %s %q valued %s (id %s)\n", a.Type, a.Name, moneybook.KRW(a.CurrentValue), a.ID)
	return subcommands.ExitSuccess
}
