package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
	"github.com/minlog/moneybook/renderer"
)

type historyCmd struct {
	id     string
	from   string
	to     string
	period string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the net worth trajectory, or one asset's history" }
func (*historyCmd) Usage() string {
	return `mbk history [-id <asset>] [-from <date>] [-to <date>] [-period <daily|monthly|yearly>]

  Reconstructs net worth at each period's close over a date range.
  Defaults to the current year, month by month. With -id, lists one
  asset's recorded value snapshots instead.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset whose snapshots to list, instead of the net worth")
	f.StringVar(&c.from, "from", "", "Start of the range. Defaults to the start of the year.")
	f.StringVar(&c.to, "to", "", "End of the range. Defaults to today.")
	f.StringVar(&c.period, "period", "monthly", "Granularity: daily, monthly or yearly")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id != "" {
		b, err := DecodeBook()
		if err != nil {
			errorf("loading book: %v", err)
			return subcommands.ExitFailure
		}
		a, err := b.Asset(c.id)
		if err != nil {
			errorf("%v", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RenderHistory(renderer.NewAssetHistory(a)))
		return subcommands.ExitSuccess
	}
	period, err := moneybook.ParsePeriod(c.period)
	if err != nil {
		errorf("parsing -period: %v", err)
		return subcommands.ExitUsageError
	}
	from := moneybook.Today().StartOf(moneybook.Yearly)
	if c.from != "" {
		if from, err = moneybook.ParseDate(c.from); err != nil {
			errorf("parsing -from: %v", err)
			return subcommands.ExitUsageError
		}
	}
	to := moneybook.Today()
	if c.to != "" {
		if to, err = moneybook.ParseDate(c.to); err != nil {
			errorf("parsing -to: %v", err)
			return subcommands.ExitUsageError
		}
	}

	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	h := renderer.NewHistory(b.Assets, moneybook.NewRange(from, to), period)
	printMarkdown(renderer.RenderHistory(h))
	return subcommands.ExitSuccess
}
