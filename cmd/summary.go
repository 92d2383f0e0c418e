package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
	"github.com/minlog/moneybook/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display net worth at a date" }
func (*summaryCmd) Usage() string {
	return `mbk summary [-d <date>]

  Displays the net worth at a date: every active asset and liability with
  its value on that day, grouped by type, and the totals. For past dates
  each asset is valued with its most recent snapshot on or before the day.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the summary. Defaults to today.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateFlag(c.date)
	if err != nil {
		errorf("parsing date: %v", err)
		return subcommands.ExitUsageError
	}
	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	v := moneybook.SnapshotAt(b.Assets, on, on.IsToday())
	printMarkdown(renderer.RenderNetWorth(renderer.NewNetWorth(b.Name(), v)))
	return subcommands.ExitSuccess
}
