package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
	"github.com/minlog/moneybook/renderer"
)

type txCmd struct {
	from   string
	to     string
	period string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `mbk tx [-from <date> -to <date> | -period <daily|monthly|yearly>]

  Lists the transactions of a date range in chronological order, with
  their ids. Defaults to the current month.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the range, inclusive")
	f.StringVar(&c.to, "to", "", "End of the range, inclusive")
	f.StringVar(&c.period, "period", "monthly", "Period around today when -from/-to are not given")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, status := parseRangeFlags(c.from, c.to, c.period)
	if status != subcommands.ExitSuccess {
		return status
	}
	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderTransactionLog(renderer.NewTransactionLog(b.Transactions, r)))
	return subcommands.ExitSuccess
}

// parseRangeFlags resolves -from/-to with a -period fallback around today.
func parseRangeFlags(from, to, period string) (moneybook.Range, subcommands.ExitStatus) {
	if from == "" && to == "" {
		p, err := moneybook.ParsePeriod(period)
		if err != nil {
			errorf("parsing -period: %v", err)
			return moneybook.Range{}, subcommands.ExitUsageError
		}
		return p.Range(moneybook.Today()), subcommands.ExitSuccess
	}
	if from == "" || to == "" {
		errorf("-from and -to must be given together")
		return moneybook.Range{}, subcommands.ExitUsageError
	}
	f, err := moneybook.ParseDate(from)
	if err != nil {
		errorf("parsing -from: %v", err)
		return moneybook.Range{}, subcommands.ExitUsageError
	}
	t, err := moneybook.ParseDate(to)
	if err != nil {
		errorf("parsing -to: %v", err)
		return moneybook.Range{}, subcommands.ExitUsageError
	}
	return moneybook.NewRange(f, t), subcommands.ExitSuccess
}
