package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
	"github.com/minlog/moneybook/renderer"
)

type monthlyCmd struct {
	year  int
	month string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display monthly cashflow" }
func (*monthlyCmd) Usage() string {
	return `mbk monthly [-year <year>] [-month <date>]

  Without -month, displays the month-by-month cashflow of a year. With
  -month, displays one month's income, expense and spending by category.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", moneybook.Today().Year(), "Year to report on")
	f.StringVar(&c.month, "month", "", "A date inside the month to detail")
}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}

	if c.month != "" {
		on, err := moneybook.ParseDate(c.month)
		if err != nil {
			errorf("parsing -month: %v", err)
			return subcommands.ExitUsageError
		}
		s := moneybook.Summarize(b.Transactions, moneybook.Monthly.Range(on))
		printMarkdown(renderer.RenderCashflow(renderer.NewCashflow(s)))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderMonthly(renderer.NewMonthly(b.Transactions, c.year)))
	return subcommands.ExitSuccess
}
