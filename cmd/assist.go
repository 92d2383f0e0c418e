package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
	"github.com/minlog/moneybook/advisor"
)

type assistCmd struct {
	date string
	save bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "generate a financial insight report" }
func (*assistCmd) Usage() string {
	return `mbk assist [-d <date>] [-save]

  Asks the Gemini API for an insight report on the book's aggregates:
  net worth, holdings, and the month's cashflow. The model never sees the
  raw records. With -save the report is stored in the book.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date for the report. Defaults to today.")
	f.BoolVar(&c.save, "save", false, "Store the report in the book")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	a, err := advisor.New(ctx)
	if err != nil {
		errorf("%v", err)
		return subcommands.ExitFailure
	}
	in, err := a.Generate(ctx, advisor.NewFacts(b, on))
	if err != nil {
		errorf("generating insight: %v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderInsight(in))

	if c.save {
		b.SaveInsight(in)
		if err := SaveBook(b); err != nil {
			errorf("saving book: %v", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func renderInsight(in *moneybook.Insight) string {
	md := "# Insight\n\n" + in.Analysis + "\n"
	if in.AssetAnalysis != "" {
		md += "\n## Assets\n\n" + in.AssetAnalysis + "\n"
	}
	if in.CategoryBreakdown != "" {
		md += "\n## Spending\n\n" + in.CategoryBreakdown + "\n"
	}
	if len(in.Suggestions) > 0 {
		md += "\n## Suggestions\n\n"
		for _, s := range in.Suggestions {
			md += "* " + s + "\n"
		}
	}
	if in.SavingGoalAdvice != "" {
		md += "\n## Saving Goal\n\n" + in.SavingGoalAdvice + "\n"
	}
	if in.Tips != "" {
		md += "\n## Tip\n\n" + in.Tips + "\n"
	}
	return md
}
