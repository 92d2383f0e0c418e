package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

const oracleEnv = "MONEYBOOK_ORACLE_SERVER"

type refreshCmd struct {
	server string
	date   string
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "refresh market assets from the price oracle" }
func (*refreshCmd) Usage() string {
	return `mbk refresh [-server <url>] [-d <date>]

  Looks up a quote for every stock or crypto asset carrying a ticker and
  records the refreshed values: value = price x quantity. One ticker's
  failure does not block the others.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", os.Getenv(oracleEnv), "Price oracle base URL. Defaults to $"+oracleEnv+".")
	f.StringVar(&c.date, "d", "", "Day to stamp the refreshed values with. Defaults to today.")
}

func (c *refreshCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.server == "" {
		errorf("no price oracle configured, set -server or $%s", oracleEnv)
		return subcommands.ExitUsageError
	}
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

	applied, err := b.RefreshQuotes(moneybook.NewOracle(c.server), on)
	if err != nil {
		errorf("refreshing quotes: %v", err)
	}
	if len(applied) == 0 {
		if err != nil {
			return subcommands.ExitFailure
		}
		fmt.Println("No market assets to refresh.")
		return subcommands.ExitSuccess
	}

	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	for _, a := range applied {
		fmt.Printf("✅ %q (%s) is worth %s\n", a.Name, a.Ticker, moneybook.KRW(a.CurrentValue))
	}
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
