package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

type addTxCmd struct {
	typ      string
	category string
	amount   string
	desc     string
	date     string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record a cash movement" }
func (*addTxCmd) Usage() string {
	return `mbk add-tx -type <income|expense> -category <category> -amount <amount> [-desc <text>] [-d <date>]

  Records a cash movement. Standard categories are ` + strings.Join(moneybook.StandardCategories(), ", ") + `,
  but any label is accepted.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "expense", "Transaction type: income or expense")
	f.StringVar(&c.category, "category", "other", "Transaction category")
	f.StringVar(&c.amount, "amount", "", "Amount (required)")
	f.StringVar(&c.desc, "desc", "", "Free-form description")
	f.StringVar(&c.date, "d", "", "Transaction date. Defaults to today.")
}

func (c *addTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := moneybook.ParseTransactionType(c.typ)
	if err != nil {
		errorf("parsing -type: %v", err)
		return subcommands.ExitUsageError
	}
	amount, err := moneybook.ParseAmount(c.amount)
	if err != nil {
		errorf("parsing -amount: %v", err)
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
	tx, err := b.AddTransaction(on, typ, c.category, amount, c.desc)
	if err != nil {
		errorf("adding transaction: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Recorded %s of %s on %s (id %s)\n", tx.Type, moneybook.KRW(tx.Amount), tx.Date, tx.ID)
	return subcommands.ExitSuccess
}
