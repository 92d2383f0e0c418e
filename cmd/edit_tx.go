package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

type editTxCmd struct {
	id       string
	typ      string
	category string
	amount   string
	desc     string
	date     string
}

func (*editTxCmd) Name() string     { return "edit-tx" }
func (*editTxCmd) Synopsis() string { return "replace the fields of a transaction" }
func (*editTxCmd) Usage() string {
	return `mbk edit-tx -id <tx> [-type <income|expense>] [-category <category>] [-amount <amount>] [-desc <text>] [-d <date>]

  Replaces the fields of an existing transaction, keeping its id. Flags
  left unset keep the transaction's current value.
`
}

func (c *editTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id (required), see 'mbk tx'")
	f.StringVar(&c.typ, "type", "", "New transaction type")
	f.StringVar(&c.category, "category", "", "New category")
	f.StringVar(&c.amount, "amount", "", "New amount")
	f.StringVar(&c.desc, "desc", "", "New description")
	f.StringVar(&c.date, "d", "", "New transaction date")
}

func (c *editTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	tx, err := b.Transaction(c.id)
	if err != nil {
		errorf("%v", err)
		return subcommands.ExitFailure
	}

	// Unset flags keep the current field values.
	on, typ, category, amount, desc := tx.Date, tx.Type, tx.Category, tx.Amount, tx.Description
	if c.date != "" {
		if on, err = moneybook.ParseDate(c.date); err != nil {
			errorf("parsing date: %v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.typ != "" {
		if typ, err = moneybook.ParseTransactionType(c.typ); err != nil {
			errorf("parsing -type: %v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.category != "" {
		category = c.category
	}
	if c.amount != "" {
		if amount, err = moneybook.ParseAmount(c.amount); err != nil {
			errorf("parsing -amount: %v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.desc != "" {
		desc = c.desc
	}

	tx, err = b.UpdateTransaction(c.id, on, typ, category, amount, desc)
	if err != nil {
		errorf("updating transaction: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Updated %s: %s %s of %s\n", tx.ID, tx.Date, tx.Type, moneybook.KRW(tx.Amount))
	return subcommands.ExitSuccess
}
