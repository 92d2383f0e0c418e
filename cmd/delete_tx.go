package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type deleteTxCmd struct {
	id string
}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "remove a transaction" }
func (*deleteTxCmd) Usage() string {
	return `mbk delete-tx -id <tx>

  Removes a transaction from the book. Unlike assets, transactions are
  deleted for good.
`
}

func (c *deleteTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id (required), see 'mbk tx'")
}

func (c *deleteTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	if err := b.DeleteTransaction(c.id); err != nil {
		errorf("deleting transaction: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Deleted transaction %s\n", c.id)
	return subcommands.ExitSuccess
}
