package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type retireAssetCmd struct {
	id   string
	date string
}

func (*retireAssetCmd) Name() string     { return "retire-asset" }
func (*retireAssetCmd) Synopsis() string { return "logically delete an asset" }
func (*retireAssetCmd) Usage() string {
	return `mbk retire-asset -id <asset> [-d <date>]

  Marks an asset as deleted from the given day on. Its history is kept:
  valuations before the deletion date still include it, valuations on or
  after it do not.
`
}

func (c *retireAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (required)")
	f.StringVar(&c.date, "d", "", "Deletion date. Defaults to today.")
}

func (c *retireAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	a, err := b.RetireAsset(c.id, on)
	if err != nil {
		errorf("retiring asset: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Retired %q as of %s\n", a.Name, on)
	return subcommands.ExitSuccess
}
