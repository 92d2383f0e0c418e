package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite the book file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mbk fmt

  Validates the book file and rewrites it in canonical JSONL form:
  transactions in chronological order, then assets, then insights, each
  record with a stable field order. Useful after hand edits.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(b); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Formatted book %q\n", b.Name())
	return subcommands.ExitSuccess
}
