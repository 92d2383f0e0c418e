package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/minlog/moneybook"
)

const (
	syncServerEnv = "MONEYBOOK_SYNC_SERVER"
	syncUserEnv   = "MONEYBOOK_SYNC_USER"
)

type syncCmd struct {
	server string
	user   string
	push   bool
	pull   bool
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "push or pull the book to a sync server" }
func (*syncCmd) Usage() string {
	return `mbk sync [-server <url>] [-user <id>] -push|-pull

  Mirrors the book against a sync server. The protocol is whole-collection
  replace: there is no merge, the chosen direction decides which side wins.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", os.Getenv(syncServerEnv), "Sync server base URL. Defaults to $"+syncServerEnv+".")
	f.StringVar(&c.user, "user", os.Getenv(syncUserEnv), "User id on the sync server. Defaults to $"+syncUserEnv+".")
	f.BoolVar(&c.push, "push", false, "Upload the local book, replacing the server's copy")
	f.BoolVar(&c.pull, "pull", false, "Download the server's book, replacing the local file")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.push == c.pull {
		errorf("exactly one of -push or -pull is required")
		return subcommands.ExitUsageError
	}
	if c.server == "" || c.user == "" {
		errorf("no sync server configured, set -server and -user or $%s and $%s", syncServerEnv, syncUserEnv)
		return subcommands.ExitUsageError
	}
	client := moneybook.NewSyncClient(c.server, c.user)

	if c.push {
		b, err := DecodeBook()
		if err != nil {
			errorf("loading book: %v", err)
			return subcommands.ExitFailure
		}
		if err := client.Push(ctx, b); err != nil {
			errorf("pushing book: %v", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("✅ Pushed book %q to %s\n", b.Name(), c.server)
		return subcommands.ExitSuccess
	}

	remote, err := client.Fetch(ctx)
	if err != nil {
		errorf("fetching book: %v", err)
		return subcommands.ExitFailure
	}
	// The local book only lends its name to the downloaded one.
	local, err := DecodeBook()
	if err != nil {
		errorf("loading book: %v", err)
		return subcommands.ExitFailure
	}
	remote.SetName(local.Name())
	if err := SaveBook(remote); err != nil {
		errorf("saving book: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Pulled book %q from %s\n", remote.Name(), c.server)
	return subcommands.ExitSuccess
}
