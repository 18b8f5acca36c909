package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxfolio/renderer"
	"github.com/google/subcommands"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	asset string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the ledger transactions" }
func (*txCmd) Usage() string {
	return `tfx tx [-asset <symbol>]

  Lists the ledger transactions in chronological order, optionally
  restricted to a single asset.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Only list transactions of this asset")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.asset != "" {
		ledger = ledger.ByAsset(c.asset)
	}
	printMarkdown(renderer.Transactions(ledger))
	return subcommands.ExitSuccess
}
