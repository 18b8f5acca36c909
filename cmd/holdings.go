package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxfolio/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	asset string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "positions with realized gains and fees" }
func (*holdingsCmd) Usage() string {
	return `tfx holdings [-asset <symbol>]

  Displays the held quantity, realized gains, and fees of every position,
  optionally restricted to a single asset.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Only display this asset")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.asset != "" {
		ledger = ledger.ByAsset(c.asset)
	}
	printMarkdown(renderer.Holdings(ledger))
	return subcommands.ExitSuccess
}
