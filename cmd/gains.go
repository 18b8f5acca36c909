package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxfolio/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	asset string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gain analysis per position" }
func (*gainsCmd) Usage() string {
	return `tfx gains [-asset <symbol>]

  Calculates and displays the realized gains of every position, optionally
  restricted to a single asset.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Only display this asset")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.asset != "" {
		ledger = ledger.ByAsset(c.asset)
	}
	printMarkdown(renderer.Gains(ledger))
	return subcommands.ExitSuccess
}
