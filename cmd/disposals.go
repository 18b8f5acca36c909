package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxfolio"
	"github.com/etnz/taxfolio/renderer"
	"github.com/google/subcommands"
)

// disposalsCmd holds the flags for the 'disposals' subcommand.
type disposalsCmd struct {
	year int
}

func (*disposalsCmd) Name() string     { return "disposals" }
func (*disposalsCmd) Synopsis() string { return "tax-year disposal gains report" }
func (*disposalsCmd) Usage() string {
	return `tfx disposals -year <year>

  Computes the disposal gain of every sell transaction of the tax year,
  using pooled-cost proportional allocation for the pooled asset group and
  per-asset average cost otherwise, and displays the itemized report with
  the reduced total.
`
}

func (c *disposalsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", taxfolio.Today().Year(), "Tax year to report on")
}

func (c *disposalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	valuator, err := loadValuator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market data: %v\n", err)
		return subcommands.ExitFailure
	}

	calc := taxfolio.NewDisposalCalculator(valuator, pooledGroup())
	report, err := calc.Disposals(ledger, c.year)
	printMarkdown(renderer.Disposals(report))
	if err != nil {
		// the report is partial: the failed events are itemized in the
		// rendered output, exit with a failure status nonetheless.
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
