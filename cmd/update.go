package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/etnz/taxfolio"
	"github.com/google/subcommands"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	endpointsFile string
	path          string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch today's closing prices into the prices file" }
func (*updateCmd) Usage() string {
	return `tfx update -e <endpoints.json> [-p <jsonpath>]

  Fetches today's closing price of each ticker from its JSON endpoint and
  records it in the prices file. The endpoints file maps tickers to URLs;
  the jsonpath expression extracts the close from the response.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.endpointsFile, "e", "endpoints.json", "File mapping tickers to their price endpoint URL")
	f.StringVar(&c.path, "p", "", "jsonpath expression extracting the close (default: intraday chart layout)")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	raw, err := os.ReadFile(c.endpointsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading endpoints file %q: %v\n", c.endpointsFile, err)
		return subcommands.ExitFailure
	}
	var endpoints map[string]string
	if err := json.Unmarshal(raw, &endpoints); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing endpoints file %q: %v\n", c.endpointsFile, err)
		return subcommands.ExitFailure
	}

	prices, err := loadPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	fetchErr := prices.Fetch(new(http.Client), endpoints, c.path)
	if fetchErr != nil {
		// some tickers failed, the others are still worth saving.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", fetchErr)
	}

	out, err := os.Create(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating prices file %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := taxfolio.EncodePrices(out, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing prices file %q: %v\n", *pricesFile, err)
		return subcommands.ExitFailure
	}

	if fetchErr != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
