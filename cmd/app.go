// Package cmd implements the CLI application to report on an investment
// ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/taxfolio"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&txCmd{}, "ledger")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&disposalsCmd{}, "reports")

	c.Register(&updateCmd{}, "market data")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file (JSONL format)")
var ratesFile = flag.String("rates-file", "rates.jsonl", "Path to the exchange rates file (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the market prices file (JSONL format)")
var homeCurrency = flag.String("currency", "EUR", "Home currency all values are reported in")
var pooledAssets = flag.String("pool", "", "Comma separated asset symbols pooled for disposal gains (default: the built-in crypto group)")

// loadLedger decodes the ledger from the app ledger file.
func loadLedger() (*taxfolio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return taxfolio.DecodeLedger(f)
}

// loadRates decodes the rate table from the app rates file, or returns an
// empty table when the file does not exist.
func loadRates() (*taxfolio.RateTable, error) {
	f, err := os.Open(*ratesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return taxfolio.NewRateTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()
	return taxfolio.DecodeRates(f)
}

// loadPrices decodes the price table from the app prices file, or returns an
// empty table when the file does not exist.
func loadPrices() (*taxfolio.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return taxfolio.NewPriceTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open prices file %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return taxfolio.DecodePrices(f)
}

// loadValuator assembles the valuator from the app market data files.
func loadValuator() (*taxfolio.Valuator, error) {
	rates, err := loadRates()
	if err != nil {
		return nil, err
	}
	prices, err := loadPrices()
	if err != nil {
		return nil, err
	}
	return &taxfolio.Valuator{
		Market:  prices,
		Fx:      rates,
		Symbols: taxfolio.DefaultSymbols(),
		Home:    *homeCurrency,
	}, nil
}

// pooledGroup returns the pooled group from the -pool flag, or the built-in
// crypto group.
func pooledGroup() taxfolio.PooledGroup {
	if *pooledAssets == "" {
		return taxfolio.DefaultPooledGroup()
	}
	var symbols []string
	for _, s := range strings.Split(*pooledAssets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return taxfolio.NewPooledGroup(symbols...)
}
