package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxfolio"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	dir string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import broker CSV exports into the ledger file" }
func (*importCmd) Usage() string {
	return `tfx import [-d <folder>]

  Reads all *.CSV broker exports in the folder, keeps only executed-order
  rows, sorts them chronologically, and writes the ledger file in the
  canonical JSONL format.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "d", "exports", "Folder containing the broker CSV exports")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := taxfolio.ReadExportDir(c.dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading exports from %q: %v\n", c.dir, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := taxfolio.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d transactions into %s\n", ledger.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
