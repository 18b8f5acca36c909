package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/taxfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	// shell completion, a no-op outside of a completion request.
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"import":    {},
			"tx":        {},
			"holdings":  {},
			"gains":     {},
			"disposals": {},
			"update":    {},
		},
	}
	completer.Complete("tfx")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
