package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "regrep",
		Usage:   "compile a regular expression into a DFA and filter lines of text with it",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Commands: []*cli.Command{
			searchCommand,
			postfixCommand,
			vizCommand,
			serveCommand,
			logsCommand,
		},
		// Bare "regrep <pattern> <file>" behaves like the search subcommand.
		Action: searchAction,
		Flags:  searchFlags,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
