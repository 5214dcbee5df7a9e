package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"regrep/pkg/grep"
	"regrep/pkg/log"
)

var searchFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "ignore-case",
		Aliases: []string{"i"},
		Usage:   "match case-insensitively",
	},
	&cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of matcher goroutines `N` (0 uses the configured default)",
	},
	&cli.BoolFlag{
		Name:    "count",
		Aliases: []string{"c"},
		Usage:   "print only the number of matching lines",
	},
}

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "print lines of a file that contain a match for the pattern",
	UsageText: "regrep search [options] <pattern> <file>",
	Flags:     searchFlags,
	Action:    searchAction,
}

func searchAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return cli.Exit("usage: regrep [options] <pattern> <file>", 2)
	}
	pattern, file := c.Args().Get(0), c.Args().Get(1)

	cfg, err := grep.LoadConfig()
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading config: %v", err), 1)
	}
	if c.Bool("ignore-case") {
		cfg.IgnoreCase = true
	}
	if w := c.Int("workers"); w > 0 {
		cfg.Workers = w
	}
	log.SetLevel(cfg.LogLevel)

	// Compile before touching the file: a bad pattern must fail without
	// reading any input.
	engine, err := grep.Compile(pattern, cfg.IgnoreCase)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log.Debug().Str("pattern", pattern).Int("dfa_states", engine.DFA().Len()).Msg("pattern compiled")

	var out io.Writer = os.Stdout
	if c.Bool("count") {
		out = io.Discard
	}
	matched, err := engine.FilterFile(c.Context, file, out, cfg.Workers)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.Bool("count") {
		fmt.Println(matched)
	}
	return nil
}
