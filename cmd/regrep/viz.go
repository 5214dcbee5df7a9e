package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"regrep/pkg/automata"
	"regrep/pkg/rx"
)

var vizCommand = &cli.Command{
	Name:      "viz",
	Usage:     "render the automaton compiled from a pattern with graphviz",
	UsageText: "regrep viz [options] <pattern>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "stage",
			Aliases: []string{"s"},
			Usage:   "which automaton to render: `nfa` or `dfa`",
			Value:   "dfa",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: `dot`, `png` or `svg`",
			Value:   "dot",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write to `FILE` instead of stdout",
		},
	},
	Action: vizAction,
}

func vizAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: regrep viz [options] <pattern>", 2)
	}
	postfix, err := rx.Transform(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	nfa, err := automata.BuildNFA(postfix)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var dot string
	switch c.String("stage") {
	case "nfa":
		dot = nfa.Dot()
	case "dfa":
		dot = automata.BuildDFA(nfa).Dot()
	default:
		return cli.Exit(fmt.Sprintf("unknown stage %q (want nfa or dfa)", c.String("stage")), 2)
	}

	data, err := automata.RenderDot(c.Context, dot, c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if out := c.String("output"); out != "" {
		if err := os.WriteFile(out, data, 0644); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
