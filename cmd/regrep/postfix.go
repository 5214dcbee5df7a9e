package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"regrep/pkg/rx"
)

var postfixCommand = &cli.Command{
	Name:      "postfix",
	Usage:     "print the postfix form of a pattern (concatenation shown as '.')",
	UsageText: "regrep postfix <pattern>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 1 {
			return cli.Exit("usage: regrep postfix <pattern>", 2)
		}
		postfix, err := rx.Transform(c.Args().First())
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		var b strings.Builder
		for _, s := range postfix {
			b.WriteString(s.String())
		}
		fmt.Println(b.String())
		return nil
	},
}
