package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"regrep/pkg/log"
)

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "print recent entries from the service log database",
	UsageText: "regrep logs [options]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "dbfile",
			Aliases:  []string{"f"},
			Usage:    "SQLite log database `PATH` (as configured for serve)",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of entries to print `NUMBER`",
			Value:   100,
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "print level/time/message columns instead of raw JSON",
		},
	},
	Action: logsAction,
}

func logsAction(c *cli.Context) error {
	if err := log.Init(c.String("dbfile")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer log.Close()

	entries, err := log.GetLastNLogs(c.Int("count"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	for _, entry := range entries {
		if !c.Bool("pretty") {
			fmt.Println(entry.LogData)
			continue
		}
		var fields struct {
			Level   string `json:"level"`
			Time    string `json:"time"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(entry.LogData), &fields); err != nil {
			fmt.Println(entry.LogData)
			continue
		}
		fmt.Printf("%-5s %s %s\n", fields.Level, fields.Time, fields.Message)
	}
	return nil
}
