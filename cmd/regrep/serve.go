package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"regrep/pkg/grep"
	"regrep/pkg/log"
	"regrep/pkg/server"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "run the HTTP match service",
	UsageText: "regrep serve [options]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "listen address `ADDR` (overrides configuration)",
		},
	},
	Action: serveAction,
}

func serveAction(c *cli.Context) error {
	cfg, err := grep.LoadConfig()
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading config: %v", err), 1)
	}
	if addr := c.String("listen"); addr != "" {
		cfg.ListenAddress = addr
	}
	log.SetLevel(cfg.LogLevel)

	if cfg.LogDB != "" {
		if err := log.Init(cfg.LogDB); err != nil {
			return cli.Exit(fmt.Sprintf("initializing log database: %v", err), 1)
		}
		defer log.Close()
	}

	srv := server.New(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
