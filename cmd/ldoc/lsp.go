package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ldoc-format/ldoc/lsp"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func serveLSP(cfg *LSPConfig, cc *cli.Context, args []string) error {
	_, err := cfg.LSP.Parse(cc, args)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := newLog(os.Stderr, level)
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Error("gops agent failed", "error", err)
		}
		defer agent.Close()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = lsp.NewServer(log).Serve(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
