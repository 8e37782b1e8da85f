// Package main runs one around client command.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	aroundcmd "github.com/5hraddha/around/internal/cmd/around"
	"github.com/5hraddha/around/internal/platform/config"
)

func main() {
	cfg, err := aroundcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := aroundcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("around %s: %v", cfg.Command, err)
	}
}
