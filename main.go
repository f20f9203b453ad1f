// Package main is the entry point of the bloglist binary.
//
//	bloglist serve               run the HTTP API
//	bloglist stats --format yaml print the aggregates over stored blogs
//
// Configuration comes from the environment (see package config).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const name = "bloglist"

// overridden during build with ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Blog list API server",
		Version: version,
		Commands: []*cli.Command{
			serveCmd(),
			statsCmd(),
		},
	}
}
