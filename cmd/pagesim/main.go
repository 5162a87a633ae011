// Package main provides a CLI for simulating page replacement algorithms.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sibexico/PageSim/internal/cmd/pagesim"
)

func main() {
	cfg, err := pagesim.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pagesim.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		exitf("Error: %v", err)
	}
}

// exitf writes a formatted error message to stderr and exits with code 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
