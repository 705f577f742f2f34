// Package main is the entry point for the chapterlint CLI application.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eykd/chapterlint/cmd"
)

func main() {
	// Cancel on SIGINT so a scaffold run stops between files.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.Main(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
