package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// API process entrypoint.
// Data flow:
// 1) Load config (.env, environment, flags).
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server until SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
