// calc-repl is an interactive terminal calculator over the same operation
// library the HTTP API exposes.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"calculator-service/internal/repl"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := repl.New()
	if err := r.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("REPL failed: %v", err)
	}
}
