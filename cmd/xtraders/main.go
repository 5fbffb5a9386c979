// Command xtraders analyzes robot trading exports and keeps the daily
// results ledger.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/xtraders/tradelog/internal/cli"
	"github.com/xtraders/tradelog/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.NewLogger()
	if err := cli.Execute(logging.WithLogger(ctx, logger), logger); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
