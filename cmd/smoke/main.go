// Command smoke sweeps a running testgen instance across testing frameworks and prints
// a pass/fail matrix for the summaries and code generation endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	logger, err := glog.NewConsoleWithName("testgen-smoke", glog.LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %+v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("smoke sweep failed", zap.Error(err))
		os.Exit(1)
	}
}
