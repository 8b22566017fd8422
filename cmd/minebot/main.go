package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doeshing/minebot/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	root, container, err := cli.NewRootCmd(ctx, cli.Options{Verbose: isVerbose()})
	if err != nil {
		return err
	}
	defer container.Close()
	return root.ExecuteContext(ctx)
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("MINEBOT_DEBUG"), "1") || strings.EqualFold(os.Getenv("MINEBOT_DEBUG"), "true")
}
