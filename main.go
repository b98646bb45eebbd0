package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisns/govreposcrape-sub006/pkg/cmd"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := cmd.InitCommand(cmd.BuildInfo{
		Version: version,
		AppName: "govreposcrape",
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
