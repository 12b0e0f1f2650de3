package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AmmannChristian/go-gcpauth/cmd/gcpauth/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.NewCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
