package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pluqqy/promptcat/cmd/commands"
	"github.com/pluqqy/promptcat/internal/cli"
)

// Version is set during build with -ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		cli.PrintError("%s", cli.ErrorText(err))
		stop()
		os.Exit(1)
	}
}
