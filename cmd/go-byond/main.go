package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Embedded zone database so --tz works on hosts without one.
	_ "time/tzdata"

	"github.com/steviee/go-byond/internal/cli"
)

// Version information (set by ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	BuiltBy   = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(Version, Commit, BuildTime, BuiltBy).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
