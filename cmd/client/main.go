package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"NoteKeeper/internal/cli/commands"
	"NoteKeeper/internal/config"
)

// Заполняются при сборке: -ldflags "-X main.version=… -X main.buildDate=…"
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// file, env and global flags; everything after the flags is the command line
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Fprintf(commands.Out, "NoteKeeper CLI %s (built %s)\nServer:     %s\nToken file: %s\n",
			version, buildDate, cfg.ServerURL, cfg.TokenFile)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	stop()
	os.Exit(code)
}
