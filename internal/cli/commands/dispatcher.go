package commands

import (
	"NoteKeeper/internal/cli/api"
	fsrepo "NoteKeeper/internal/cli/repo/fs"
	"NoteKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
)

// Exit codes returned by Dispatch.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Dispatch is the single entry point to execute CLI commands.
// args are the positional arguments left after global flags were parsed.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	switch name {
	case "help", "-h", "--help": // nkcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n  %s\n", c.Usage(), c.Description())
			return ExitOK
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	case errors.Is(err, fsrepo.ErrNoSession), errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintf(Out, "%s error: %v\nHint: nkcli login <username> <password>\n", name, err)
		return ExitError
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(Out, "%s error: no answer from %s within %s\n", name, cfg.ServerURL, cfg.RequestTimeout)
		return ExitError
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return ExitError
	}
}
