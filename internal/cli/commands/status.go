package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"NoteKeeper/internal/cli/api"
	fsrepo "NoteKeeper/internal/cli/repo/fs"
	"NoteKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show server health and session state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := api.NewClient(cfg.ServerURL, "").Call(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return fmt.Errorf("server %s: %w", cfg.ServerURL, err)
	}
	fmt.Fprintf(Out, "Server: %s (%s)\n", cfg.ServerURL, health.Status)

	login, _ := sessionStore(cfg).LoadLogin()
	err := call(ctx, cfg, http.MethodGet, "/api/stats", nil, nil)
	switch {
	case err == nil:
		fmt.Fprintf(Out, "Session: active (%s)\n", login)
	case errors.Is(err, fsrepo.ErrNoSession), errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(Out, "Session: none")
	default:
		return err
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
