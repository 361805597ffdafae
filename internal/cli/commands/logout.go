package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Close the session and forget the token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	err := call(ctx, cfg, http.MethodPost, "/api/user/logout", nil, nil)
	// сессия уже закрыта на сервере: локальный токен всё равно удаляем
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		return err
	}
	if cerr := sessionStore(cfg).Clear(); cerr != nil {
		return fmt.Errorf("removing token: %w", cerr)
	}
	if err != nil {
		fmt.Fprintln(Out, "Session had already expired; local token removed")
		return nil
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
