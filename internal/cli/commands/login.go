package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the session token" }
func (loginCmd) Usage() string       { return "login <username> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var data struct {
		SessionID string `json:"session_id"`
	}
	err := api.NewClient(cfg.ServerURL, "").Call(ctx, http.MethodPost, "/api/user/login",
		credentials{Username: args[0], Password: args[1]}, &data)
	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("invalid username or password")
	}
	if err != nil {
		return err
	}
	if data.SessionID == "" {
		return errors.New("server returned no session")
	}

	store := sessionStore(cfg)
	if err := store.Save(data.SessionID); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := store.SaveLogin(args[0]); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
