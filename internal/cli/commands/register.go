package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/config"
)

// credentials — тело запросов register и login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create a new account" }
func (registerCmd) Usage() string       { return "register <username> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	err := api.NewClient(cfg.ServerURL, "").Call(ctx, http.MethodPost, "/api/user/register",
		credentials{Username: args[0], Password: args[1]}, &user)
	var se *api.StatusError
	if errors.As(err, &se) && se.Code == http.StatusConflict {
		return errors.New("username already taken")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s (id %d). Run login to start a session.\n", user.Username, user.ID)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
