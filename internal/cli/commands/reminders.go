package commands

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"NoteKeeper/internal/config"
)

type reminderView struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"`
}

type remindersCmd struct{}

func (remindersCmd) Name() string        { return "reminders" }
func (remindersCmd) Description() string { return "List reminders by time" }
func (remindersCmd) Usage() string       { return "reminders" }

func (remindersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var list []reminderView
	if err := call(ctx, cfg, http.MethodGet, "/api/reminders", nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No reminders")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(Out, "%d  %s  %s\n", r.ID, r.Time, r.Text)
	}
	return nil
}

type reminderAddCmd struct{}

func (reminderAddCmd) Name() string        { return "reminder-add" }
func (reminderAddCmd) Description() string { return "Create a reminder (RFC3339 or \"YYYY-MM-DD HH:MM\")" }
func (reminderAddCmd) Usage() string       { return "reminder-add <time> <text...>" }

func (reminderAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	req := map[string]string{"time": args[0], "text": strings.Join(args[1:], " ")}
	var created reminderView
	if err := call(ctx, cfg, http.MethodPost, "/api/reminders", req, &created); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created reminder %d at %s\n", created.ID, created.Time)
	return nil
}

type reminderRmCmd struct{}

func (reminderRmCmd) Name() string        { return "reminder-rm" }
func (reminderRmCmd) Description() string { return "Delete a reminder" }
func (reminderRmCmd) Usage() string       { return "reminder-rm <id>" }

func (reminderRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := call(ctx, cfg, http.MethodDelete, "/api/reminders/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted reminder %d\n", id)
	return nil
}

func init() {
	RegisterCmd(remindersCmd{})
	RegisterCmd(reminderAddCmd{})
	RegisterCmd(reminderRmCmd{})
}
