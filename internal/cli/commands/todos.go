package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"NoteKeeper/internal/config"
)

type todoView struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *string  `json:"due_date"`
	Priority    string   `json:"priority"`
	Completed   bool     `json:"completed"`
	NoteTitle   *string  `json:"note_title"`
	Tags        []string `json:"tags"`
}

func todoPath(id int64, suffix string) string {
	p := "/api/todos/" + strconv.FormatInt(id, 10)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

type todosCmd struct{}

func (todosCmd) Name() string        { return "todos" }
func (todosCmd) Description() string { return "List todos with optional filters" }
func (todosCmd) Usage() string {
	return "todos [-status open|done] [-tag T] [-priority P] [-note TITLE]"
}

func (todosCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var status, tag, priority, note string
	rest, err := parseFlags("todos", args, func(fs *flag.FlagSet) {
		fs.StringVar(&status, "status", "", "open or done")
		fs.StringVar(&tag, "tag", "", "tag name")
		fs.StringVar(&priority, "priority", "", "low, normal or high")
		fs.StringVar(&note, "note", "", "linked note title")
	})
	if err != nil || len(rest) != 0 {
		return ErrUsage
	}
	q := url.Values{}
	for k, v := range map[string]string{"status": status, "tag": tag, "priority": priority, "note": note} {
		if v != "" {
			q.Set(k, v)
		}
	}
	path := "/api/todos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var list []todoView
	if err := call(ctx, cfg, http.MethodGet, path, nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No todos")
		return nil
	}
	for _, td := range list {
		mark := " "
		if td.Completed {
			mark = "x"
		}
		fmt.Fprintf(Out, "[%s] %d  %s  (%s, due %s)", mark, td.ID, td.Title, td.Priority, orDash(td.DueDate))
		if td.NoteTitle != nil {
			fmt.Fprintf(Out, "  note: %s", *td.NoteTitle)
		}
		if len(td.Tags) > 0 {
			fmt.Fprintf(Out, "  tags: %s", strings.Join(td.Tags, ", "))
		}
		fmt.Fprintln(Out)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

type todoAddCmd struct{}

func (todoAddCmd) Name() string        { return "todo-add" }
func (todoAddCmd) Description() string { return "Create a todo" }
func (todoAddCmd) Usage() string {
	return "todo-add [-desc D] [-due DATE] [-priority P] [-note TITLE] [-tags a,b] <title...>"
}

func (todoAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var desc, due, priority, note, tags string
	rest, err := parseFlags("todo-add", args, func(fs *flag.FlagSet) {
		fs.StringVar(&desc, "desc", "", "description")
		fs.StringVar(&due, "due", "", "due date YYYY-MM-DD")
		fs.StringVar(&priority, "priority", "", "low, normal or high")
		fs.StringVar(&note, "note", "", "linked note title")
		fs.StringVar(&tags, "tags", "", "comma separated tags")
	})
	if err != nil || len(rest) == 0 {
		return ErrUsage
	}
	req := map[string]any{
		"title":       strings.Join(rest, " "),
		"description": desc,
		"priority":    priority,
		"note_title":  note,
		"tags":        splitTags(tags),
	}
	if due != "" {
		req["due_date"] = due
	}
	var created todoView
	if err := call(ctx, cfg, http.MethodPost, "/api/todos", req, &created); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created todo %d: %s\n", created.ID, created.Title)
	return nil
}

type todoToggleCmd struct{}

func (todoToggleCmd) Name() string        { return "todo-toggle" }
func (todoToggleCmd) Description() string { return "Flip the completed state of a todo" }
func (todoToggleCmd) Usage() string       { return "todo-toggle <id>" }

func (todoToggleCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var res struct {
		Completed bool `json:"completed"`
	}
	if err := call(ctx, cfg, http.MethodPatch, todoPath(id, "toggle"), nil, &res); err != nil {
		return err
	}
	state := "open"
	if res.Completed {
		state = "done"
	}
	fmt.Fprintf(Out, "Todo %d is now %s\n", id, state)
	return nil
}

type todoRmCmd struct{}

func (todoRmCmd) Name() string        { return "todo-rm" }
func (todoRmCmd) Description() string { return "Delete a todo" }
func (todoRmCmd) Usage() string       { return "todo-rm <id>" }

func (todoRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := call(ctx, cfg, http.MethodDelete, todoPath(id, ""), nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted todo %d\n", id)
	return nil
}

type todoTagCmd struct{}

func (todoTagCmd) Name() string        { return "todo-tag" }
func (todoTagCmd) Description() string { return "Attach tags to a todo" }
func (todoTagCmd) Usage() string       { return "todo-tag <id> <tag> [tag...]" }

func (todoTagCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var res struct {
		Tags []string `json:"tags"`
	}
	if err := call(ctx, cfg, http.MethodPost, todoPath(id, "tags"), map[string][]string{"tags": args[1:]}, &res); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Tags of todo %d: %s\n", id, strings.Join(res.Tags, ", "))
	return nil
}

func init() {
	RegisterCmd(todosCmd{})
	RegisterCmd(todoAddCmd{})
	RegisterCmd(todoToggleCmd{})
	RegisterCmd(todoRmCmd{})
	RegisterCmd(todoTagCmd{})
}
