package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"NoteKeeper/internal/config"
)

// In — источник текста заметки, когда вместо него передан "-".
var In io.Reader = os.Stdin

// noteView — заметка или элемент списка в ответах сервера.
type noteView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Preview      string    `json:"preview"`
	FolderID     *int64    `json:"folder_id"`
	ReminderDate *string   `json:"reminder_date"`
	Tags         []string  `json:"tags"`
	ModifiedAt   time.Time `json:"modified_at"`
}

func printSummaries(list []noteView, empty string) {
	if len(list) == 0 {
		fmt.Fprintln(Out, empty)
		return
	}
	for _, n := range list {
		fmt.Fprintf(Out, "- %s  [%s]  %s\n", n.Title, n.ModifiedAt.Local().Format("2006-01-02 15:04"), n.Preview)
		if len(n.Tags) > 0 {
			fmt.Fprintf(Out, "    tags: %s\n", strings.Join(n.Tags, ", "))
		}
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
}

// contentArg склеивает текст из аргументов; одиночный "-" читает stdin.
func contentArg(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(In)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}

type notesCmd struct{}

func (notesCmd) Name() string        { return "notes" }
func (notesCmd) Description() string { return "List recently modified notes" }
func (notesCmd) Usage() string       { return "notes [-limit N]" }

func (notesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var limit int
	rest, err := parseFlags("notes", args, func(fs *flag.FlagSet) {
		fs.IntVar(&limit, "limit", 0, "max notes")
	})
	if err != nil || len(rest) != 0 {
		return ErrUsage
	}
	path := "/api/notes"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var list []noteView
	if err := call(ctx, cfg, http.MethodGet, path, nil, &list); err != nil {
		return err
	}
	printSummaries(list, "No notes")
	return nil
}

type noteAddCmd struct{}

func (noteAddCmd) Name() string        { return "note-add" }
func (noteAddCmd) Description() string { return "Create a note (content \"-\" reads stdin)" }
func (noteAddCmd) Usage() string       { return "note-add [-folder ID] <title> <content...>" }

func (noteAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var folder string
	rest, err := parseFlags("note-add", args, func(fs *flag.FlagSet) {
		fs.StringVar(&folder, "folder", "", "folder id")
	})
	if err != nil || len(rest) < 2 {
		return ErrUsage
	}
	folderID, err := parseOptionalID(folder)
	if err != nil {
		return err
	}
	content, err := contentArg(rest[1:])
	if err != nil {
		return err
	}
	req := map[string]any{"title": rest[0], "content": content, "folder_id": folderID}
	var created noteView
	if err := call(ctx, cfg, http.MethodPost, "/api/notes", req, &created); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created note %q (id %d)\n", created.Title, created.ID)
	return nil
}

type noteGetCmd struct{}

func (noteGetCmd) Name() string        { return "note-get" }
func (noteGetCmd) Description() string { return "Show a note" }
func (noteGetCmd) Usage() string       { return "note-get <title>" }

func (noteGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var n noteView
	if err := call(ctx, cfg, http.MethodGet, notePath(args[0]), nil, &n); err != nil {
		return err
	}
	folder := "-"
	if n.FolderID != nil {
		folder = strconv.FormatInt(*n.FolderID, 10)
	}
	fmt.Fprintf(Out, "Title:    %s\n", n.Title)
	fmt.Fprintf(Out, "Folder:   %s\n", folder)
	fmt.Fprintf(Out, "Tags:     %s\n", strings.Join(n.Tags, ", "))
	fmt.Fprintf(Out, "Reminder: %s\n", orDash(n.ReminderDate))
	fmt.Fprintf(Out, "Modified: %s\n\n", n.ModifiedAt.Local().Format(time.RFC3339))
	fmt.Fprintln(Out, n.Content)
	return nil
}

type noteEditCmd struct{}

func (noteEditCmd) Name() string        { return "note-edit" }
func (noteEditCmd) Description() string { return "Replace the content of a note" }
func (noteEditCmd) Usage() string       { return "note-edit <title> <content...>" }

func (noteEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	content, err := contentArg(args[1:])
	if err != nil {
		return err
	}
	if err := call(ctx, cfg, http.MethodPut, notePath(args[0]), map[string]string{"content": content}, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Updated note %q\n", args[0])
	return nil
}

type noteRenameCmd struct{}

func (noteRenameCmd) Name() string        { return "note-rename" }
func (noteRenameCmd) Description() string { return "Change the title of a note" }
func (noteRenameCmd) Usage() string       { return "note-rename <title> <new-title>" }

func (noteRenameCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if err := call(ctx, cfg, http.MethodPut, notePath(args[0], "title"), map[string]string{"title": args[1]}, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Renamed %q to %q\n", args[0], args[1])
	return nil
}

type noteRmCmd struct{}

func (noteRmCmd) Name() string        { return "note-rm" }
func (noteRmCmd) Description() string { return "Delete a note" }
func (noteRmCmd) Usage() string       { return "note-rm <title>" }

func (noteRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := call(ctx, cfg, http.MethodDelete, notePath(args[0]), nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted note %q\n", args[0])
	return nil
}

type noteSearchCmd struct{}

func (noteSearchCmd) Name() string        { return "note-search" }
func (noteSearchCmd) Description() string { return "Search notes by title and content" }
func (noteSearchCmd) Usage() string       { return "note-search <query...>" }

func (noteSearchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	q := strings.Join(args, " ")
	var list []noteView
	if err := call(ctx, cfg, http.MethodGet, "/api/notes/search?q="+url.QueryEscape(q), nil, &list); err != nil {
		return err
	}
	printSummaries(list, "Nothing found")
	return nil
}

type noteTagCmd struct{}

func (noteTagCmd) Name() string        { return "note-tag" }
func (noteTagCmd) Description() string { return "Attach tags to a note" }
func (noteTagCmd) Usage() string       { return "note-tag <title> <tag> [tag...]" }

func (noteTagCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	var res struct {
		Tags []string `json:"tags"`
	}
	if err := call(ctx, cfg, http.MethodPost, notePath(args[0], "tags"), map[string][]string{"tags": args[1:]}, &res); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Tags of %q: %s\n", args[0], strings.Join(res.Tags, ", "))
	return nil
}

type noteFolderCmd struct{}

func (noteFolderCmd) Name() string        { return "note-folder" }
func (noteFolderCmd) Description() string { return "Move a note into a folder (root removes it)" }
func (noteFolderCmd) Usage() string       { return "note-folder <title> <folder-id|root>" }

func (noteFolderCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	folderID, err := parseOptionalID(args[1])
	if err != nil {
		return err
	}
	if err := call(ctx, cfg, http.MethodPut, notePath(args[0], "folder"), map[string]*int64{"folder_id": folderID}, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Moved note %q\n", args[0])
	return nil
}

type noteRemindCmd struct{}

func (noteRemindCmd) Name() string        { return "note-remind" }
func (noteRemindCmd) Description() string { return "Set or clear (none) the reminder date of a note" }
func (noteRemindCmd) Usage() string       { return "note-remind <title> <YYYY-MM-DD|none>" }

func (noteRemindCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var date *string
	if !strings.EqualFold(args[1], "none") {
		date = &args[1]
	}
	if err := call(ctx, cfg, http.MethodPut, notePath(args[0], "reminder"), map[string]*string{"reminder_date": date}, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Reminder of %q: %s\n", args[0], orDash(date))
	return nil
}

func init() {
	RegisterCmd(notesCmd{})
	RegisterCmd(noteAddCmd{})
	RegisterCmd(noteGetCmd{})
	RegisterCmd(noteEditCmd{})
	RegisterCmd(noteRenameCmd{})
	RegisterCmd(noteRmCmd{})
	RegisterCmd(noteSearchCmd{})
	RegisterCmd(noteTagCmd{})
	RegisterCmd(noteFolderCmd{})
	RegisterCmd(noteRemindCmd{})
}
