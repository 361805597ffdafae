package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"NoteKeeper/internal/config"
)

type folderNode struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	ParentID *int64        `json:"parent_id"`
	Children []*folderNode `json:"children"`
}

func printForest(nodes []*folderNode, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(Out, "%s%s (id %d)\n", strings.Repeat("  ", depth), n.Name, n.ID)
		printForest(n.Children, depth+1)
	}
}

func folderPath(id int64, suffix string) string {
	p := "/api/folders/" + strconv.FormatInt(id, 10)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

type foldersCmd struct{}

func (foldersCmd) Name() string        { return "folders" }
func (foldersCmd) Description() string { return "Show the folder tree" }
func (foldersCmd) Usage() string       { return "folders" }

func (foldersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var forest []*folderNode
	if err := call(ctx, cfg, http.MethodGet, "/api/folders", nil, &forest); err != nil {
		return err
	}
	if len(forest) == 0 {
		fmt.Fprintln(Out, "No folders")
		return nil
	}
	printForest(forest, 0)
	return nil
}

type folderAddCmd struct{}

func (folderAddCmd) Name() string        { return "folder-add" }
func (folderAddCmd) Description() string { return "Create a folder" }
func (folderAddCmd) Usage() string       { return "folder-add [-parent ID] <name>" }

func (folderAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var parent string
	rest, err := parseFlags("folder-add", args, func(fs *flag.FlagSet) {
		fs.StringVar(&parent, "parent", "", "parent folder id")
	})
	if err != nil || len(rest) != 1 {
		return ErrUsage
	}
	parentID, err := parseOptionalID(parent)
	if err != nil {
		return err
	}
	var created folderNode
	req := map[string]any{"name": rest[0], "parent_id": parentID}
	if err := call(ctx, cfg, http.MethodPost, "/api/folders", req, &created); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created folder %q (id %d)\n", created.Name, created.ID)
	return nil
}

type folderRenameCmd struct{}

func (folderRenameCmd) Name() string        { return "folder-rename" }
func (folderRenameCmd) Description() string { return "Rename a folder" }
func (folderRenameCmd) Usage() string       { return "folder-rename <id> <name>" }

func (folderRenameCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := call(ctx, cfg, http.MethodPut, folderPath(id, "name"), map[string]string{"name": args[1]}, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Renamed folder %d to %q\n", id, args[1])
	return nil
}

type folderMvCmd struct{}

func (folderMvCmd) Name() string        { return "folder-mv" }
func (folderMvCmd) Description() string { return "Move a folder under another one (root detaches it)" }
func (folderMvCmd) Usage() string       { return "folder-mv <id> <parent-id|root>" }

func (folderMvCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	parentID, err := parseOptionalID(args[1])
	if err != nil {
		return err
	}
	if err := call(ctx, cfg, http.MethodPut, folderPath(id, "parent"), map[string]*int64{"parent_id": parentID}, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Moved folder %d\n", id)
	return nil
}

type folderRmCmd struct{}

func (folderRmCmd) Name() string        { return "folder-rm" }
func (folderRmCmd) Description() string { return "Delete a folder with its subfolders" }
func (folderRmCmd) Usage() string       { return "folder-rm <id>" }

func (folderRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var res struct {
		DetachedNotes int64 `json:"detached_notes"`
	}
	if err := call(ctx, cfg, http.MethodDelete, folderPath(id, ""), nil, &res); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted folder %d; %d note(s) moved out\n", id, res.DetachedNotes)
	return nil
}

func init() {
	RegisterCmd(foldersCmd{})
	RegisterCmd(folderAddCmd{})
	RegisterCmd(folderRenameCmd{})
	RegisterCmd(folderMvCmd{})
	RegisterCmd(folderRmCmd{})
}
