package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"NoteKeeper/internal/config"
)

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "Show account statistics" }
func (statsCmd) Usage() string       { return "stats" }

func (statsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var st struct {
		TotalNotes     int64 `json:"total_notes"`
		TotalTags      int64 `json:"total_tags"`
		TotalTodos     int64 `json:"total_todos"`
		TotalFolders   int64 `json:"total_folders"`
		TotalReminders int64 `json:"total_reminders"`
		RecentNote     *struct {
			Title      string    `json:"title"`
			ModifiedAt time.Time `json:"modified_at"`
		} `json:"recent_note"`
	}
	if err := call(ctx, cfg, http.MethodGet, "/api/stats", nil, &st); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Notes:     %d\n", st.TotalNotes)
	fmt.Fprintf(Out, "Tags:      %d\n", st.TotalTags)
	fmt.Fprintf(Out, "Todos:     %d\n", st.TotalTodos)
	fmt.Fprintf(Out, "Folders:   %d\n", st.TotalFolders)
	fmt.Fprintf(Out, "Reminders: %d\n", st.TotalReminders)
	if st.RecentNote != nil {
		fmt.Fprintf(Out, "Recent:    %s (%s)\n", st.RecentNote.Title, st.RecentNote.ModifiedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

type tagsCmd struct{}

func (tagsCmd) Name() string        { return "tags" }
func (tagsCmd) Description() string { return "List tags with usage counts" }
func (tagsCmd) Usage() string       { return "tags" }

func (tagsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var list []struct {
		Name  string `json:"name"`
		Notes int64  `json:"notes"`
		Todos int64  `json:"todos"`
	}
	if err := call(ctx, cfg, http.MethodGet, "/api/tags", nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No tags")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(Out, "%-20s notes: %d  todos: %d\n", t.Name, t.Notes, t.Todos)
	}
	return nil
}

func init() {
	RegisterCmd(statsCmd{})
	RegisterCmd(tagsCmd{})
}
