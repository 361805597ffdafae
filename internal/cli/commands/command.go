package commands

import (
	"NoteKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "note-add".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <username> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, в тестах переназначается.
var Out io.Writer = os.Stdout

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// sections groups commands in help by the prefix of their name.
var sections = []struct {
	title  string
	prefix []string
}{
	{"Account", []string{"register", "login", "logout", "status"}},
	{"Notes", []string{"note"}},
	{"Folders", []string{"folder"}},
	{"Todos", []string{"todo"}},
	{"Reminders", []string{"reminder"}},
	{"Overview", []string{"stats", "tags"}},
}

func sectionOf(name string) string {
	for _, s := range sections {
		for _, p := range s.prefix {
			if strings.HasPrefix(name, p) {
				return s.title
			}
		}
	}
	return "Other"
}

// FormatGlobalUsage builds a help text for all commands grouped by topic.
func FormatGlobalUsage() string {
	lines := []string{
		"NoteKeeper CLI",
		"",
		"Usage:",
		"  nkcli [--base-url <host:port>] [--token-file <path>] [--timeout 30s] <command> [flags] [args]",
	}
	grouped := map[string][]Command{}
	for _, c := range List() {
		s := sectionOf(c.Name())
		grouped[s] = append(grouped[s], c)
	}
	titles := make([]string, 0, len(sections)+1)
	for _, s := range sections {
		titles = append(titles, s.title)
	}
	titles = append(titles, "Other")
	for _, title := range titles {
		cmds := grouped[title]
		if len(cmds) == 0 {
			continue
		}
		lines = append(lines, "", title+":")
		for _, c := range cmds {
			lines = append(lines, fmt.Sprintf("  %-44s %s", c.Usage(), c.Description()))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
