package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/cli/repo"
	fsrepo "NoteKeeper/internal/cli/repo/fs"
	"NoteKeeper/internal/config"
)

// sessionStore возвращает хранилище токена по пути из конфигурации.
func sessionStore(cfg *config.Config) repo.SessionStore {
	return fsrepo.NewAuthFSStore(cfg.TokenFile)
}

// call выполняет запрос от имени сохранённой сессии.
func call(ctx context.Context, cfg *config.Config, method, path string, payload, out any) error {
	token, err := sessionStore(cfg).Load()
	if err != nil {
		if errors.Is(err, fsrepo.ErrNoSession) {
			return fmt.Errorf("%w: run login first", err)
		}
		return err
	}
	err = api.NewClient(cfg.ServerURL, token).Call(ctx, method, path, payload, out)
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("%w: run login again", err)
	}
	return err
}

// parseFlags разбирает флаги подкоманды; флаги идут до позиционных аргументов.
func parseFlags(name string, args []string, setup func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setup(fs)
	if err := fs.Parse(args); err != nil {
		return nil, ErrUsage
	}
	return fs.Args(), nil
}

func notePath(title string, suffix ...string) string {
	p := "/api/notes/" + url.PathEscape(title)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

// parseOptionalID: "root" или пустая строка означают отсутствие родителя.
func parseOptionalID(s string) (*int64, error) {
	if s == "" || strings.EqualFold(s, "root") {
		return nil, nil
	}
	id, err := parseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// splitTags разбирает список тегов через запятую.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
