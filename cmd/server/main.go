package main

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/handlers"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"NoteKeeper/internal/session"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	sessions := session.New()
	defer sessions.Close()

	tagRepo := repo.NewTagRepository(gormDB)
	svc := handlers.Services{
		Users:     service.NewUserService(repo.NewUserRepository(gormDB), sessions, sugar),
		Folders:   service.NewFolderService(repo.NewFolderRepository(gormDB), sugar),
		Notes:     service.NewNoteService(repo.NewNoteRepository(gormDB), sugar, cfg.NotesListLimit),
		Todos:     service.NewTodoService(repo.NewTodoRepository(gormDB), tagRepo, sugar),
		Reminders: service.NewReminderService(repo.NewReminderRepository(gormDB), sugar),
		Stats:     service.NewStatsService(repo.NewStatsRepository(gormDB), tagRepo, sugar),
	}

	h := handlers.NewHandler(svc, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server", "addr", addr)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DatabaseDriver", gormDB.Dialector.Name(),
		"NotesListLimit", cfg.NotesListLimit,
		"CORSOrigins", cfg.CORSOrigins,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down", "open_sessions", sessions.Len())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Graceful shutdown failed", "error", err)
		}
	}
}
