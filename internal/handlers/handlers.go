package handlers

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Users     *service.UserService
	Folders   *service.FolderService
	Notes     *service.NoteService
	Todos     *service.TodoService
	Reminders *service.ReminderService
	Stats     *service.StatsService
}

// NewHandler разводящий для хендлеров
func NewHandler(svc Services, logger *zap.SugaredLogger, config *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Content-Encoding", "Accept-Encoding"},
	}).Handler)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(svc.Users))

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger)
	noteHandler := NewNoteHandler(svc.Notes, logger)
	folderHandler := NewFolderHandler(svc.Folders, logger)
	todoHandler := NewTodoHandler(svc.Todos, logger)
	reminderHandler := NewReminderHandler(svc.Reminders, logger)
	statsHandler := NewStatsHandler(svc.Stats, logger)

	r.Get("/health", Health)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)

	// Остальные маршруты требуют открытой сессии
	r.Group(func(r chi.Router) {
		r.Use(requireSession)

		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/search", noteHandler.Search)
			r.Get("/{title}", noteHandler.Get)
			r.Put("/{title}", noteHandler.Update)
			r.Delete("/{title}", noteHandler.Delete)
			r.Post("/{title}/tags", noteHandler.AddTags)
			r.Put("/{title}/folder", noteHandler.SetFolder)
			r.Put("/{title}/title", noteHandler.Rename)
			r.Put("/{title}/reminder", noteHandler.SetReminder)
		})

		r.Route("/api/folders", func(r chi.Router) {
			r.Get("/", folderHandler.Tree)
			r.Post("/", folderHandler.Create)
			r.Put("/{id}/name", folderHandler.Rename)
			r.Put("/{id}/parent", folderHandler.Move)
			r.Delete("/{id}", folderHandler.Delete)
		})

		r.Route("/api/todos", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Patch("/{id}/toggle", todoHandler.Toggle)
			r.Delete("/{id}", todoHandler.Delete)
			r.Post("/{id}/tags", todoHandler.AddTags)
		})

		r.Route("/api/reminders", func(r chi.Router) {
			r.Get("/", reminderHandler.List)
			r.Post("/", reminderHandler.Create)
			r.Delete("/{id}", reminderHandler.Delete)
		})

		r.Get("/api/tags", statsHandler.Tags)
		r.Get("/api/stats", statsHandler.Stats)
	})

	return &Handler{Router: r}
}

// requireSession отвечает 401, если WithAuth не установил пользователя.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
			writeJSON(w, http.StatusUnauthorized, envelope{Message: "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health — проверка живости сервера.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, map[string]string{"status": "ok"})
}
