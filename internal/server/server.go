package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"taskflow/internal/activity"
	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/handler"
	"taskflow/internal/middleware"
	"taskflow/internal/store"
	ws "taskflow/internal/websocket"
)

type Server struct {
	db        *sql.DB
	hub       *ws.Hub
	issuer    *auth.Issuer
	recorder  *activity.Recorder
	authH     *handler.AuthHandler
	taskH     *handler.TaskHandler
	userH     *handler.UserHandler
	activityH *handler.ActivityHandler
	cfg       config.Config
	logger    *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)
	activityStore := store.NewActivityStore(db)

	recorder := activity.NewRecorder(activityStore, logger.With("component", "activity"))

	return &Server{
		db:        db,
		hub:       hub,
		issuer:    issuer,
		recorder:  recorder,
		authH:     handler.NewAuthHandler(userStore, issuer, logger.With("component", "auth")),
		taskH:     handler.NewTaskHandler(taskStore, recorder, hub, logger.With("component", "task")),
		userH:     handler.NewUserHandler(userStore, logger.With("component", "user")),
		activityH: handler.NewActivityHandler(activityStore, logger.With("component", "activity")),
		cfg:       cfg,
		logger:    logger,
	}
}

// Recorder returns the activity recorder so the entrypoint can drain it
// on shutdown.
func (s *Server) Recorder() *activity.Recorder {
	return s.recorder
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.authH.Register)
	outerMux.HandleFunc("POST /api/auth/login", s.authH.Login)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.cfg.AllowedOrigins, s.logger.With("component", "websocket")))

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.issuer)
	outerMux.Handle("/api/", authMiddleware(protectedMux))

	corsMiddleware := middleware.CORS(s.cfg.AllowedOrigins)
	return middleware.RequestLogger(s.logger.With("component", "http"))(corsMiddleware(outerMux))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/change-password", s.authH.ChangePassword)

	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	mux.HandleFunc("PUT /api/users/{id}", s.userH.UpdateProfile)
	mux.HandleFunc("PUT /api/users/{id}/preferences", s.userH.UpdatePreferences)
	mux.HandleFunc("POST /api/users/{id}/avatar", s.userH.UploadAvatar)

	mux.HandleFunc("GET /api/activity", s.activityH.List)
}
