package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/jklemm/hearthside/internal/handler"
	"github.com/jklemm/hearthside/internal/livesync"
	"github.com/jklemm/hearthside/internal/middleware"
	"github.com/jklemm/hearthside/internal/push"
	"github.com/jklemm/hearthside/internal/store"
)

type Server struct {
	db            *sql.DB
	hub           *livesync.Hub
	authH         *handler.AuthHandler
	taskH         *handler.TaskHandler
	tripH         *handler.TripHandler
	badgeH        *handler.BadgeHandler
	pushH         *handler.PushHandler
	sessionStore  *store.SessionStore
	pushScheduler *push.Scheduler
	logger        *slog.Logger
}

// New wires stores, handlers, the livesync hub, and the push scheduler.
// The scheduler is constructed but not started; the caller owns its
// lifecycle.
func New(db *sql.DB, pushCfg push.Config, logger *slog.Logger) *Server {
	hub := livesync.NewHub(logger.With("component", "livesync"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	taskStore := store.NewTaskStore(db)
	tripStore := store.NewTripStore(db)
	badgeStore := store.NewBadgeStore(db)
	pushStore := store.NewPushStore(db)
	settingsStore := store.NewSettingsStore(db)

	pushSvc := push.NewService(pushCfg)
	pushSched := push.NewScheduler(pushSvc, pushStore, settingsStore, tripStore, logger.With("component", "push_scheduler"))
	tracker := push.NewEncouragementTracker()

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		taskH:         handler.NewTaskHandler(taskStore, settingsStore, tracker, hub, logger.With("component", "task")),
		tripH:         handler.NewTripHandler(tripStore, hub, logger.With("component", "trip")),
		badgeH:        handler.NewBadgeHandler(badgeStore, userStore, hub, logger.With("component", "badge")),
		pushH:         handler.NewPushHandler(pushStore, settingsStore, pushSvc, logger.With("component", "push_handler")),
		sessionStore:  sessionStore,
		pushScheduler: pushSched,
		logger:        logger,
	}
}

// Scheduler returns the push notification scheduler for lifecycle control.
func (s *Server) Scheduler() *push.Scheduler {
	return s.pushScheduler
}

// SessionStore exposes the session store for background cleanup.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	outerMux.HandleFunc("POST /api/auth/register", s.authH.Register)
	outerMux.HandleFunc("POST /api/auth/login", s.authH.Login)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protected := http.NewServeMux()
	s.registerProtectedRoutes(protected)
	requireAuth := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", requireAuth(protected))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)
	mux.HandleFunc("POST /api/tasks/{id}/uncomplete", s.taskH.Uncomplete)

	// Trips and packing items
	mux.HandleFunc("GET /api/trips", s.tripH.List)
	mux.HandleFunc("POST /api/trips", s.tripH.Create)
	mux.HandleFunc("DELETE /api/trips/{id}", s.tripH.Delete)
	mux.HandleFunc("GET /api/trips/{trip_id}/items", s.tripH.ListItems)
	mux.HandleFunc("POST /api/trips/{trip_id}/items", s.tripH.AddItem)
	mux.HandleFunc("POST /api/trips/{trip_id}/items/{id}/toggle", s.tripH.ToggleItem)
	mux.HandleFunc("DELETE /api/trips/{trip_id}/items/{id}", s.tripH.DeleteItem)

	// Praise badges
	mux.HandleFunc("GET /api/badges", s.badgeH.ListReceived)
	mux.HandleFunc("GET /api/badges/given", s.badgeH.ListGiven)
	mux.HandleFunc("POST /api/badges", s.badgeH.Give)

	// Push subscriptions and notification settings
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /api/push/subscriptions", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
	mux.HandleFunc("GET /api/settings/notifications", s.pushH.GetSettings)
	mux.HandleFunc("PUT /api/settings/notifications", s.pushH.UpdateSettings)

	// Live sync
	mux.Handle("GET /ws", livesync.Handler(s.hub))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
