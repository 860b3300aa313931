package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/readypath/readypath/internal/auth"
	"github.com/readypath/readypath/internal/observability"
	"github.com/readypath/readypath/internal/rbac"
	"github.com/readypath/readypath/internal/resumes"
	"github.com/readypath/readypath/internal/roles"
	"github.com/readypath/readypath/internal/scores"
	"github.com/readypath/readypath/internal/shared"
	"github.com/readypath/readypath/internal/users"
	"github.com/readypath/readypath/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	AuthHandler    *auth.Handler
	UsersHandler   *users.Handler
	RolesHandler   *roles.Handler
	RBACHandler    *rbac.Handler
	ResumesHandler *resumes.Handler
	ScoresHandler  *scores.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with platform defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if params.AuthHandler != nil {
			api.Route("/auth", params.AuthHandler.MountRoutes)
		}
		if params.UsersHandler != nil {
			api.Route("/users", params.UsersHandler.MountRoutes)
		}
		if params.RolesHandler != nil {
			api.Route("/roles", params.RolesHandler.MountRoutes)
		}
		if params.RBACHandler != nil {
			api.Route("/rbac", params.RBACHandler.MountRoutes)
		}
		if params.ResumesHandler != nil {
			api.Route("/resumes", params.ResumesHandler.MountRoutes)
		}
		if params.ScoresHandler != nil {
			api.Route("/scores", params.ScoresHandler.MountRoutes)
		}
		if params.JobHandler != nil {
			api.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
