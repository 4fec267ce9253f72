package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/VitorSouza2004/SouzaTec/internal/config"
	"github.com/VitorSouza2004/SouzaTec/internal/handlers"
	"github.com/VitorSouza2004/SouzaTec/internal/intake"
	"github.com/VitorSouza2004/SouzaTec/internal/middleware"
	"github.com/VitorSouza2004/SouzaTec/internal/models"
	"github.com/VitorSouza2004/SouzaTec/internal/queue"
	"github.com/VitorSouza2004/SouzaTec/internal/repository/postgres"
	"github.com/VitorSouza2004/SouzaTec/internal/service"
)

func New(log zerolog.Logger, db *pgxpool.Pool, q *queue.Queue, notifier intake.Notifier, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Repos + services + handlers
	reqRepo := postgres.NewRequestRepo(db)
	userRepo := postgres.NewUserRepo(db)
	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)
	in := intake.New(reqRepo, q, intake.NewIPLookup(log), notifier, cfg.WhatsAppNumber, log)

	rh := handlers.NewRequestHTTP(reqRepo, in)
	ah := handlers.NewAuthHTTP(authSvc, userRepo)
	uh := handlers.NewUserHTTP(userRepo, authSvc)
	rep := handlers.NewReportsHTTP(reqRepo)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/requests", func(r chi.Router) {
		// public contact form, tighter rate limit
		r.With(httprate.LimitByIP(10, time.Minute)).Post("/", rh.Submit())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", rh.List())
			r.Get("/stats", rh.Stats())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rh.Get())
				r.Post("/assign", rh.Assign())
				r.Post("/complete", rh.Complete())
				r.With(middleware.RequireRoles(models.RoleAdmin)).Delete("/", rh.Delete())
			})
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth, middleware.RequireRoles(models.RoleAdmin))
		r.Get("/", uh.List())
		r.Post("/technicians", uh.CreateTechnician())
		r.Patch("/{id}/deactivate", uh.Deactivate())
		r.Patch("/{id}/activate", uh.Activate())
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth, middleware.RequireRoles(models.RoleAdmin))
		r.Get("/monthly", rep.Monthly())
	})

	return r
}
