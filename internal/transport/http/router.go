package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-users-api/internal/application/auth"
	"github.com/go-users-api/internal/application/user"
	"github.com/go-users-api/internal/config"
	"github.com/go-users-api/internal/domain"
	"github.com/go-users-api/internal/transport/http/handler"
	appmiddleware "github.com/go-users-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to the public account endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:      deps.UserRepo,
		CodeRepo:      deps.CodeRepo,
		Mailer:        deps.Mailer,
		Tokens:        deps.JWTProvider,
		Generator:     deps.Generator,
		NotifyTimeout: cfg.NotifyTimeout,
	})
	userSvc := user.NewService(deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Check)
		r.With(sensitiveRL.Limit).Post("/users/signup", authH.SignUp)
		r.With(sensitiveRL.Limit).Post("/users/signin", authH.SignIn)
		r.With(sensitiveRL.Limit).Post("/users/verify-code", authH.VerifyCode)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			// Any authenticated user (self-or-admin checks live in the handler)
			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Delete("/users/{id}", userH.Delete)
			})
		})
	})

	return r
}
