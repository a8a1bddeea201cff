// Package httptransport wires the public HTTP surface: validation and
// certificate endpoints are open, registry endpoints require a bearer
// token.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"melodie/internal/platform/middleware"
	"melodie/internal/platform/ratelimit"
)

// NewRouter mounts all public endpoints. The rate limiter guards the
// unauthenticated validation and certificate routes.
func NewRouter(h *Handler, validator middleware.TokenValidator, limiter *ratelimit.Middleware, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.HandleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", h.HandleVersion)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Limit)
			r.Post("/midds/{kind}/validate", h.HandleValidate)
			r.Post("/certificate", h.HandleCertificate)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(validator, logger))
			r.Post("/registry/{kind}", h.HandleRegister)
			r.Get("/registry/{kind}/{id}", h.HandleGetRecord)
		})
	})
	return r
}
