package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/mw"
)

func init() { Register("probes", registerProbes) }

func registerProbes(r chi.Router, d deps.Deps) {
	guard := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	guard.Get("/healthz", handlers.Healthz(d))
	guard.Get("/readyz", handlers.Readyz(d))
	r.With(adminOnly(d)...).Get("/infra", handlers.Infra(d))
}
