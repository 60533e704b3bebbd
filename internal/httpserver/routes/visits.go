package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/handlers"
)

func init() { Register("visits", registerVisits) }

func registerVisits(r chi.Router, d deps.Deps) {
	r.With(mutationLimit(d)).Post(handlers.VisitsEndpoint, handlers.RecordVisit(d))
	admin := r.With(adminOnly(d)...)
	admin.Get(handlers.VisitsEndpoint, handlers.Visits(d))
	admin.With(mutationLimit(d)).Delete(handlers.VisitsEndpoint, handlers.ResetVisits(d))
}
