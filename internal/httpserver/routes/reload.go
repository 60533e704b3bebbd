package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/handlers"
)

func init() { Register("reload", registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(adminOnly(d)...).Post("/reload", handlers.Reload(d))
}
