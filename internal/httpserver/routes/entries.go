package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/handlers"
)

func init() { Register("entries", registerEntries) }

func registerEntries(r chi.Router, d deps.Deps) {
	r.Get("/api/entries", handlers.ListEntries(d))
	r.Get("/api/categories", handlers.Categories(d))

	admin := r.With(adminOnly(d)...).With(mutationLimit(d))
	admin.Post("/api/entries", handlers.CreateEntry(d))
	admin.Patch("/api/entries", handlers.UpdateEntry(d))
	admin.Delete("/api/entries", handlers.DeleteEntry(d))
}
