package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
)

type categoriesResponse struct {
	Categories []string        `json:"categories"`
	Options    []domain.Option `json:"options"`
}

// Categories returns the category index and the selector options for ?category=.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := d.Hub.Categories()
		writeJSON(w, http.StatusOK, categoriesResponse{
			Categories: categories,
			Options:    domain.CategoryOptions(categories, r.URL.Query().Get("category")),
		})
	}
}
