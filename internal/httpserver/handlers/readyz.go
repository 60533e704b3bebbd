package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Entries int  `json:"entries"`
}

// Readyz reports ready once the catalog source has been read at least once,
// even when it failed and the directory is empty.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := d.Hub.Catalog()
		ready := !store.LastReload().IsZero()

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:   ready,
			Entries: store.Count(),
		})
	}
}
