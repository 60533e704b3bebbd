package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	Categories    *int   `json:"categories,omitempty"`
	Sessions      *int   `json:"sessions,omitempty"`
	Source        string `json:"source,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := d.Hub.Catalog()
		entriesCount := store.Count()
		categoriesCount := len(d.Hub.Categories())
		sessions := d.Hub.SessionCount()

		lastReload := store.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:            entriesCount > 0,
				EntriesLoaded: &entriesCount,
				Categories:    &categoriesCount,
				Source:        d.CatalogFile,
				LastReload:    lastReloadStr,
			},
			"sessions": {
				OK:       true,
				Sessions: &sessions,
			},
			"visits": checkVisits(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// An empty catalog means the page only shows the empty state
	if catalog, exists := components["catalog"]; exists && !catalog.OK {
		return "empty"
	}

	// Visit tracking is optional
	if visits, exists := components["visits"]; exists && !visits.OK && visits.Mode != "disabled" {
		return "degraded"
	}

	return "ok"
}

func checkVisits(parent context.Context, d deps.Deps) componentStatus {
	if d.Visits == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "visit-tracking-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Visits.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "visits-not-recorded",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "visits-recorded",
	}
}
