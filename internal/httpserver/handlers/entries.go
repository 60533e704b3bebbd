package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

type entriesResponse struct {
	Query   domain.Query   `json:"query"`
	Count   int            `json:"count"`
	Entries []domain.Entry `json:"entries"`
}

// ListEntries returns the entries matching ?q= and ?category=, in catalog order.
func ListEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := queryFromRequest(r)
		entries := d.Hub.View(q)
		writeJSON(w, http.StatusOK, entriesResponse{
			Query:   q,
			Count:   len(entries),
			Entries: entries,
		})
	}
}

// CreateEntry appends one entry to the catalog.
func CreateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e domain.Entry
		if err := decodeJSON(w, r, &e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid entry: "+err.Error())
			return
		}

		if err := d.Hub.AddEntry(e); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		d.Logger.Info("entry added via api",
			logger.String("url", e.URL),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusCreated, e)
	}
}

// UpdateEntry merges the supplied fields into the first entry matching ?url=.
func UpdateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if url == "" {
			writeError(w, http.StatusBadRequest, "missing url parameter")
			return
		}

		var patch domain.EntryPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid patch: "+err.Error())
			return
		}
		if patch.IsEmpty() {
			writeError(w, http.StatusBadRequest, "empty patch")
			return
		}
		if err := patch.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, ok := d.Hub.UpdateEntry(url, patch)
		if !ok {
			writeError(w, http.StatusNotFound, "no entry with this url")
			return
		}

		d.Logger.Info("entry updated via api",
			logger.String("url", url),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteEntry removes every entry matching ?url=. Unknown URLs are a no-op.
func DeleteEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if url == "" {
			writeError(w, http.StatusBadRequest, "missing url parameter")
			return
		}

		removed := d.Hub.RemoveEntry(url)
		if removed > 0 {
			d.Logger.Info("entries removed via api",
				logger.String("url", url),
				logger.Int("count", removed),
				logger.String("remote_ip", r.RemoteAddr))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
