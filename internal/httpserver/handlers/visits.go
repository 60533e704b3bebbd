package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

type visitRequest struct {
	URL string `json:"url"`
}

// RecordVisit counts a navigation to a catalog URL. Once tracking is on,
// recording is best effort and store errors do not change the response.
func RecordVisit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Visits == nil {
			writeError(w, http.StatusServiceUnavailable, "visit tracking disabled")
			return
		}

		var req visitRequest
		if err := decodeJSON(w, r, &req); err != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "expected {\"url\": ...}")
			return
		}

		if !inCatalog(d, req.URL) {
			writeError(w, http.StatusNotFound, "unknown url")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		d.Hub.RecordVisit(ctx, req.URL)

		w.WriteHeader(http.StatusNoContent)
	}
}

type visitCountResponse struct {
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

// Visits returns the visit counters, most visited first, or the counter
// of a single URL with ?url=.
func Visits(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Visits == nil {
			writeError(w, http.StatusServiceUnavailable, "visit tracking disabled")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if url := r.URL.Query().Get("url"); url != "" {
			count, err := d.Visits.VisitCount(ctx, url)
			if err != nil {
				d.Logger.Warn("failed to read visit count", logger.String("url", url), logger.Error(err))
				writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
				return
			}
			writeJSON(w, http.StatusOK, visitCountResponse{URL: url, Count: count})
			return
		}

		stats, err := d.Visits.GetUsageStats(ctx)
		if err != nil {
			d.Logger.Warn("failed to read visit stats", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// ResetVisits deletes every visit counter.
func ResetVisits(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Visits == nil {
			writeError(w, http.StatusServiceUnavailable, "visit tracking disabled")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Visits.ResetVisits(ctx); err != nil {
			d.Logger.Warn("failed to reset visits", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "visit store unavailable")
			return
		}

		d.Logger.Info("visit counters reset via api",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusNoContent)
	}
}

func inCatalog(d deps.Deps, url string) bool {
	for _, e := range d.Hub.Entries() {
		if e.URL == url {
			return true
		}
	}
	return false
}
