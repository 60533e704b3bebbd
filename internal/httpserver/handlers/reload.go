package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// Reload queues a refresh of the catalog from its sources. Only one
// request can be pending; the reloader drains it.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, http.StatusServiceUnavailable, "reload is not available")
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("catalog reload requested", logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "scheduled"})
		default:
			writeError(w, http.StatusTooManyRequests, "a reload is already pending")
		}
	}
}
