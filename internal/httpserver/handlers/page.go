package handlers

import (
	"bytes"
	"net/http"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
	"github.com/MrSnakeDoc/sitehub/internal/render/htmlpage"
)

// VisitsEndpoint is where the page script reports navigations.
const VisitsEndpoint = "/api/visits"

// Page renders the directory document for ?q= and ?category=.
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts []htmlpage.Option
		if d.Visits != nil {
			opts = append(opts, htmlpage.WithVisitsEndpoint(VisitsEndpoint))
		}
		page := htmlpage.New(d.PageTitle, opts...)

		session := d.Hub.NewSession(page, nil, queryFromRequest(r))
		defer session.Close()

		var buf bytes.Buffer
		if err := page.WriteDocument(&buf); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
