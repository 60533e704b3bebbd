package routes

import (
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/mw"
)

// adminOnly restricts a route to allowed client IPs and Host headers.
func adminOnly(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	}
}

// mutationLimit builds a fresh per-client limiter for a group of routes.
func mutationLimit(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.MutationBurst,
		RefillPerIPPerMin: d.MutationPerMinute,
		MaxEntries:        4096,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	})
}
