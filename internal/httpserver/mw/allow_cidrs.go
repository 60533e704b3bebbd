package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/sitehub/internal/logger"
	"github.com/MrSnakeDoc/sitehub/internal/utils"
)

// AllowOnlyCIDRS restricts a route to the given addresses and CIDRs.
// An empty list lets everything through. Invalid values are logged and
// ignored, and a list made only of invalid values rejects everyone.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	set, invalid := utils.ParseAddrSet(allowed)
	for _, v := range invalid {
		log.Warn("ignoring invalid allowed CIDR", logger.String("value", v))
	}
	if set.Len() == 0 && len(invalid) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, ok := utils.ClientAddr(r, trustProxy)
			if !ok || !set.Contains(addr) {
				log.Debug("client not allowed",
					logger.String("client", addr.String()),
					logger.String("remote", r.RemoteAddr),
					logger.String("path", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
