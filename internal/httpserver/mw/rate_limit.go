package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/sitehub/internal/utils"
)

// RateLimitConfig sizes the per-client token buckets.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int           // sweep idle clients early once this many are tracked
	IdleTTL           time.Duration // forget clients idle for longer
	TrustProxy        bool          // key on proxy headers when true

	// Now overrides the clock in tests.
	Now func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientTable struct {
	cfg       RateLimitConfig
	limit     rate.Limit
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func newClientTable(cfg RateLimitConfig) *clientTable {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RefillPerIPPerMin < 1 {
		cfg.RefillPerIPPerMin = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &clientTable{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RefillPerIPPerMin) / 60),
		clients:   make(map[string]*client),
		lastSweep: cfg.Now(),
	}
}

// take spends one token of key's bucket. It returns the tokens left, or
// how long to wait for the next one when the bucket is empty.
func (t *clientTable) take(key string, now time.Time) (remaining int, wait time.Duration) {
	t.mu.Lock()
	if now.Sub(t.lastSweep) >= t.cfg.IdleTTL ||
		(t.cfg.MaxEntries > 0 && len(t.clients) >= t.cfg.MaxEntries) {
		t.sweepLocked(now)
	}
	c := t.clients[key]
	if c == nil {
		c = &client{limiter: rate.NewLimiter(t.limit, t.cfg.Burst)}
		t.clients[key] = c
	}
	c.lastSeen = now
	t.mu.Unlock()

	res := c.limiter.ReserveN(now, 1)
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return 0, d
	}
	return int(math.Max(0, c.limiter.TokensAt(now))), 0
}

func (t *clientTable) sweepLocked(now time.Time) {
	for key, c := range t.clients {
		if now.Sub(c.lastSeen) > t.cfg.IdleTTL {
			delete(t.clients, key)
		}
	}
	t.lastSweep = now
}

// RateLimit rejects clients that exhausted their bucket with 429 and a
// Retry-After header.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	t := newClientTable(cfg)
	limit := strconv.Itoa(t.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if addr, ok := utils.ClientAddr(r, t.cfg.TrustProxy); ok {
				key = addr.String()
			}

			remaining, wait := t.take(key, t.cfg.Now())
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if wait > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
