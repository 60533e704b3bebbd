package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/hub"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
	redisstore "github.com/MrSnakeDoc/sitehub/internal/store/redis"
)

// VisitStore is the optional visit counter backend.
type VisitStore interface {
	Ping(ctx context.Context) error
	GetUsageStats(ctx context.Context) ([]redisstore.VisitStat, error)
	VisitCount(ctx context.Context, url string) (int64, error)
	ResetVisits(ctx context.Context) error
}

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time // for testing, defaults to time.Now
	AllowedHosts      []string         // Host headers allowed to access admin routes
	AllowedCIDRS      []string         // IPs allowed to access admin routes
	TrustProxy        bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CatalogFile       string           // Path to the catalog file
	PageTitle         string           // Document title of the directory page
	Hub               *hub.Hub         // Live catalog and sessions
	Visits            VisitStore       // nil when visit tracking is disabled
	ReloadTrigger     chan struct{}    // Channel to trigger manual catalog reload
	MutationBurst     int              // rate limit burst for mutating routes
	MutationPerMinute int              // rate limit refill for mutating routes
}
