package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/config"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver"
	"github.com/MrSnakeDoc/sitehub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sitehub/internal/hub"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
	"github.com/MrSnakeDoc/sitehub/internal/redis"
	"github.com/MrSnakeDoc/sitehub/internal/scheduler"
	"github.com/MrSnakeDoc/sitehub/internal/sources"
	"github.com/MrSnakeDoc/sitehub/internal/sources/homepage"
	"github.com/MrSnakeDoc/sitehub/internal/sources/static"
	redisstore "github.com/MrSnakeDoc/sitehub/internal/store/redis"
	"github.com/MrSnakeDoc/sitehub/internal/utils"
	"github.com/MrSnakeDoc/sitehub/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	hub      *hub.Hub
	visits   *redisstore.Store
	reloader *scheduler.CatalogReloader
}

// New wires the catalog, the optional visit store and the HTTP server.
// A visit store that cannot be reached only disables visit tracking.
func New(cfg *config.Config, loggerClient logger.Logger) *App {
	var visits *redisstore.Store
	if cfg.VisitTracking() {
		visits = connectVisitStore(cfg, loggerClient)
	} else {
		loggerClient.Info("visit store not configured, visit tracking disabled")
	}

	hubOpts := []hub.Option{hub.WithFaviconService(cfg.FaviconService)}
	if visits != nil {
		hubOpts = append(hubOpts, hub.WithRecorder(visits))
	}
	h := hub.New(catalogSource(cfg, loggerClient.Named("sources")), loggerClient.Named("hub"), hubOpts...)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	watchPath := ""
	if cfg.WatchCatalog {
		watchPath = cfg.CatalogFile
	}
	reloader := scheduler.NewCatalogReloader(h, loggerClient.Named("scheduler"), cfg.ReloadInterval, watchPath, reloadTrigger)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		CatalogFile:       cfg.CatalogFile,
		PageTitle:         cfg.PageTitle,
		Hub:               h,
		ReloadTrigger:     reloadTrigger,
		MutationBurst:     cfg.MutationBurst,
		MutationPerMinute: cfg.MutationPerMinute,
	}
	if visits != nil {
		d.Visits = visits
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient.Named("http"), d),
		hub:      h,
		visits:   visits,
		reloader: reloader,
	}
}

// catalogSource reads the catalog file, followed by the gethomepage
// links when configured.
func catalogSource(cfg *config.Config, loggerClient logger.Logger) hub.Source {
	catalogFile := static.NewLoader(cfg.CatalogFile, loggerClient)

	hp := homepage.NewLoader(cfg.HomepageServicesFile, cfg.HomepageBookmarksFile, loggerClient)
	if !hp.Enabled() {
		return catalogFile
	}
	loggerClient.Info("merging gethomepage links into the catalog",
		logger.String("services", cfg.HomepageServicesFile),
		logger.String("bookmarks", cfg.HomepageBookmarksFile))
	return sources.NewMerge(catalogFile, loggerClient, sources.Named{Name: "homepage", Source: hp})
}

func connectVisitStore(cfg *config.Config, loggerClient logger.Logger) *redisstore.Store {
	rc := cfg.Redis
	client, err := redis.New(context.Background(), redis.ConnectOptions{
		Addr:           rc.Addr,
		User:           rc.User,
		Password:       rc.Password,
		RedisDB:        rc.DB,
		DialTimeout:    rc.DialTimeout,
		ReadTimeout:    rc.ReadTimeout,
		WriteTimeout:   rc.WriteTimeout,
		PoolSize:       rc.PoolSize,
		ConnectTimeout: rc.ConnectTimeout,
		RetryInterval:  rc.RetryInterval,
		MaxWait:        rc.MaxWait,
		PingTimeout:    rc.PingTimeout,
		WarnThreshold:  rc.WarnThreshold,
	}, loggerClient.Named("redis"))
	if err != nil {
		loggerClient.Warn("visit store unavailable, visit tracking disabled", logger.Error(err))
		return nil
	}
	loggerClient.Info("visit store initialized successfully")
	return redisstore.NewStore(client)
}

// Hub exposes the live catalog, mostly for the CLI and tests.
func (a *App) Hub() *hub.Hub { return a.hub }

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting SiteHub v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("SiteHub %s (%s)", version.Version, version.Details())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads the catalog, then watches and refreshes)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.String("file", a.cfg.CatalogFile),
		logger.Bool("watch", a.cfg.WatchCatalog),
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.visits != nil {
		utils.CloseLogged(a.visits, "visit store", a.logger)
	}

	a.logger.Info("✅ SiteHub stopped cleanly")
	return nil
}
