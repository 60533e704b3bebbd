package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/app"
	"github.com/MrSnakeDoc/sitehub/internal/config"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the directory page and its API over HTTP",
		Long: `Serve the directory page and its JSON API until SIGINT or SIGTERM.

Settings come from SITEHUB_* environment variables. --catalog overrides
SITEHUB_CATALOG_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flag("catalog").Changed {
				cfg.CatalogFile = opts.catalogFile
			}

			loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
			defer func() { _ = loggerClient.Sync() }()

			return app.New(cfg, loggerClient).Run()
		},
	}
}
