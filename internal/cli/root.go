// Package cli holds the sitehub command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/config"
	"github.com/MrSnakeDoc/sitehub/internal/hub"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
	"github.com/MrSnakeDoc/sitehub/internal/sources/static"
	"github.com/MrSnakeDoc/sitehub/internal/version"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	catalogFile string
	logLevel    string
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "sitehub",
		Short: "A searchable directory of websites",
		Long: `SiteHub renders a curated catalog of websites as a filterable card directory.

The catalog is a YAML or JSON file. It can be served over HTTP, rendered to a
static page, or browsed from the terminal.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("sitehub {{.Version}} (" + version.Details() + ")\n")

	cmd.PersistentFlags().StringVarP(&opts.catalogFile, "catalog", "c", config.CatalogFile(), "catalog file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level of terminal commands (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newListCmd(opts),
		newCategoriesCmd(opts),
		newValidateCmd(opts),
		newBrowseCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func (o *globalOptions) logger() logger.Logger {
	return logger.New(o.logLevel, false)
}

// loadHub reads the catalog into a fresh hub. A catalog that cannot be
// loaded leaves the directory empty and is reported on stderr.
func (o *globalOptions) loadHub(cmd *cobra.Command, opts ...hub.Option) *hub.Hub {
	log := o.logger()
	h := hub.New(static.NewLoader(o.catalogFile, log), log, opts...)
	if err := h.Refresh(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v\n", err)
	}
	return h
}
