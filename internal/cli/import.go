package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/sources/homepage"
	"github.com/MrSnakeDoc/sitehub/internal/sources/static"
)

func newImportCmd(opts *globalOptions) *cobra.Command {
	var services, bookmarks, output string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert gethomepage services and bookmarks to a catalog file",
		Long: `Convert gethomepage services.yaml and bookmarks.yaml to a catalog file.
Group names become categories. Links without a valid absolute href are skipped.`,
		Example: `  sitehub import --services services.yaml --bookmarks bookmarks.yaml -o websites.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hp := homepage.NewLoader(services, bookmarks, opts.logger())
			if !hp.Enabled() {
				return errors.New("nothing to import: set --services or --bookmarks")
			}

			entries, err := hp.Load(cmd.Context())
			if err != nil {
				return err
			}
			data, err := static.Encode(static.FromEntries(entries))
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✅ imported %d links to %s\n", len(entries), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&services, "services", "", "gethomepage services.yaml")
	cmd.Flags().StringVar(&bookmarks, "bookmarks", "", "gethomepage bookmarks.yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}
