package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/sources/static"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a catalog file against the catalog schema",
		Long: `Check a catalog file against the catalog schema and report the entries
that would be skipped. Defaults to --catalog when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.catalogFile
			if len(args) == 1 {
				path = args[0]
			}

			out := cmd.OutOrStdout()
			file, err := static.NewLoader(path, opts.logger()).Parse()
			if err != nil {
				var verr static.ValidationError
				if errors.As(err, &verr) {
					for _, msg := range verr.Errors {
						fmt.Fprintf(out, "  - %s\n", msg)
					}
				}
				return fmt.Errorf("%s: %w", path, err)
			}

			entries, skipped := static.NewMapper().MapWebsites(file)
			for _, err := range skipped {
				fmt.Fprintf(out, "  - %v\n", err)
			}
			if len(skipped) > 0 {
				return fmt.Errorf("%s: %d of %d entries are invalid", path, len(skipped), len(file.Websites))
			}

			fmt.Fprintf(out, "✅ %s: %d entries\n", path, len(entries))
			return nil
		},
	}
}
