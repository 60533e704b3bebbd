package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the catalog",
		Long:  `List the distinct categories of the catalog in first-seen order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := opts.loadHub(cmd).Categories()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(categories)
			}
			for _, c := range categories {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	return cmd
}
