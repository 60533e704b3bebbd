package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/render/term"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var (
		q     domain.Query
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the matching websites as cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := opts.loadHub(cmd)

			screen := term.New(cmd.OutOrStdout())
			if plain {
				screen = term.NewPlain(cmd.OutOrStdout())
			}
			h.NewSession(screen, nil, q).Close()
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "search text")
	cmd.Flags().StringVar(&q.Category, "category", "", "category")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable styling")
	return cmd
}
