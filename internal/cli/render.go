package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/hub"
	"github.com/MrSnakeDoc/sitehub/internal/render/htmlpage"
)

type renderOptions struct {
	output         string
	title          string
	search         string
	category       string
	faviconService string
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the directory to a static HTML page",
		Long: `Render the directory to a self-contained HTML page. The page keeps its
search box, category selector and keyboard shortcuts; filtering reloads the
page with ?q= and ?category=, so a static copy shows the initial query only.`,
		Example: `  sitehub render -c websites.yaml -o index.html
  sitehub render --category Dev -o dev.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := opts.loadHub(cmd, hub.WithFaviconService(ro.faviconService))

			page := htmlpage.New(ro.title)
			session := h.NewSession(page, nil, domain.Query{Search: ro.search, Category: ro.category})
			defer session.Close()

			var buf bytes.Buffer
			if err := page.WriteDocument(&buf); err != nil {
				return fmt.Errorf("render page: %w", err)
			}

			if ro.output == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := os.WriteFile(ro.output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write page: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✅ wrote %d cards to %s\n", len(session.Cards()), ro.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&ro.title, "title", htmlpage.DefaultTitle, "document title")
	cmd.Flags().StringVarP(&ro.search, "search", "s", "", "initial search text")
	cmd.Flags().StringVar(&ro.category, "category", "", "initial category")
	cmd.Flags().StringVar(&ro.faviconService, "favicon-service", "", "favicon lookup template with one %s for the domain")
	return cmd
}
