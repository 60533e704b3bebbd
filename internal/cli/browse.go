package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/hub"
	"github.com/MrSnakeDoc/sitehub/internal/render/term"
)

func newBrowseCmd(opts *globalOptions) *cobra.Command {
	var (
		q      domain.Query
		plain  bool
		noOpen bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the directory interactively",
		Long: `Browse the directory from the terminal. Every line is new search text.

Commands:
  :cat <name>   select a category
  :all          show every category
  :esc          clear the search
  :open <n>     open card n in the default browser
  :reload       reload the catalog file
  :q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var opener hub.Opener = browserOpener{}
			if noOpen {
				opener = printOpener{out: out}
			}

			screen := term.New(out)
			if plain {
				screen = term.NewPlain(out)
			}

			h := opts.loadHub(cmd)
			session := h.NewSession(screen, opener, q)
			defer session.Close()

			b := &browser{hub: h, session: session, screen: screen, errOut: cmd.ErrOrStderr()}
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "initial search text")
	cmd.Flags().StringVar(&q.Category, "category", "", "initial category")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable styling")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "print URLs instead of opening them")
	return cmd
}

// browser is one interactive terminal session.
type browser struct {
	hub     *hub.Hub
	session *hub.Session
	screen  *term.Screen
	errOut  io.Writer
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		b.screen.Status()
		b.screen.FocusSearch()

		if !sc.Scan() {
			return sc.Err()
		}

		quit, err := b.handle(ctx, strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintf(b.errOut, "⚠️  %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// handle applies one input line. It reports whether the session is over.
func (b *browser) handle(ctx context.Context, line string) (bool, error) {
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case ":q", ":quit":
		return true, nil
	case ":all":
		return false, b.session.Dispatch(ctx, hub.CategoryChange{})
	case ":cat":
		return false, b.session.Dispatch(ctx, hub.CategoryChange{Value: arg})
	case ":esc":
		return false, b.session.Dispatch(ctx, hub.KeyPress{Key: "Escape", SearchFocused: true})
	case ":open":
		cards := b.session.Cards()
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(cards) {
			return false, fmt.Errorf("no card %q", arg)
		}
		return false, b.session.Dispatch(ctx, hub.CardClick{URL: cards[n-1].URL})
	case ":reload":
		return false, b.hub.Refresh(ctx)
	}

	if strings.HasPrefix(command, ":") {
		return false, fmt.Errorf("unknown command %q", command)
	}
	return false, b.session.Dispatch(ctx, hub.SearchInput{Value: line})
}
