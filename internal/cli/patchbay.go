package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/cache"
	"github.com/patchboard/atlas/pkg/project"
	"github.com/patchboard/atlas/pkg/render/patchbay"
)

type patchbayOpts struct {
	output  string
	dot     bool
	noCache bool
}

func (c *CLI) patchbayCommand() *cobra.Command {
	var opts patchbayOpts

	cmd := &cobra.Command{
		Use:   "patchbay",
		Short: "Draw the channel wiring between cards",
		Long: `Patchbay draws one node per imported card and an edge wherever a channel in
one card's out list matches a channel in another card's in list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				return runPatchbay(cmd.Context(), s, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default patchbay.svg, stdout with --dot)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "write Graphviz DOT source instead of SVG")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "lay out again even if the graph is unchanged")

	return cmd
}

func runPatchbay(ctx context.Context, s *project.Session, opts patchbayOpts) error {
	cards := s.Registry.Cards()
	dot := patchbay.ToDOT(cards)

	if opts.dot && opts.output == "" {
		_, err := fmt.Fprint(stdout, dot)
		return err
	}

	data := []byte(dot)
	out := opts.output
	if !opts.dot {
		svg, err := layoutPatchbay(ctx, newLayoutCache(s, opts.noCache), dot)
		if err != nil {
			return err
		}
		data = svg
		if out == "" {
			out = "patchbay.svg"
		}
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	printSuccess("Drew %d card(s), %d patch(es)", len(cards), len(patchbay.Edges(cards)))
	printFile(out)
	return nil
}

func newLayoutCache(s *project.Session, disabled bool) cache.Cache {
	if disabled {
		return cache.NullCache{}
	}
	c, err := cache.NewFileCache(project.CacheDir(s.Root))
	if err != nil {
		return cache.NullCache{}
	}
	return c
}

// layoutPatchbay returns the SVG for dot, from c when the same graph was laid
// out before.
func layoutPatchbay(ctx context.Context, c cache.Cache, dot string) ([]byte, error) {
	defer c.Close()
	logger := loggerFromContext(ctx)
	key := cache.Key("patchbay", []byte(dot))

	if svg, hit, err := c.Get(ctx, key); err == nil && hit {
		logger.Debug("patchbay layout cached", "key", key[:17])
		return svg, nil
	}

	prog := newProgress(logger)
	svg, err := patchbay.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	prog.done("Laid out patchbay")
	if err := c.Set(ctx, key, svg, 0); err != nil {
		logger.Warn("cannot cache patchbay layout", "err", err)
	}
	return svg, nil
}
