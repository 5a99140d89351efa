package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/errors"
	"github.com/patchboard/atlas/pkg/project"
	"github.com/patchboard/atlas/pkg/render"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

type renderOpts struct {
	view       viewOpts
	output     string
	format     string
	background string
	tags       bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG, background: "#111822"}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render placed components to SVG or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatSVG && opts.format != formatPNG {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q: want svg or png", opts.format)
			}
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				return runRender(s, opts)
			})
		},
	}

	opts.view.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default atlas.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png")
	cmd.Flags().StringVar(&opts.background, "background", opts.background, "background colour, empty for transparent")
	cmd.Flags().BoolVar(&opts.tags, "tags", false, "emit item tags as data attributes (svg)")

	return cmd
}

// drawScene syncs the placed entities of s onto a fresh scene.
func drawScene(s *project.Session, view viewOpts) (*render.Scene, error) {
	width, height, err := view.apply(s.Machine, s.Config)
	if err != nil {
		return nil, err
	}
	sc := render.NewScene(width, height)
	if err := render.NewRenderer(s.World, s.Machine, sc).Sync(); err != nil {
		return nil, err
	}
	return sc, nil
}

func runRender(s *project.Session, opts renderOpts) error {
	sc, err := drawScene(s, opts.view)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = appName + "." + opts.format
	}
	if err := writeRender(out, sc, opts); err != nil {
		return err
	}

	printSuccess("Rendered %d item(s)", sc.Len())
	printFile(out)
	return nil
}

// writeRender encodes sc in opts.format and writes it to path. Nothing is
// written when encoding fails.
func writeRender(path string, sc *render.Scene, opts renderOpts) error {
	var buf bytes.Buffer
	var err error
	switch opts.format {
	case formatPNG:
		err = render.WritePNG(&buf, sc, opts.background)
	default:
		var svgOpts []render.SVGOption
		if opts.background != "" {
			svgOpts = append(svgOpts, render.WithBackground(opts.background))
		}
		if opts.tags {
			svgOpts = append(svgOpts, render.WithTags())
		}
		err = render.WriteSVG(&buf, sc, svgOpts...)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
