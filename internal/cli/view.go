package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/config"
	"github.com/patchboard/atlas/pkg/coord"
	"github.com/patchboard/atlas/pkg/errors"
)

// viewOpts holds the camera flags shared by place, render and project.
type viewOpts struct {
	zoom   string // "n/d"
	cam    string // "x,y" in World units
	width  int    // 0 means the configured viewport
	height int
}

func (o *viewOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.zoom, "zoom", "1/1", "zoom ratio as num/den")
	cmd.Flags().StringVar(&o.cam, "cam", "0,0", "camera centre in World units as x,y")
	cmd.Flags().IntVar(&o.width, "width", 0, "viewport width (default from config)")
	cmd.Flags().IntVar(&o.height, "height", 0, "viewport height (default from config)")
}

// apply loads the camera, zoom and viewport into m and returns the viewport.
func (o viewOpts) apply(m *coord.Machine, cfg config.Config) (width, height int, err error) {
	num, den, err := parseRatio(o.zoom)
	if err != nil {
		return 0, 0, err
	}
	cx, cy, err := parsePair(o.cam)
	if err != nil {
		return 0, 0, err
	}

	width, height = cfg.Viewport.Width, cfg.Viewport.Height
	if o.width > 0 {
		width = o.width
	}
	if o.height > 0 {
		height = o.height
	}

	m.SetZoom(num, den)
	m.SetViewport(width, height)
	m.SetXY(cx, cy)
	m.SetSpace(coord.World)
	if err := m.StorePoint(coord.DstCam); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// parseRatio reads "n/d" or a bare "n". Zero on either side is rejected: a
// zero denominator cannot be projected and a zero numerator cannot be inverted.
func parseRatio(s string) (num, den int, err error) {
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = "1"
	}
	num, err1 := strconv.Atoi(strings.TrimSpace(numStr))
	den, err2 := strconv.Atoi(strings.TrimSpace(denStr))
	if err1 != nil || err2 != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "zoom %q: want num/den", s)
	}
	if num == 0 || den == 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "zoom %q: num and den must be non-zero", s)
	}
	return num, den, nil
}

// parsePair reads "x,y".
func parsePair(s string) (x, y int, err error) {
	xs, ys, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "%q: want x,y", s)
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(xs))
	y, err2 := strconv.Atoi(strings.TrimSpace(ys))
	if err1 != nil || err2 != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "%q: want integer x,y", s)
	}
	return x, y, nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, s)
	}
	return n, nil
}
