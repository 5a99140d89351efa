package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/coord"
	"github.com/patchboard/atlas/pkg/project"
)

type projectOpts struct {
	view  viewOpts
	from  string // space of the input point
	read  string // source token read from the box around the point
	store string // destination token the World point is stored into
	size  int    // half size of the box
}

func (c *CLI) projectCommand() *cobra.Command {
	opts := projectOpts{from: "World", size: 30}

	cmd := &cobra.Command{
		Use:   "project <x> <y>",
		Short: "Show where a point lands in the other space",
		Long: `Project converts the point (x, y) from World to canvas coordinates (or from
canvas to World with --from Canvas) with the given camera, then converts the
result back. With a zoom ratio below one the round trip may drift by more
than one unit.

--read takes one of attachment, event, center, center-south, nw, ne, se, sw or
label and reads that point from a box of 2*--size units around (x, y) before
converting. --store writes the World point into nw, ne, se, sw, center,
attachment or cam and prints the register it changed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				return runProject(s, args, opts)
			})
		},
	}

	opts.view.register(cmd)
	cmd.Flags().StringVar(&opts.from, "from", opts.from, "space of the input point: World or Canvas")
	cmd.Flags().StringVar(&opts.read, "read", "", "point of the box to convert, e.g. nw or center-south")
	cmd.Flags().StringVar(&opts.store, "store", "", "register to store the World point into, e.g. cam")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "half size of the box used by --read")
	return cmd
}

func runProject(s *project.Session, args []string, opts projectOpts) error {
	x, err := parseInt("x", args[0])
	if err != nil {
		return err
	}
	y, err := parseInt("y", args[1])
	if err != nil {
		return err
	}
	from, err := coord.ParseSpace(opts.from)
	if err != nil {
		return err
	}

	m := s.Machine
	if _, _, err := opts.view.apply(m, s.Config); err != nil {
		return err
	}
	m.SetXY(x, y)
	m.SetSpace(from)
	m.ExplodePoint(opts.size)
	if opts.read != "" {
		src, err := coord.ParseSource(opts.read)
		if err != nil {
			return err
		}
		if err := m.LoadPoint(src); err != nil {
			return err
		}
	}

	in, inSpace := m.Point(), m.Space()
	to := coord.Canvas
	if inSpace == coord.Canvas {
		to = coord.World
	}
	if err := m.ProjectTo(to); err != nil {
		return err
	}
	out := m.Point()
	if err := m.ProjectTo(inSpace); err != nil {
		return err
	}
	back := m.Point()

	num, den := m.Zoom()
	w, h := m.Viewport()
	cam := m.Camera()
	if opts.read != "" {
		printKeyValue("Read", opts.read)
	}
	printKeyValue(inSpace.String(), fmt.Sprintf("%d, %d", in.X, in.Y))
	printKeyValue(to.String(), fmt.Sprintf("%d, %d", out.X, out.Y))
	printKeyValue("Round trip", fmt.Sprintf("%d, %d", back.X, back.Y))
	printDetail("zoom %d/%d · camera %d, %d · viewport %dx%d", num, den, cam.X, cam.Y, w, h)

	if opts.store == "" {
		return nil
	}
	return storeProjected(m, opts.store)
}

// storeProjected stores the machine's point, taken in World space, into the
// register named by token and prints that register.
func storeProjected(m *coord.Machine, token string) error {
	dst, err := coord.ParseDest(token)
	if err != nil {
		return err
	}
	if err := m.ProjectTo(coord.World); err != nil {
		return err
	}

	switch dst {
	case coord.DstAttachment:
		err = m.StoreRect(dst)
	default:
		err = m.StorePoint(dst)
	}
	if err != nil {
		return err
	}

	switch dst {
	case coord.DstCam:
		cam := m.Camera()
		printKeyValue("Camera", fmt.Sprintf("%d, %d", cam.X, cam.Y))
	case coord.DstAttachment:
		a := m.Attachment()
		printKeyValue("Attachment", fmt.Sprintf("%d, %d → %d, %d", a.X0, a.Y0, a.X1, a.Y1))
	default:
		r := m.Rect()
		printKeyValue("Box", fmt.Sprintf("%d, %d → %d, %d", r.X0, r.Y0, r.X1, r.Y1))
	}
	return nil
}
