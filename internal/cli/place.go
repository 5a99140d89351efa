package cli

import (
	"github.com/spf13/cobra"

	"github.com/patchboard/atlas/pkg/project"
	"github.com/patchboard/atlas/pkg/render"
	"github.com/patchboard/atlas/pkg/world"
)

type placeOpts struct {
	view viewOpts
	pick bool
}

func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <id> <x> <y>",
		Short: "Place an entity at a canvas click position",
		Long: `Place converts the canvas position (x, y) to World coordinates through the
camera given by --cam and --zoom, and records it as the entity's placement.
With --pick the entity is chosen interactively and only x and y are given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.pick {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *project.Session) error {
				return runPlace(s, args, opts)
			})
		},
	}

	opts.view.register(cmd)
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the entity interactively")

	return cmd
}

func runPlace(s *project.Session, args []string, opts placeOpts) error {
	var id world.ID
	if opts.pick {
		items := unplaced(s.World)
		if len(items) == 0 {
			printInfo("Every entity is already placed")
			return nil
		}
		picked, ok, err := runPicker(items)
		if err != nil {
			return err
		}
		if !ok {
			printDetail("No selection made")
			return nil
		}
		id = picked
	} else {
		n, err := parseInt("id", args[0])
		if err != nil {
			return err
		}
		id = world.ID(n)
		args = args[1:]
	}

	x, err := parseInt("x", args[0])
	if err != nil {
		return err
	}
	y, err := parseInt("y", args[1])
	if err != nil {
		return err
	}

	c, err := s.Entity(id)
	if err != nil {
		return err
	}
	width, height, err := opts.view.apply(s.Machine, s.Config)
	if err != nil {
		return err
	}

	r := render.NewRenderer(s.World, s.Machine, render.NewScene(width, height))
	pos, err := r.Place(id, x, y)
	if err != nil {
		return err
	}
	if err := s.SavePlacements(); err != nil {
		return err
	}

	name := c.Name()
	if name == "" {
		name = c.Inbox
	}
	printSuccess("Placed %s at World (%d, %d)", StyleHighlight.Render(name), pos.X, pos.Y)
	return nil
}
