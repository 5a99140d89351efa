package render

import (
	"time"

	"github.com/patchboard/atlas/pkg/coord"
	"github.com/patchboard/atlas/pkg/errors"
	"github.com/patchboard/atlas/pkg/observability"
	"github.com/patchboard/atlas/pkg/world"
)

// Renderer keeps a surface in step with a world through one coordinate machine.
type Renderer struct {
	world   *world.World
	machine *coord.Machine
	surface Surface
}

// NewRenderer binds w, m and s. The renderer owns m's viewport register and
// overwrites it on every [Renderer.Sync].
func NewRenderer(w *world.World, m *coord.Machine, s Surface) *Renderer {
	return &Renderer{world: w, machine: m, surface: s}
}

// Machine returns the machine used for projection, for setting camera and zoom.
func (r *Renderer) Machine() *coord.Machine { return r.machine }

// Surface returns the bound surface.
func (r *Renderer) Surface() Surface { return r.surface }

// Sync reads the surface size into the viewport, rebuilds the intent and
// flushes it.
func (r *Renderer) Sync() error {
	start := time.Now()
	w, h := r.surface.Size()
	r.machine.SetViewport(w, h)
	in := Rebuild(r.world)
	err := Flush(in, r.surface, r.machine)
	observability.Render().OnSync(len(in), time.Since(start), err)
	return err
}

// Place drops an unplaced entity at a device click position. The click goes
// through the event register and is projected back to World; the result is
// recorded as the entity's placement and the surface is synced.
func (r *Renderer) Place(id world.ID, clickX, clickY int) (world.Position, error) {
	if !r.world.Exists(id) {
		return world.Position{}, errors.New(errors.ErrCodeNotFound, "entity %d does not exist", id)
	}
	if r.world.Placed(id) {
		return world.Position{}, errors.New(errors.ErrCodeAlreadyPlaced, "entity %d is already placed", id)
	}

	w, h := r.surface.Size()
	m := r.machine
	m.SetViewport(w, h)
	m.SetEvent(clickX, clickY)
	if err := m.LoadPoint(coord.SrcEvent); err != nil {
		return world.Position{}, err
	}
	if err := m.ProjectTo(coord.World); err != nil {
		return world.Position{}, err
	}
	x, y := m.XY()
	pos := world.Position{X: x, Y: y}
	r.world.Place(id, pos)
	observability.Render().OnPlace(int(id), x, y)

	return pos, r.Sync()
}
