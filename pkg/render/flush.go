package render

import (
	"strings"

	"github.com/patchboard/atlas/pkg/coord"
	"github.com/patchboard/atlas/pkg/errors"
)

const elementTagPrefix = "ek|"

// Flush reconciles s with in. Declared keys are visited in entity then part
// order; each one reshapes its existing items or creates a new item. Items
// tagged [KindTag] whose element tag is no longer declared are then deleted.
// Items without an element tag are left alone, even when tagged [KindTag].
//
// Geometry goes through m: it is loaded as World and projected to Canvas with
// m's current camera, zoom and viewport.
func Flush(in Intent, s Surface, m *coord.Machine) error {
	declared := make(map[string]struct{}, len(in))
	for _, key := range in.Keys() {
		el := in[key]
		tag := key.Tag()
		declared[tag] = struct{}{}

		coords, err := project(el, m)
		if err != nil {
			return err
		}

		items := s.FindWithTag(tag)
		if len(items) == 0 {
			s.Create(el.Kind, coords, el.Text, el.Style, el.Tags)
			continue
		}
		for _, id := range items {
			s.SetCoords(id, coords)
			s.Configure(id, el.Text, el.Style)
		}
	}

	for _, id := range s.FindWithTag(KindTag) {
		tag := elementTag(s.Tags(id))
		if tag == "" {
			continue
		}
		if _, ok := declared[tag]; !ok {
			s.Delete(id)
		}
	}
	return nil
}

func project(el Element, m *coord.Machine) ([]int, error) {
	switch el.Kind {
	case KindRectangle:
		r := el.Rect
		m.SetRect(r.X0, r.Y0, r.X1, r.Y1)
		m.SetSpace(coord.World)
		if err := m.ProjectTo(coord.Canvas); err != nil {
			return nil, err
		}
		x0, y0, x1, y1 := m.XYXY()
		return []int{x0, y0, x1, y1}, nil
	case KindText:
		m.SetXY(el.At.X, el.At.Y)
		m.SetSpace(coord.World)
		if err := m.ProjectTo(coord.Canvas); err != nil {
			return nil, err
		}
		x, y := m.XY()
		return []int{x, y}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown element kind %q", el.Kind)
	}
}

func elementTag(tags []string) string {
	for _, t := range tags {
		if strings.HasPrefix(t, elementTagPrefix) {
			return t
		}
	}
	return ""
}
