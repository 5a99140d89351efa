package render

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/patchboard/atlas/pkg/coord"
	"github.com/patchboard/atlas/pkg/world"
)

// Component geometry and palette.
const (
	ComponentW = 120
	ComponentH = 60

	PerimeterOutline = "#4488cc"
	PerimeterFill    = "#223344"
	PerimeterWidth   = 2
	TitleFill        = "#ccddee"
	TitleFont        = "Consolas"
	TitleSize        = 10

	// KindTag marks every item owned by the reconciler.
	KindTag = "kind|component"
)

// Kind is the shape of an element.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindText      Kind = "text"
)

// ElementKey identifies one declared element: a part of an entity.
type ElementKey struct {
	Entity world.ID
	Part   string
}

// Tag serializes k into its canvas tag.
func (k ElementKey) Tag() string {
	return fmt.Sprintf("ek|entity|%d|%s", k.Entity, k.Part)
}

// EntityTag is the grouping tag shared by all items of an entity.
func EntityTag(id world.ID) string {
	return fmt.Sprintf("entity|%d", id)
}

// Font is a text face request.
type Font struct {
	Family string
	Size   int
}

// Style carries the paint attributes of an element.
type Style struct {
	Outline string
	Fill    string
	Width   int
	Font    Font
}

// Element describes one shape in World coordinates. Rectangles use Rect, text
// uses At as its centre anchor.
type Element struct {
	Kind  Kind
	Rect  coord.Rect
	At    coord.Point
	Text  string
	Style Style
	Tags  []string
}

// Intent is the full set of declared elements.
type Intent map[ElementKey]Element

// Keys returns the declared keys ordered by entity, then part.
func (in Intent) Keys() []ElementKey {
	keys := make([]ElementKey, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ElementKey) int {
		if c := cmp.Compare(a.Entity, b.Entity); c != 0 {
			return c
		}
		return strings.Compare(a.Part, b.Part)
	})
	return keys
}

// Rule declares elements for one placed entity centred at (x, y).
type Rule func(w *world.World, id world.ID, x, y int, in Intent)

// Rules are applied in order to each placed entity.
var Rules = []Rule{Perimeter, Title}

// Perimeter declares the component outline.
func Perimeter(_ *world.World, id world.ID, x, y int, in Intent) {
	halfW, halfH := ComponentW/2, ComponentH/2
	key := ElementKey{Entity: id, Part: "perimeter"}
	in[key] = Element{
		Kind:  KindRectangle,
		Rect:  coord.Rect{X0: x - halfW, Y0: y - halfH, X1: x + halfW, Y1: y + halfH},
		Style: Style{Outline: PerimeterOutline, Fill: PerimeterFill, Width: PerimeterWidth},
		Tags:  []string{key.Tag(), EntityTag(id), KindTag},
	}
}

// Title declares the card title label. Entities without a card get none.
func Title(w *world.World, id world.ID, x, y int, in Intent) {
	c, ok := w.Card(id)
	if !ok {
		return
	}
	key := ElementKey{Entity: id, Part: "title"}
	in[key] = Element{
		Kind:  KindText,
		At:    coord.Point{X: x, Y: y},
		Text:  c.Name(),
		Style: Style{Fill: TitleFill, Font: Font{Family: TitleFont, Size: TitleSize}},
		Tags:  []string{key.Tag(), EntityTag(id), KindTag},
	}
}

// Rebuild computes the intent for every placed entity in id order.
func Rebuild(w *world.World) Intent {
	in := make(Intent)
	for _, id := range w.IDs() {
		p, ok := w.Position(id)
		if !ok {
			continue
		}
		for _, rule := range Rules {
			rule(w, id, p.X, p.Y, in)
		}
	}
	return in
}
