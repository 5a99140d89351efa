package render

import "slices"

// ItemID identifies a live item on a [Surface].
type ItemID int

// Surface is the retained drawing target the reconciler writes to. Coordinates
// are device pixels: four values for a rectangle, two for a text anchor.
type Surface interface {
	Size() (width, height int)
	FindWithTag(tag string) []ItemID
	Tags(id ItemID) []string
	Create(kind Kind, coords []int, text string, st Style, tags []string) ItemID
	SetCoords(id ItemID, coords []int)
	Configure(id ItemID, text string, st Style)
	Delete(id ItemID)
}

// Item is one live shape on a [Scene].
type Item struct {
	ID     ItemID
	Kind   Kind
	Coords []int
	Text   string
	Style  Style
	Tags   []string
}

// HasTag reports whether the item carries tag.
func (it Item) HasTag(tag string) bool { return slices.Contains(it.Tags, tag) }

// Scene is an in-memory [Surface]. Items keep their creation order, which is
// also their paint order.
type Scene struct {
	width, height int
	next          ItemID
	order         []ItemID
	items         map[ItemID]*Item
}

var _ Surface = (*Scene)(nil)

// NewScene returns an empty scene of the given device size.
func NewScene(width, height int) *Scene {
	return &Scene{width: width, height: height, next: 1, items: make(map[ItemID]*Item)}
}

func (s *Scene) Size() (int, int) { return s.width, s.height }

// Resize changes the device size. Items are not touched.
func (s *Scene) Resize(width, height int) { s.width, s.height = width, height }

func (s *Scene) FindWithTag(tag string) []ItemID {
	var out []ItemID
	for _, id := range s.order {
		if s.items[id].HasTag(tag) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Scene) Tags(id ItemID) []string {
	if it, ok := s.items[id]; ok {
		return slices.Clone(it.Tags)
	}
	return nil
}

func (s *Scene) Create(kind Kind, coords []int, text string, st Style, tags []string) ItemID {
	id := s.next
	s.next++
	s.items[id] = &Item{
		ID:     id,
		Kind:   kind,
		Coords: slices.Clone(coords),
		Text:   text,
		Style:  st,
		Tags:   slices.Clone(tags),
	}
	s.order = append(s.order, id)
	return id
}

func (s *Scene) SetCoords(id ItemID, coords []int) {
	if it, ok := s.items[id]; ok {
		it.Coords = slices.Clone(coords)
	}
}

func (s *Scene) Configure(id ItemID, text string, st Style) {
	if it, ok := s.items[id]; ok {
		it.Text = text
		it.Style = st
	}
}

func (s *Scene) Delete(id ItemID) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(o ItemID) bool { return o == id })
}

// Items returns copies of the live items in paint order.
func (s *Scene) Items() []Item {
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		it := *s.items[id]
		it.Coords = slices.Clone(it.Coords)
		it.Tags = slices.Clone(it.Tags)
		out = append(out, it)
	}
	return out
}

// Len reports the number of live items.
func (s *Scene) Len() int { return len(s.order) }
