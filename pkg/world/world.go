// Package world is the entity registry: it hands out integer entity ids and
// keeps the card reference and optional placement attached to each one.
//
// Entities may exist without a placement; a placed entity has a World-space
// position that the renderer projects onto the canvas. A World is not safe for
// concurrent use.
package world

import (
	"maps"
	"slices"

	"github.com/patchboard/atlas/pkg/card"
)

// ID identifies an entity. Ids start at 1 and are never reused within a World.
type ID int

// Position is a placement in World coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// World holds the entity tables.
type World struct {
	next     ID
	entities map[ID]struct{}
	cards    map[ID]card.Card
	spatial  map[ID]Position
}

// New returns an empty World whose first id is 1.
func New() *World {
	w := &World{}
	w.Reset()
	return w
}

// Reset drops every entity and restarts ids at 1.
func (w *World) Reset() {
	w.next = 1
	w.entities = make(map[ID]struct{})
	w.cards = make(map[ID]card.Card)
	w.spatial = make(map[ID]Position)
}

// Allocate creates a new entity and returns its id.
func (w *World) Allocate() ID {
	id := w.next
	w.next++
	w.entities[id] = struct{}{}
	return id
}

// Remove deletes id from every table. Unknown ids are ignored.
func (w *World) Remove(id ID) {
	delete(w.entities, id)
	delete(w.cards, id)
	delete(w.spatial, id)
}

// Exists reports whether id is a live entity.
func (w *World) Exists(id ID) bool {
	_, ok := w.entities[id]
	return ok
}

// SetCard binds c to id.
func (w *World) SetCard(id ID, c card.Card) {
	w.cards[id] = c
}

// Card returns the card bound to id.
func (w *World) Card(id ID) (card.Card, bool) {
	c, ok := w.cards[id]
	return c, ok
}

// Place records a World position for id, replacing any earlier one.
func (w *World) Place(id ID, p Position) {
	w.spatial[id] = p
}

// Unplace forgets the position of id.
func (w *World) Unplace(id ID) {
	delete(w.spatial, id)
}

// Position returns the placement of id.
func (w *World) Position(id ID) (Position, bool) {
	p, ok := w.spatial[id]
	return p, ok
}

// Placed reports whether id has a position.
func (w *World) Placed(id ID) bool {
	_, ok := w.spatial[id]
	return ok
}

// IDs returns every live entity in ascending order.
func (w *World) IDs() []ID {
	return slices.Sorted(maps.Keys(w.entities))
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.entities) }
