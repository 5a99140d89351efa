// Package registry is the cache of imported Component ID Cards.
//
// Cards are keyed by canonical inbox path. Importing a card whose inbox is
// already known replaces the old card and removes its entity, so a component
// never shows up twice. The registry persists what it imports through a
// [card.Store] and logs housekeeping to a [journal.Journal].
package registry

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/patchboard/atlas/pkg/card"
	"github.com/patchboard/atlas/pkg/journal"
	"github.com/patchboard/atlas/pkg/observability"
	"github.com/patchboard/atlas/pkg/world"
)

// Registry joins the card cache, its on-disk store and the entity registry.
type Registry struct {
	cards   map[string]card.Card
	world   *world.World
	store   *card.Store
	journal *journal.Journal
}

// New returns an empty registry. store and j may be nil, in which case imports
// are not persisted and nothing is logged.
func New(w *world.World, store *card.Store, j *journal.Journal) *Registry {
	return &Registry{
		cards:   make(map[string]card.Card),
		world:   w,
		store:   store,
		journal: j,
	}
}

// Ingest validates c and records it under its canonical key. An entity already
// bound to that key is removed first. Ingest does not allocate an entity.
func (r *Registry) Ingest(c card.Card) (string, error) {
	if err := card.Validate(c); err != nil {
		return "", err
	}
	key := c.Key()
	if id, ok := r.EntityFor(key); ok {
		r.world.Remove(id)
	}
	r.cards[key] = c
	return key, nil
}

// IngestFile reads, validates and ingests one card file.
func (r *Registry) IngestFile(path string) (card.Card, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return card.Card{}, "", fmt.Errorf("cannot read file: %w", err)
	}
	defer f.Close()

	c, err := card.Decode(f)
	if err != nil {
		return card.Card{}, "", err
	}
	key, err := r.Ingest(c)
	if err != nil {
		return card.Card{}, "", err
	}
	return c, key, nil
}

// Result counts the outcome of a folder import.
type Result struct {
	OK     int
	Failed int
	IDs    []world.ID
}

// IngestFolder ingests every *.json file in dir in name order. Each valid card
// is persisted and bound to a freshly allocated entity; invalid files are
// counted and logged.
func (r *Registry) IngestFolder(dir string) (Result, error) {
	paths, err := card.ListJSON(dir)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, p := range paths {
		c, key, err := r.IngestFile(p)
		observability.Registry().OnIngest(key, err)
		if err != nil {
			res.Failed++
			r.logf("import", journal.Warning, "Skipping %s: %v", p, err)
			continue
		}
		if r.store != nil {
			if err := r.store.Save(c); err != nil {
				return res, err
			}
		}
		id := r.world.Allocate()
		r.world.SetCard(id, c)
		res.OK++
		res.IDs = append(res.IDs, id)
	}
	return res, nil
}

// LoadPersisted ingests everything in the store. A registry without a store
// loads nothing.
func (r *Registry) LoadPersisted() (Result, error) {
	if r.store == nil {
		return Result{}, nil
	}
	return r.IngestFolder(r.store.Dir())
}

// Cull drops every card whose inbox or outbox folder fails isDir, removing its
// entity and persisted file. It returns the culled keys in order. A nil isDir
// checks the local filesystem.
func (r *Registry) Cull(isDir func(string) bool) ([]string, error) {
	if isDir == nil {
		isDir = dirExists
	}

	var culled []string
	for _, key := range r.Keys() {
		c := r.cards[key]
		if isDir(c.Inbox) && isDir(c.Outbox) {
			continue
		}
		r.logf("startup", journal.Warning, "Culling card: inbox/outbox not found: %s", c.Name())
		if r.journal != nil {
			r.journal.AttachContext(map[string]any{"inbox": c.Inbox, "outbox": c.Outbox})
		}
		if id, ok := r.EntityFor(key); ok {
			r.world.Remove(id)
		}
		if r.store != nil {
			if err := r.store.Delete(key); err != nil {
				return culled, err
			}
		}
		delete(r.cards, key)
		observability.Registry().OnCull(key)
		culled = append(culled, key)
	}
	return culled, nil
}

// EntityFor returns the entity whose card has the given canonical key.
func (r *Registry) EntityFor(key string) (world.ID, bool) {
	for _, id := range r.world.IDs() {
		if c, ok := r.world.Card(id); ok && c.Key() == key {
			return id, true
		}
	}
	return 0, false
}

// Lookup returns the card stored under key.
func (r *Registry) Lookup(key string) (card.Card, bool) {
	c, ok := r.cards[key]
	return c, ok
}

// Keys returns every canonical key in sorted order.
func (r *Registry) Keys() []string {
	return slices.Sorted(maps.Keys(r.cards))
}

// Cards returns every card ordered by key.
func (r *Registry) Cards() []card.Card {
	keys := r.Keys()
	out := make([]card.Card, len(keys))
	for i, k := range keys {
		out[i] = r.cards[k]
	}
	return out
}

// Len returns the number of cards.
func (r *Registry) Len() int { return len(r.cards) }

// Clear empties the card cache. Entities and persisted files are untouched.
func (r *Registry) Clear() {
	clear(r.cards)
}

func (r *Registry) logf(category string, level journal.Level, format string, args ...any) {
	if r.journal == nil {
		return
	}
	r.journal.Log(category, fmt.Sprintf(format, args...), level)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
