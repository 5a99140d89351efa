// Package project opens a patchboard working directory and runs startup.
//
// A project keeps its state under <root>/.patchboard-atlas: the imported
// cards, the World placements and the settings file. The camera is never
// written; every session starts at the origin with a 1/1 zoom.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/patchboard/atlas/pkg/card"
	"github.com/patchboard/atlas/pkg/config"
	"github.com/patchboard/atlas/pkg/coord"
	atlaserr "github.com/patchboard/atlas/pkg/errors"
	"github.com/patchboard/atlas/pkg/journal"
	"github.com/patchboard/atlas/pkg/registry"
	"github.com/patchboard/atlas/pkg/world"
)

const (
	DirName        = ".patchboard-atlas"
	CardsDirName   = "component-id-cards"
	PlacementsFile = "placements.json"
	JournalFile    = "journal.jsonl"
	CacheDirName   = "cache"
)

// Dir returns the state directory for root.
func Dir(root string) string { return filepath.Join(root, DirName) }

// CardsDir returns the persisted card directory for root.
func CardsDir(root string) string { return filepath.Join(Dir(root), CardsDirName) }

// CacheDir returns the layout cache directory for root.
func CacheDir(root string) string { return filepath.Join(Dir(root), CacheDirName) }

// Session is one open project.
type Session struct {
	Root     string
	Config   config.Config
	World    *world.World
	Registry *registry.Registry
	Store    *card.Store
	Journal  *journal.Journal
	Machine  *coord.Machine
}

// Open creates the state directories if needed, loads settings and persisted
// cards, culls cards whose folders are gone, and restores placements of the
// cards that survive.
func Open(root string, logger *log.Logger) (*Session, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	cfg, err := config.Load(Dir(abs))
	if err != nil {
		return nil, err
	}

	store, err := card.NewStore(CardsDir(abs))
	if err != nil {
		return nil, fmt.Errorf("create cards dir: %w", err)
	}

	w := world.New()
	j := journal.New(logger)
	s := &Session{
		Root:     abs,
		Config:   cfg,
		World:    w,
		Registry: registry.New(w, store, j),
		Store:    store,
		Journal:  j,
		Machine:  coord.NewMachine(),
	}
	s.Machine.SetViewport(cfg.Viewport.Width, cfg.Viewport.Height)

	res, err := s.Registry.LoadPersisted()
	if err != nil {
		return nil, err
	}
	culled, err := s.Registry.Cull(nil)
	if err != nil {
		return nil, err
	}
	if err := s.loadPlacements(); err != nil {
		return nil, err
	}
	j.Logf("startup", "Loaded %d cards (%d failed, %d culled)", res.OK-len(culled), res.Failed, len(culled))
	return s, nil
}

func (s *Session) placementsPath() string { return filepath.Join(Dir(s.Root), PlacementsFile) }

func (s *Session) loadPlacements() error {
	data, err := os.ReadFile(s.placementsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read placements: %w", err)
	}

	var byKey map[string]world.Position
	if err := json.Unmarshal(data, &byKey); err != nil {
		return atlaserr.Wrap(atlaserr.ErrCodeInvalidFormat, err, "parse %s", PlacementsFile)
	}
	for key, pos := range byKey {
		if id, ok := s.Registry.EntityFor(key); ok {
			s.World.Place(id, pos)
		}
	}
	return nil
}

// SavePlacements writes the World position of every placed entity, keyed by
// its card's canonical inbox key. Entities without a card are skipped.
func (s *Session) SavePlacements() error {
	byKey := map[string]world.Position{}
	for _, id := range s.World.IDs() {
		pos, placed := s.World.Position(id)
		c, ok := s.World.Card(id)
		if !placed || !ok {
			continue
		}
		byKey[c.Key()] = pos
	}
	data, err := json.MarshalIndent(byKey, "", "  ")
	if err != nil {
		return fmt.Errorf("encode placements: %w", err)
	}
	if err := os.WriteFile(s.placementsPath(), data, 0o644); err != nil {
		return fmt.Errorf("write placements: %w", err)
	}
	return nil
}

// JournalPath is where [Session.FlushJournal] appends records.
func (s *Session) JournalPath() string { return filepath.Join(Dir(s.Root), JournalFile) }

// FlushJournal appends the in-memory journal to the project's journal file as
// JSON lines and empties it.
func (s *Session) FlushJournal() error {
	if s.Journal.Len() == 0 {
		return nil
	}
	f, err := os.OpenFile(s.JournalPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if err := s.Journal.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	s.Journal.Clear()
	return nil
}

// Reset clears the in-memory session: journal, entities, card cache and the
// coordinate machine. Files on disk are untouched.
func (s *Session) Reset() {
	s.Journal.Clear()
	s.World.Reset()
	s.Registry.Clear()
	s.Machine.Reset()
	s.Machine.SetViewport(s.Config.Viewport.Width, s.Config.Viewport.Height)
}

// Entity resolves an entity id typed by the user.
func (s *Session) Entity(id world.ID) (card.Card, error) {
	if !s.World.Exists(id) {
		return card.Card{}, atlaserr.New(atlaserr.ErrCodeNotFound, "entity %d does not exist", id)
	}
	c, _ := s.World.Card(id)
	return c, nil
}
