package card

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Store persists cards as JSON files in a single directory, one file per
// canonical inbox key.
type Store struct {
	dir string
}

// NewStore creates dir if needed and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create card dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the card files.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, Filename(key))
}

// Save writes c under its canonical key, replacing any earlier copy.
func (s *Store) Save(c Card) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	if err := os.WriteFile(s.path(c.Key()), data, 0o644); err != nil {
		return fmt.Errorf("write card file: %w", err)
	}
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove card file: %w", err)
	}
	return nil
}

// Has reports whether a file for key exists.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// List returns the paths of every *.json file in the store, sorted.
func (s *Store) List() ([]string, error) {
	return ListJSON(s.dir)
}

// ListJSON returns the sorted *.json files directly inside dir.
func ListJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read card dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}
