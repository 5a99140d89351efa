// Package card defines Component ID Cards: the JSON records describing one
// patchboard component, its inbox and outbox folders and the named channels it
// reads and writes.
//
// A card file looks like:
//
//	{
//	  "schema_version": 1,
//	  "title": "Resizer",
//	  "inbox": "/srv/patchboard/resizer/in",
//	  "outbox": "/srv/patchboard/resizer/out",
//	  "channels": {"in": ["raw"], "out": ["thumbs"]}
//	}
//
// Cards are identified by the canonical form of their inbox path (see
// [CanonicalKey]); two cards with the same inbox are the same component.
package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/patchboard/atlas/pkg/errors"
)

// SchemaVersion is the only card schema this package accepts.
const SchemaVersion = 1

// Card is a Component ID Card.
//
// Title and Channels are pointers so that a missing field can be told apart
// from an empty one during validation.
type Card struct {
	SchemaVersion int       `json:"schema_version"`
	Inbox         string    `json:"inbox"`
	Outbox        string    `json:"outbox"`
	Title         *string   `json:"title"`
	Channels      *Channels `json:"channels"`
}

// Channels lists the channel names a component consumes and produces.
type Channels struct {
	In  []string `json:"in"`
	Out []string `json:"out"`
}

// Name returns the card title, or "" when it has none.
func (c Card) Name() string {
	if c.Title == nil {
		return ""
	}
	return *c.Title
}

// Key returns the canonical inbox key of the card.
func (c Card) Key() string { return CanonicalKey(c.Inbox) }

// In returns the input channels, nil when the card declares none.
func (c Card) In() []string {
	if c.Channels == nil {
		return nil
	}
	return c.Channels.In
}

// Out returns the output channels, nil when the card declares none.
func (c Card) Out() []string {
	if c.Channels == nil {
		return nil
	}
	return c.Channels.Out
}

// Decode reads one card from r. Malformed JSON and fields of the wrong type are
// reported as INVALID_CARD; the result is not validated.
func Decode(r io.Reader) (Card, error) {
	var c Card
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Card{}, errors.Wrap(errors.ErrCodeInvalidCard, err, "invalid JSON")
	}
	return c, nil
}

// Parse decodes a card from data.
func Parse(data []byte) (Card, error) {
	return Decode(bytes.NewReader(data))
}

// Validate checks c against the card schema and returns the first problem found
// as an INVALID_CARD error.
func Validate(c Card) error {
	if c.SchemaVersion != SchemaVersion {
		return invalid("schema_version must equal %d", SchemaVersion)
	}
	if err := checkFolder("inbox", c.Inbox); err != nil {
		return err
	}
	if err := checkFolder("outbox", c.Outbox); err != nil {
		return err
	}
	if c.Title == nil {
		return invalid("title must be a string")
	}
	if c.Channels == nil {
		return invalid("channels must be an object")
	}
	if err := checkChannels("channels.in", c.Channels.In); err != nil {
		return err
	}
	return checkChannels("channels.out", c.Channels.Out)
}

func checkFolder(field, path string) error {
	if path == "" {
		return invalid("%s must be a non-empty string", field)
	}
	if !filepath.IsAbs(path) {
		return invalid("%s must be an absolute path", field)
	}
	return nil
}

func checkChannels(field string, names []string) error {
	if names == nil {
		return invalid("%s must be a list", field)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return invalid("%s contains duplicate names", field)
		}
		seen[n] = true
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidCard, format, args...)
}

// CanonicalKey normalises an inbox path into the registry key: absolute and
// cleaned, and case-folded on Windows.
func CanonicalKey(inbox string) string {
	key, err := filepath.Abs(inbox)
	if err != nil {
		key = filepath.Clean(inbox)
	}
	if runtime.GOOS == "windows" {
		key = strings.ToLower(key)
	}
	return key
}

var filenameReplacer = strings.NewReplacer(`\`, "_", "/", "_", ":", "_")

// Filename derives the persisted file name for a canonical key.
func Filename(key string) string {
	return filenameReplacer.Replace(key) + ".json"
}

// String implements fmt.Stringer.
func (c Card) String() string {
	return fmt.Sprintf("%s (%s)", c.Name(), c.Inbox)
}
