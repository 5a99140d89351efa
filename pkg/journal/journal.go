// Package journal is the application's append-only runtime log.
//
// Records are kept in memory so a console view or the journal command can show
// what happened during a session, and are mirrored to a charmbracelet logger
// as they arrive.
//
//	j := journal.New(logger)
//	j.Log("startup", "Culling card: inbox/outbox not found: Resizer", journal.Warning)
//	j.AttachContext(map[string]any{"inbox": in, "outbox": out})
package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/patchboard/atlas/pkg/errors"
)

// Level is the severity of a record.
type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// ParseFlag maps the short flags "i", "w" and "e" onto a Level.
func ParseFlag(flag string) (Level, error) {
	switch flag {
	case "i":
		return Info, nil
	case "w":
		return Warning, nil
	case "e":
		return Error, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown log flag %q", flag)
}

// Record is one journal entry.
type Record struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
}

// Journal is an append-only list of records. It is not safe for concurrent use.
type Journal struct {
	records []Record
	logger  *log.Logger
	now     func() time.Time
}

// New returns an empty journal mirroring to logger, which may be nil.
func New(logger *log.Logger) *Journal {
	return &Journal{logger: logger, now: time.Now}
}

// Log appends a record.
func (j *Journal) Log(category, message string, level Level) {
	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: j.now().UTC(),
		Level:     level,
		Category:  category,
		Message:   message,
	}
	j.records = append(j.records, rec)
	j.mirror(rec)
}

// Logf appends an info record with a formatted message.
func (j *Journal) Logf(category, format string, args ...any) {
	j.Log(category, fmt.Sprintf(format, args...), Info)
}

// AttachContext sets ctx as the context of the most recent record, replacing
// any context it had. It does nothing on an empty journal.
func (j *Journal) AttachContext(ctx map[string]any) {
	if len(j.records) == 0 {
		return
	}
	last := &j.records[len(j.records)-1]
	last.Context = maps.Clone(ctx)
	if j.logger != nil {
		j.logger.Debug("context", "category", last.Category, "fields", ctx)
	}
}

// Records returns a copy of every record in order.
func (j *Journal) Records() []Record {
	out := make([]Record, len(j.records))
	copy(out, j.records)
	return out
}

// Len returns the number of records.
func (j *Journal) Len() int { return len(j.records) }

// Clear empties the journal.
func (j *Journal) Clear() {
	j.records = nil
}

// WriteJSON writes every record to w as JSON lines.
func (j *Journal) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, r := range j.records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}

// ReadJSON decodes records written by [Journal.WriteJSON].
func ReadJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var out []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode record %d", len(out)+1)
		}
		out = append(out, rec)
	}
}

func (j *Journal) mirror(r Record) {
	if j.logger == nil {
		return
	}
	switch r.Level {
	case Warning:
		j.logger.Warn(r.Message, "category", r.Category)
	case Error:
		j.logger.Error(r.Message, "category", r.Category)
	default:
		j.logger.Info(r.Message, "category", r.Category)
	}
}
