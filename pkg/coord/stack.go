package coord

import "github.com/patchboard/atlas/pkg/errors"

// Snapshot is one saved entry on the machine's stack: a [PointSnapshot] or a
// [RectSnapshot]. Entries remember their kind so a pop of the other kind fails
// instead of reading garbage.
type Snapshot interface {
	snapshotKind() string
}

// PointSnapshot is a saved point register with its space tag.
type PointSnapshot struct {
	Point Point
	Space Space
}

// RectSnapshot is a saved rectangle register with its space tag.
type RectSnapshot struct {
	Rect  Rect
	Space Space
}

func (PointSnapshot) snapshotKind() string { return "point" }
func (RectSnapshot) snapshotKind() string  { return "rect" }

// PushPoint saves (x, y, space).
func (m *Machine) PushPoint() {
	m.snapshot = append(m.snapshot, PointSnapshot{Point: m.pt, Space: m.space})
}

// PushRect saves (x0, y0, x1, y1, space).
func (m *Machine) PushRect() {
	m.snapshot = append(m.snapshot, RectSnapshot{Rect: m.rect, Space: m.space})
}

// PopPoint restores the most recent point snapshot, including its space tag.
// If the top entry is a rectangle snapshot nothing is popped.
func (m *Machine) PopPoint() error {
	top, err := m.top("pop point")
	if err != nil {
		return err
	}
	s, ok := top.(PointSnapshot)
	if !ok {
		return errors.New(errors.ErrCodeWrongSnapshotKind, "pop point: top of stack is a %s snapshot", top.snapshotKind())
	}
	m.drop()
	m.pt = s.Point
	m.space = s.Space
	return nil
}

// PopRect restores the most recent rectangle snapshot, including its space tag.
// If the top entry is a point snapshot nothing is popped.
func (m *Machine) PopRect() error {
	top, err := m.top("pop rect")
	if err != nil {
		return err
	}
	s, ok := top.(RectSnapshot)
	if !ok {
		return errors.New(errors.ErrCodeWrongSnapshotKind, "pop rect: top of stack is a %s snapshot", top.snapshotKind())
	}
	m.drop()
	m.rect = s.Rect
	m.space = s.Space
	return nil
}

// Depth returns the number of saved snapshots.
func (m *Machine) Depth() int { return len(m.snapshot) }

func (m *Machine) top(op string) (Snapshot, error) {
	if len(m.snapshot) == 0 {
		return nil, errors.New(errors.ErrCodeStackUnderflow, "%s: stack empty", op)
	}
	return m.snapshot[len(m.snapshot)-1], nil
}

func (m *Machine) drop() {
	m.snapshot[len(m.snapshot)-1] = nil
	m.snapshot = m.snapshot[:len(m.snapshot)-1]
}
