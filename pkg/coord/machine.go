package coord

import "github.com/patchboard/atlas/pkg/errors"

// Point is an integer position. Its space is implied by the register holding it.
type Point struct {
	X, Y int
}

// Rect is an integer rectangle given by two corners. Nothing orders the corners:
// X0 > X1 or Y0 > Y1 is legal and preserved by every operation.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Width returns X1 - X0, negative for an inverted rectangle.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns Y1 - Y0, negative for an inverted rectangle.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Center returns the floor midpoint of both axes.
func (r Rect) Center() Point {
	return Point{X: floorDiv(r.X0+r.X1, 2), Y: floorDiv(r.Y0+r.Y1, 2)}
}

// Machine holds the coordinate registers and the snapshot stack.
//
// Use [NewMachine]; the zero value has a 0/0 zoom and no space tag.
type Machine struct {
	pt    Point
	rect  Rect
	space Space

	cam      Point
	zoomNum  int
	zoomDen  int
	viewW    int
	viewH    int
	attach   Rect
	label    Point
	event    Point
	snapshot []Snapshot
}

// NewMachine returns a machine in the reset state.
func NewMachine() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// Reset restores every register to its default: point (0,0), rectangle
// (0,0,0,0), World space, camera at the origin with a 1/1 ratio, a 0x0
// viewport, zeroed attachment, label and event registers and an empty stack.
func (m *Machine) Reset() {
	m.pt = Point{}
	m.rect = Rect{}
	m.space = World
	m.cam = Point{}
	m.zoomNum, m.zoomDen = 1, 1
	m.viewW, m.viewH = 0, 0
	m.attach = Rect{}
	m.label = Point{}
	m.event = Point{}
	clear(m.snapshot)
	m.snapshot = m.snapshot[:0]
}

// SetZoom stores the ratio verbatim. It is neither reduced nor checked for zero.
func (m *Machine) SetZoom(num, den int) {
	m.zoomNum, m.zoomDen = num, den
}

// SetViewport sets the device size used to find the viewport centre.
func (m *Machine) SetViewport(w, h int) {
	m.viewW, m.viewH = w, h
}

// SetXY overwrites the point register. The space tag is untouched.
func (m *Machine) SetXY(x, y int) {
	m.pt = Point{X: x, Y: y}
}

// SetRect overwrites the rectangle register. The space tag is untouched.
func (m *Machine) SetRect(x0, y0, x1, y1 int) {
	m.rect = Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// SetSpace retags the point and rectangle registers without converting them.
// Any value is accepted; ProjectTo rejects tags other than World and Canvas.
func (m *Machine) SetSpace(s Space) {
	m.space = s
}

// SetEvent records a raw pointer position in Canvas space.
func (m *Machine) SetEvent(x, y int) {
	m.event = Point{X: x, Y: y}
}

// SetLabel sets the World-space label register.
func (m *Machine) SetLabel(x, y int) {
	m.label = Point{X: x, Y: y}
}

// SetAttachment sets the World-space attachment rectangle.
func (m *Machine) SetAttachment(r Rect) {
	m.attach = r
}

// XY returns the point register.
func (m *Machine) XY() (x, y int) { return m.pt.X, m.pt.Y }

// XYXY returns the rectangle register.
func (m *Machine) XYXY() (x0, y0, x1, y1 int) {
	return m.rect.X0, m.rect.Y0, m.rect.X1, m.rect.Y1
}

// Point returns the point register.
func (m *Machine) Point() Point { return m.pt }

// Rect returns the rectangle register.
func (m *Machine) Rect() Rect { return m.rect }

// Space returns the tag shared by the point and rectangle registers.
func (m *Machine) Space() Space { return m.space }

// Camera returns the camera position in World units.
func (m *Machine) Camera() Point { return m.cam }

// Zoom returns the zoom ratio.
func (m *Machine) Zoom() (num, den int) { return m.zoomNum, m.zoomDen }

// Viewport returns the viewport size in device units.
func (m *Machine) Viewport() (w, h int) { return m.viewW, m.viewH }

// Event returns the last input event point, in Canvas units.
func (m *Machine) Event() Point { return m.event }

// Label returns the label register.
func (m *Machine) Label() Point { return m.label }

// Attachment returns the attachment rectangle, in World units.
func (m *Machine) Attachment() Rect { return m.attach }

// LoadRect copies src into the rectangle register. Only [SrcAttachment] is a
// rectangle source; it leaves the machine in World space.
func (m *Machine) LoadRect(src Source) error {
	if src != SrcAttachment {
		return errors.New(errors.ErrCodeUnknownSource, "load rect: unknown source %q", src)
	}
	m.rect = m.attach
	m.space = World
	return nil
}

// LoadPoint copies src into the point register.
//
// [SrcEvent] switches to Canvas space and [SrcLabel] to World space. The
// rectangle-derived sources (corners, centre, centre-south) keep the current
// tag since they read from a register already in it.
func (m *Machine) LoadPoint(src Source) error {
	r := m.rect
	switch src {
	case SrcEvent:
		m.pt = m.event
		m.space = Canvas
	case SrcLabel:
		m.pt = m.label
		m.space = World
	case SrcCenter:
		m.pt = r.Center()
	case SrcCenterSouth:
		m.pt = Point{X: floorDiv(r.X0+r.X1, 2), Y: r.Y1}
	case SrcNW:
		m.pt = Point{X: r.X0, Y: r.Y0}
	case SrcNE:
		m.pt = Point{X: r.X1, Y: r.Y0}
	case SrcSE:
		m.pt = Point{X: r.X1, Y: r.Y1}
	case SrcSW:
		m.pt = Point{X: r.X0, Y: r.Y1}
	default:
		return errors.New(errors.ErrCodeUnknownSource, "load point: unknown source %q", src)
	}
	return nil
}

// StoreRect copies the rectangle register into dst. The attachment is a World
// concept, so storing while tagged Canvas fails with WRONG_SPACE.
func (m *Machine) StoreRect(dst Dest) error {
	if dst != DstAttachment {
		return errors.New(errors.ErrCodeUnknownDestination, "store rect: unknown destination %q", dst)
	}
	if m.space != World {
		return errors.New(errors.ErrCodeWrongSpace, "store rect: attachment needs World coordinates, have %s", m.space)
	}
	m.attach = m.rect
	return nil
}

// StorePoint writes the point register into dst.
//
// A corner destination moves only that corner, which may invert the rectangle.
// [DstCenter] moves the whole rectangle so its centre lands on the point while
// width and height stay exact; for odd sizes the centre ends half a unit off.
// [DstCam] moves the camera and does not look at the space tag.
func (m *Machine) StorePoint(dst Dest) error {
	p := m.pt
	switch dst {
	case DstCenter:
		w, h := m.rect.Width(), m.rect.Height()
		x0 := p.X - floorDiv(w, 2)
		y0 := p.Y - floorDiv(h, 2)
		m.rect = Rect{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + h}
	case DstNW:
		m.rect.X0, m.rect.Y0 = p.X, p.Y
	case DstNE:
		m.rect.X1, m.rect.Y0 = p.X, p.Y
	case DstSE:
		m.rect.X1, m.rect.Y1 = p.X, p.Y
	case DstSW:
		m.rect.X0, m.rect.Y1 = p.X, p.Y
	case DstCam:
		m.cam = p
	default:
		return errors.New(errors.ErrCodeUnknownDestination, "store point: unknown destination %q", dst)
	}
	return nil
}

// ProjectTo converts the point and both rectangle corners into target and
// retags them. It does nothing when the machine is already in target.
func (m *Machine) ProjectTo(target Space) error {
	src := m.space
	if !target.Valid() || !src.Valid() {
		return errors.New(errors.ErrCodeInvalidTransition, "project: invalid transition %s -> %s", src, target)
	}
	if src == target {
		return nil
	}

	conv := m.worldToCanvas
	if target == World {
		conv = m.canvasToWorld
	}
	m.pt = conv(m.pt)
	nw := conv(Point{X: m.rect.X0, Y: m.rect.Y0})
	se := conv(Point{X: m.rect.X1, Y: m.rect.Y1})
	m.rect = Rect{X0: nw.X, Y0: nw.Y, X1: se.X, Y1: se.Y}
	m.space = target
	return nil
}

func (m *Machine) worldToCanvas(p Point) Point {
	vcx, vcy := floorDiv(m.viewW, 2), floorDiv(m.viewH, 2)
	return Point{
		X: floorDiv((p.X-m.cam.X)*m.zoomNum, m.zoomDen) + vcx,
		Y: floorDiv((p.Y-m.cam.Y)*m.zoomNum, m.zoomDen) + vcy,
	}
}

func (m *Machine) canvasToWorld(p Point) Point {
	vcx, vcy := floorDiv(m.viewW, 2), floorDiv(m.viewH, 2)
	return Point{
		X: floorDiv((p.X-vcx)*m.zoomDen, m.zoomNum) + m.cam.X,
		Y: floorDiv((p.Y-vcy)*m.zoomDen, m.zoomNum) + m.cam.Y,
	}
}

// SlidePoint translates the point register in whatever space it holds.
func (m *Machine) SlidePoint(dx, dy int) {
	m.pt.X += dx
	m.pt.Y += dy
}

// SlideRect translates both rectangle corners.
func (m *Machine) SlideRect(dx, dy int) {
	m.rect.X0 += dx
	m.rect.Y0 += dy
	m.rect.X1 += dx
	m.rect.Y1 += dy
}

// ExplodePoint replaces the rectangle with a 2*size square centred on the point.
// The point register and the space tag are left alone.
func (m *Machine) ExplodePoint(size int) {
	p := m.pt
	m.rect = Rect{X0: p.X - size, Y0: p.Y - size, X1: p.X + size, Y1: p.Y + size}
}

// floorDiv divides rounding toward negative infinity. A zero b panics.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
