package coord

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/patchboard/atlas/pkg/errors"
)

func TestNewMachineDefaults(t *testing.T) {
	m := NewMachine()

	if got := m.Point(); got != (Point{}) {
		t.Errorf("Point() = %v, want origin", got)
	}
	if got := m.Rect(); got != (Rect{}) {
		t.Errorf("Rect() = %v, want zero rect", got)
	}
	if m.Space() != World {
		t.Errorf("Space() = %v, want World", m.Space())
	}
	if num, den := m.Zoom(); num != 1 || den != 1 {
		t.Errorf("Zoom() = %d/%d, want 1/1", num, den)
	}
	if w, h := m.Viewport(); w != 0 || h != 0 {
		t.Errorf("Viewport() = %dx%d, want 0x0", w, h)
	}
	if m.Camera() != (Point{}) || m.Event() != (Point{}) || m.Label() != (Point{}) {
		t.Error("camera, event and label should start at the origin")
	}
	if m.Attachment() != (Rect{}) {
		t.Errorf("Attachment() = %v, want zero rect", m.Attachment())
	}
	if m.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", m.Depth())
	}
}

func TestReset(t *testing.T) {
	m := NewMachine()
	m.SetXY(5, 6)
	m.SetRect(1, 2, 3, 4)
	m.SetSpace(Canvas)
	m.SetZoom(3, 2)
	m.SetViewport(800, 600)
	m.SetEvent(7, 8)
	m.SetLabel(9, 10)
	m.SetAttachment(Rect{1, 1, 2, 2})
	if err := m.StorePoint(DstCam); err != nil {
		t.Fatal(err)
	}
	m.PushPoint()
	m.PushRect()

	m.Reset()

	if diff := cmp.Diff(NewMachine(), m, cmp.AllowUnexported(Machine{}), cmpEmptyStack); diff != "" {
		t.Errorf("Reset() mismatch (-want +got):\n%s", diff)
	}
}

// cmpEmptyStack treats nil and empty snapshot slices as equal.
var cmpEmptyStack = cmp.Comparer(func(a, b []Snapshot) bool {
	return len(a) == 0 && len(b) == 0 || cmp.Equal(a, b)
})

func TestSetters(t *testing.T) {
	m := NewMachine()

	m.SetZoom(3, 2)
	if num, den := m.Zoom(); num != 3 || den != 2 {
		t.Errorf("Zoom() = %d/%d, want 3/2", num, den)
	}

	m.SetZoom(4, 2)
	if num, den := m.Zoom(); num != 4 || den != 2 {
		t.Errorf("SetZoom reduced the ratio: %d/%d", num, den)
	}

	m.SetViewport(800, 600)
	if w, h := m.Viewport(); w != 800 || h != 600 {
		t.Errorf("Viewport() = %dx%d, want 800x600", w, h)
	}

	m.SetSpace(Canvas)
	m.SetXY(5, -7)
	if x, y := m.XY(); x != 5 || y != -7 {
		t.Errorf("XY() = (%d, %d), want (5, -7)", x, y)
	}
	if m.Space() != Canvas {
		t.Error("SetXY must not touch the space tag")
	}
}

func TestLoadRectAttachment(t *testing.T) {
	m := NewMachine()
	m.SetAttachment(Rect{1, 2, 3, 4})
	m.SetSpace(Canvas)

	if err := m.LoadRect(SrcAttachment); err != nil {
		t.Fatalf("LoadRect() error: %v", err)
	}
	if x0, y0, x1, y1 := m.XYXY(); x0 != 1 || y0 != 2 || x1 != 3 || y1 != 4 {
		t.Errorf("XYXY() = (%d, %d, %d, %d), want (1, 2, 3, 4)", x0, y0, x1, y1)
	}
	if m.Space() != World {
		t.Errorf("Space() = %v, want World", m.Space())
	}
}

func TestLoadRectUnknownSource(t *testing.T) {
	for _, src := range []Source{SrcEvent, SrcLabel, SrcCenter, "bogus"} {
		t.Run(string(src), func(t *testing.T) {
			m := NewMachine()
			m.SetRect(1, 2, 3, 4)
			err := m.LoadRect(src)
			if !errors.Is(err, errors.ErrCodeUnknownSource) {
				t.Fatalf("LoadRect(%q) error = %v, want UNKNOWN_SOURCE", src, err)
			}
			if m.Rect() != (Rect{1, 2, 3, 4}) {
				t.Error("failed load must not change the rectangle")
			}
		})
	}
}

func TestLoadPoint(t *testing.T) {
	tests := []struct {
		name      string
		src       Source
		rect      Rect
		space     Space
		want      Point
		wantSpace Space
	}{
		{"center odd", SrcCenter, Rect{0, 0, 9, 7}, World, Point{4, 3}, World},
		{"center negative floors", SrcCenter, Rect{-3, -4, 0, 0}, Canvas, Point{-2, -2}, Canvas},
		{"center south", SrcCenterSouth, Rect{0, 0, 10, 7}, World, Point{5, 7}, World},
		{"nw", SrcNW, Rect{-3, -4, 5, 6}, World, Point{-3, -4}, World},
		{"ne", SrcNE, Rect{-3, -4, 5, 6}, World, Point{5, -4}, World},
		{"se", SrcSE, Rect{-3, -4, 5, 6}, Canvas, Point{5, 6}, Canvas},
		{"sw", SrcSW, Rect{-3, -4, 5, 6}, World, Point{-3, 6}, World},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.SetRect(tt.rect.X0, tt.rect.Y0, tt.rect.X1, tt.rect.Y1)
			m.SetSpace(tt.space)

			if err := m.LoadPoint(tt.src); err != nil {
				t.Fatalf("LoadPoint(%q) error: %v", tt.src, err)
			}
			if got := m.Point(); got != tt.want {
				t.Errorf("Point() = %v, want %v", got, tt.want)
			}
			if m.Space() != tt.wantSpace {
				t.Errorf("Space() = %v, want %v", m.Space(), tt.wantSpace)
			}
		})
	}
}

func TestLoadPointEventIsCanvas(t *testing.T) {
	m := NewMachine()
	m.SetEvent(11, 22)

	if err := m.LoadPoint(SrcEvent); err != nil {
		t.Fatal(err)
	}
	if x, y := m.XY(); x != 11 || y != 22 {
		t.Errorf("XY() = (%d, %d), want (11, 22)", x, y)
	}
	if m.Space() != Canvas {
		t.Errorf("Space() = %v, want Canvas", m.Space())
	}
}

func TestLoadPointLabelIsWorld(t *testing.T) {
	m := NewMachine()
	m.SetLabel(7, 8)
	m.SetSpace(Canvas)

	if err := m.LoadPoint(SrcLabel); err != nil {
		t.Fatal(err)
	}
	if x, y := m.XY(); x != 7 || y != 8 {
		t.Errorf("XY() = (%d, %d), want (7, 8)", x, y)
	}
	if m.Space() != World {
		t.Errorf("Space() = %v, want World", m.Space())
	}
}

func TestLoadPointUnknownSource(t *testing.T) {
	m := NewMachine()
	m.SetXY(1, 1)
	for _, src := range []Source{SrcAttachment, "north", ""} {
		if err := m.LoadPoint(src); !errors.Is(err, errors.ErrCodeUnknownSource) {
			t.Errorf("LoadPoint(%q) error = %v, want UNKNOWN_SOURCE", src, err)
		}
	}
	if m.Point() != (Point{1, 1}) {
		t.Error("failed load must not change the point")
	}
}

func TestStoreRectAttachment(t *testing.T) {
	m := NewMachine()
	m.SetRect(-1, -2, 10, 20)

	if err := m.StoreRect(DstAttachment); err != nil {
		t.Fatalf("StoreRect() error: %v", err)
	}
	if got := m.Attachment(); got != (Rect{-1, -2, 10, 20}) {
		t.Errorf("Attachment() = %v, want {-1 -2 10 20}", got)
	}
}

func TestStoreRectRequiresWorld(t *testing.T) {
	m := NewMachine()
	m.SetAttachment(Rect{1, 1, 1, 1})
	m.SetRect(5, 5, 6, 6)
	m.SetSpace(Canvas)

	err := m.StoreRect(DstAttachment)
	if !errors.Is(err, errors.ErrCodeWrongSpace) {
		t.Fatalf("StoreRect() error = %v, want WRONG_SPACE", err)
	}
	if m.Attachment() != (Rect{1, 1, 1, 1}) {
		t.Error("rejected store must not touch the attachment")
	}
}

func TestStoreRectUnknownDestination(t *testing.T) {
	m := NewMachine()
	for _, dst := range []Dest{DstCam, DstCenter, "bbox"} {
		if err := m.StoreRect(dst); !errors.Is(err, errors.ErrCodeUnknownDestination) {
			t.Errorf("StoreRect(%q) error = %v, want UNKNOWN_DESTINATION", dst, err)
		}
	}
}

func TestStorePointCorners(t *testing.T) {
	tests := []struct {
		dst  Dest
		want Rect
	}{
		{DstNW, Rect{3, 4, 10, 20}},
		{DstNE, Rect{0, 4, 3, 20}},
		{DstSE, Rect{0, 0, 3, 4}},
		{DstSW, Rect{3, 0, 10, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.dst), func(t *testing.T) {
			m := NewMachine()
			m.SetRect(0, 0, 10, 20)
			m.SetXY(3, 4)

			if err := m.StorePoint(tt.dst); err != nil {
				t.Fatal(err)
			}
			if got := m.Rect(); got != tt.want {
				t.Errorf("Rect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorePointCornerMayInvert(t *testing.T) {
	m := NewMachine()
	m.SetRect(0, 0, 10, 10)
	m.SetXY(20, 30)

	if err := m.StorePoint(DstNW); err != nil {
		t.Fatal(err)
	}
	if got := m.Rect(); got != (Rect{20, 30, 10, 10}) {
		t.Errorf("Rect() = %v, want inverted {20 30 10 10}", got)
	}
}

func TestStorePointCenter(t *testing.T) {
	m := NewMachine()
	m.SetRect(0, 0, 10, 10)
	m.SetXY(7, 5)

	if err := m.StorePoint(DstCenter); err != nil {
		t.Fatal(err)
	}
	if got := m.Rect(); got != (Rect{2, 0, 12, 10}) {
		t.Errorf("Rect() = %v, want {2 0 12 10}", got)
	}
}

func TestStorePointCenterPreservesSize(t *testing.T) {
	rects := []Rect{
		{0, 0, 10, 10},
		{0, 0, 9, 7},
		{-5, -3, 4, 8},
		{10, 10, 3, 1}, // inverted
		{4, 4, 4, 4},   // degenerate
	}
	points := []Point{{0, 0}, {7, 5}, {-13, 21}, {1, -1}}

	for _, r := range rects {
		for _, p := range points {
			m := NewMachine()
			m.SetRect(r.X0, r.Y0, r.X1, r.Y1)
			m.SetXY(p.X, p.Y)

			// Recentre repeatedly; size must never drift.
			for range 5 {
				if err := m.StorePoint(DstCenter); err != nil {
					t.Fatal(err)
				}
			}
			got := m.Rect()
			if got.Width() != r.Width() || got.Height() != r.Height() {
				t.Errorf("rect %v at %v: size %dx%d, want %dx%d", r, p, got.Width(), got.Height(), r.Width(), r.Height())
			}
			// Twice the centroid must sit within one unit of twice the point.
			if d := abs(got.X0 + got.X1 - 2*p.X); d > 1 {
				t.Errorf("rect %v at %v: x centroid off by %d half-units", r, p, d)
			}
			if d := abs(got.Y0 + got.Y1 - 2*p.Y); d > 1 {
				t.Errorf("rect %v at %v: y centroid off by %d half-units", r, p, d)
			}
		}
	}
}

func TestStorePointCam(t *testing.T) {
	m := NewMachine()
	m.SetSpace(Canvas)
	m.SetXY(9, -3)

	if err := m.StorePoint(DstCam); err != nil {
		t.Fatal(err)
	}
	if got := m.Camera(); got != (Point{9, -3}) {
		t.Errorf("Camera() = %v, want {9 -3}", got)
	}
}

func TestStorePointUnknownDestination(t *testing.T) {
	m := NewMachine()
	for _, dst := range []Dest{DstAttachment, "label", "north"} {
		if err := m.StorePoint(dst); !errors.Is(err, errors.ErrCodeUnknownDestination) {
			t.Errorf("StorePoint(%q) error = %v, want UNKNOWN_DESTINATION", dst, err)
		}
	}
}

func TestProjectTo(t *testing.T) {
	tests := []struct {
		name      string
		viewW     int
		viewH     int
		num, den  int
		cam       Point
		from      Space
		to        Space
		point     Point
		rect      Rect
		wantPoint Point
		wantRect  Rect
	}{
		{
			name: "world to canvas identity zoom", viewW: 100, viewH: 80, num: 1, den: 1,
			from: World, to: Canvas,
			point: Point{10, 20}, rect: Rect{0, 0, 10, 20},
			wantPoint: Point{60, 60}, wantRect: Rect{50, 40, 60, 60},
		},
		{
			name: "canvas to world identity zoom", viewW: 100, viewH: 80, num: 1, den: 1,
			from: Canvas, to: World,
			point: Point{60, 50}, rect: Rect{50, 40, 70, 60},
			wantPoint: Point{10, 10}, wantRect: Rect{0, 0, 20, 20},
		},
		{
			name: "world to canvas camera offset", viewW: 200, viewH: 100, num: 1, den: 1, cam: Point{10, 20},
			from: World, to: Canvas,
			point: Point{30, 40}, rect: Rect{20, 30, 40, 50},
			wantPoint: Point{120, 70}, wantRect: Rect{110, 60, 130, 80},
		},
		{
			name: "canvas to world camera offset", viewW: 200, viewH: 100, num: 1, den: 1, cam: Point{10, 20},
			from: Canvas, to: World,
			point: Point{130, 80}, rect: Rect{120, 70, 140, 90},
			wantPoint: Point{40, 50}, wantRect: Rect{30, 40, 50, 60},
		},
		{
			name: "world to canvas zoom 2", viewW: 100, viewH: 100, num: 2, den: 1,
			from: World, to: Canvas,
			point: Point{5, 5}, rect: Rect{0, 0, 5, 5},
			wantPoint: Point{60, 60}, wantRect: Rect{50, 50, 60, 60},
		},
		{
			name: "canvas to world zoom 2", viewW: 100, viewH: 100, num: 2, den: 1,
			from: Canvas, to: World,
			point: Point{60, 60}, rect: Rect{50, 50, 70, 70},
			wantPoint: Point{5, 5}, wantRect: Rect{0, 0, 10, 10},
		},
		{
			name: "odd viewport halves down", viewW: 101, viewH: 81, num: 1, den: 1,
			from: World, to: Canvas,
			point: Point{0, 0},
			wantPoint: Point{50, 40}, wantRect: Rect{50, 40, 50, 40},
		},
		{
			name: "negative product floors", viewW: 0, viewH: 0, num: 1, den: 2,
			from: World, to: Canvas,
			point: Point{-3, 3}, rect: Rect{-1, -2, 1, 2},
			wantPoint: Point{-2, 1}, wantRect: Rect{-1, -1, 0, 1},
		},
		{
			name: "product before division", viewW: 0, viewH: 0, num: 3, den: 2,
			from: World, to: Canvas,
			point: Point{3, -3},
			wantPoint: Point{4, -5}, wantRect: Rect{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.SetViewport(tt.viewW, tt.viewH)
			m.SetZoom(tt.num, tt.den)
			m.SetXY(tt.cam.X, tt.cam.Y)
			if err := m.StorePoint(DstCam); err != nil {
				t.Fatal(err)
			}
			m.SetXY(tt.point.X, tt.point.Y)
			m.SetRect(tt.rect.X0, tt.rect.Y0, tt.rect.X1, tt.rect.Y1)
			m.SetSpace(tt.from)

			if err := m.ProjectTo(tt.to); err != nil {
				t.Fatalf("ProjectTo(%v) error: %v", tt.to, err)
			}
			if got := m.Point(); got != tt.wantPoint {
				t.Errorf("Point() = %v, want %v", got, tt.wantPoint)
			}
			if got := m.Rect(); got != tt.wantRect {
				t.Errorf("Rect() = %v, want %v", got, tt.wantRect)
			}
			if m.Space() != tt.to {
				t.Errorf("Space() = %v, want %v", m.Space(), tt.to)
			}
		})
	}
}

func TestProjectToSameSpaceIsNoop(t *testing.T) {
	m := NewMachine()
	m.SetViewport(100, 100)
	m.SetZoom(2, 1)
	m.SetXY(3, 4)
	m.SetRect(1, 2, 3, 4)

	if err := m.ProjectTo(World); err != nil {
		t.Fatal(err)
	}
	if m.Point() != (Point{3, 4}) || m.Rect() != (Rect{1, 2, 3, 4}) {
		t.Error("projecting into the current space must not move anything")
	}
}

func TestProjectToInvalidTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   Space
		target Space
	}{
		{"bad target", World, Space('x')},
		{"bad source", Space('x'), Canvas},
		{"bad both", Space('x'), Space('x')},
		{"zero target", World, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.SetXY(1, 2)
			m.SetSpace(tt.from)

			err := m.ProjectTo(tt.target)
			if !errors.Is(err, errors.ErrCodeInvalidTransition) {
				t.Fatalf("ProjectTo() error = %v, want INVALID_TRANSITION", err)
			}
			if m.Point() != (Point{1, 2}) || m.Space() != tt.from {
				t.Error("failed projection must not change registers")
			}
		})
	}
}

func TestProjectRoundTripTolerance(t *testing.T) {
	ratios := [][2]int{{1, 1}, {2, 1}, {3, 2}, {5, 3}, {7, 7}, {11, 4}, {-2, 1}, {3, -2}}
	cams := []Point{{0, 0}, {11, -7}, {-40, 25}}

	for _, r := range ratios {
		for _, cam := range cams {
			for x := -60; x <= 60; x += 7 {
				for y := -45; y <= 45; y += 9 {
					m := NewMachine()
					m.SetViewport(801, 601)
					m.SetZoom(r[0], r[1])
					m.SetXY(cam.X, cam.Y)
					_ = m.StorePoint(DstCam)

					m.SetXY(x, y)
					m.SetRect(x, y, -y, -x)
					if err := m.ProjectTo(Canvas); err != nil {
						t.Fatal(err)
					}
					if err := m.ProjectTo(World); err != nil {
						t.Fatal(err)
					}

					gx, gy := m.XY()
					if abs(gx-x) > 1 || abs(gy-y) > 1 {
						t.Fatalf("zoom %d/%d cam %v: (%d, %d) came back as (%d, %d)", r[0], r[1], cam, x, y, gx, gy)
					}
					x0, y0, x1, y1 := m.XYXY()
					if abs(x0-x) > 1 || abs(y0-y) > 1 || abs(x1+y) > 1 || abs(y1+x) > 1 {
						t.Fatalf("zoom %d/%d cam %v: rect drifted to (%d, %d, %d, %d)", r[0], r[1], cam, x0, y0, x1, y1)
					}
				}
			}
		}
	}
}

func TestProjectUnitZoomIsExact(t *testing.T) {
	m := NewMachine()
	m.SetViewport(640, 480)

	for x := -50; x <= 50; x += 5 {
		m.SetXY(x, -x)
		m.SetSpace(World)
		_ = m.ProjectTo(Canvas)
		if got := m.Point(); got != (Point{x + 320, -x + 240}) {
			t.Fatalf("ProjectTo(Canvas) of (%d, %d) = %v", x, -x, got)
		}
		_ = m.ProjectTo(World)
		if got := m.Point(); got != (Point{x, -x}) {
			t.Fatalf("round trip of (%d, %d) = %v", x, -x, got)
		}
	}
}

func TestProjectZeroDenominatorPanics(t *testing.T) {
	m := NewMachine()
	m.SetZoom(1, 0)

	defer func() {
		if recover() == nil {
			t.Error("ProjectTo with a zero denominator should panic")
		}
	}()
	_ = m.ProjectTo(Canvas)
}

func TestSlide(t *testing.T) {
	m := NewMachine()
	m.SetXY(3, 4)
	m.SetRect(1, 2, 3, 4)
	m.SetSpace(Canvas)

	m.SlidePoint(2, -5)
	if got := m.Point(); got != (Point{5, -1}) {
		t.Errorf("SlidePoint: Point() = %v, want {5 -1}", got)
	}

	m.SlideRect(-1, 5)
	if got := m.Rect(); got != (Rect{0, 7, 2, 9}) {
		t.Errorf("SlideRect: Rect() = %v, want {0 7 2 9}", got)
	}
	if m.Space() != Canvas {
		t.Error("slides must not retag")
	}
}

func TestExplodePoint(t *testing.T) {
	m := NewMachine()
	m.SetXY(10, -10)
	m.SetRect(100, 100, 200, 200)

	m.ExplodePoint(3)

	got := m.Rect()
	if got != (Rect{7, -13, 13, -7}) {
		t.Errorf("Rect() = %v, want {7 -13 13 -7}", got)
	}
	if got.Width() != 6 || got.Height() != 6 {
		t.Errorf("size = %dx%d, want 6x6", got.Width(), got.Height())
	}
	if got.Center() != (Point{10, -10}) {
		t.Errorf("Center() = %v, want {10 -10}", got.Center())
	}
	if m.Point() != (Point{10, -10}) {
		t.Error("ExplodePoint must not move the point")
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{6, 3, 2},
		{-6, 3, -2},
		{0, 5, 0},
		{-1, 2, -1},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
