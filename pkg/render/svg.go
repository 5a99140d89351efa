package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
)

// SVGOption configures [WriteSVG].
type SVGOption func(*svgWriter)

type svgWriter struct {
	background string
	showTags   bool
}

// WithBackground fills the canvas before drawing. The default is transparent.
func WithBackground(color string) SVGOption {
	return func(s *svgWriter) { s.background = color }
}

// WithTags emits each item's tags as a data-tags attribute.
func WithTags() SVGOption { return func(s *svgWriter) { s.showTags = true } }

// RenderSVG draws the scene's items in paint order.
func RenderSVG(sc *Scene, opts ...SVGOption) []byte {
	sw := svgWriter{}
	for _, opt := range opts {
		opt(&sw)
	}

	w, h := sc.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	if sw.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", w, h, sw.background)
	}
	for _, it := range sc.Items() {
		sw.item(&buf, it)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG writes [RenderSVG] output to w.
func WriteSVG(w io.Writer, sc *Scene, opts ...SVGOption) error {
	_, err := w.Write(RenderSVG(sc, opts...))
	return err
}

func (sw svgWriter) item(buf *bytes.Buffer, it Item) {
	tags := ""
	if sw.showTags {
		tags = fmt.Sprintf(` data-tags="%s"`, html.EscapeString(strings.Join(it.Tags, " ")))
	}
	switch it.Kind {
	case KindRectangle:
		if len(it.Coords) != 4 {
			return
		}
		x0, y0, x1, y1 := normRect(it.Coords)
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="%d"%s/>`+"\n",
			x0, y0, x1-x0, y1-y0, orNone(it.Style.Fill), orNone(it.Style.Outline), it.Style.Width, tags)
	case KindText:
		if len(it.Coords) != 2 {
			return
		}
		fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%d" fill="%s"%s>%s</text>`+"\n",
			it.Coords[0], it.Coords[1], html.EscapeString(it.Style.Font.Family), it.Style.Font.Size,
			orNone(it.Style.Fill), tags, html.EscapeString(it.Text))
	}
}

// normRect orders the corners so width and height are non-negative. Negative
// zoom flips rectangles on the canvas.
func normRect(c []int) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = c[0], c[1], c[2], c[3]
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}

func orNone(color string) string {
	if color == "" {
		return "none"
	}
	return color
}
