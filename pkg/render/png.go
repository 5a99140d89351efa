package render

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/patchboard/atlas/pkg/errors"
)

// WritePNG rasterizes the scene and encodes it as PNG. Text is drawn with the
// Go Mono face at each item's font size; the font family is not resolved.
func WritePNG(w io.Writer, sc *Scene, background string) error {
	width, height := sc.Size()
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png: scene size %dx%d", width, height)
	}

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "png: parse font")
	}

	dc := gg.NewContext(width, height)
	if bg, ok := parseHex(background); ok {
		dc.SetColor(bg)
		dc.Clear()
	}

	faces := map[int]font.Face{}
	for _, it := range sc.Items() {
		switch it.Kind {
		case KindRectangle:
			if len(it.Coords) != 4 {
				continue
			}
			x0, y0, x1, y1 := normRect(it.Coords)
			dc.DrawRectangle(float64(x0), float64(y0), float64(x1-x0), float64(y1-y0))
			if fill, ok := parseHex(it.Style.Fill); ok {
				dc.SetColor(fill)
				dc.FillPreserve()
			}
			if stroke, ok := parseHex(it.Style.Outline); ok && it.Style.Width > 0 {
				dc.SetColor(stroke)
				dc.SetLineWidth(float64(it.Style.Width))
				dc.StrokePreserve()
			}
			dc.ClearPath()
		case KindText:
			if len(it.Coords) != 2 {
				continue
			}
			size := max(it.Style.Font.Size, 1)
			face, ok := faces[size]
			if !ok {
				face = truetype.NewFace(ttf, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
				faces[size] = face
			}
			dc.SetFontFace(face)
			fill, ok := parseHex(it.Style.Fill)
			if !ok {
				fill = color.Black
			}
			dc.SetColor(fill)
			dc.DrawStringAnchored(it.Text, float64(it.Coords[0]), float64(it.Coords[1]), 0.5, 0.5)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "png: encode")
	}
	return nil
}

// parseHex reads "#rrggbb" or "#rgb".
func parseHex(s string) (color.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
