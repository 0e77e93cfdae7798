package glyph

import (
	"unicode/utf8"

	"insicon/raster"
)

// margin around the text backing rectangle, in pixels
const margin = 2

type Layout struct {
	X, Y    int // top left corner of the first cell
	CharW   int
	CharH   int
	Spacing int // gap between cells
	Extra   int // added to the backing rectangle width
}

// DrawText paints an opaque bg rectangle behind the text cells and then
// draws each letter of text left to right in fg. Every letter is looked up
// before anything is drawn, so an unknown letter leaves cv untouched.
func DrawText(cv *raster.Canvas, l Layout, text string, fg, bg raster.Color) error {
	fns := make([]DrawFunc, 0, len(text))
	for _, r := range text {
		fn, err := Lookup(r)
		if err != nil {
			return err
		}
		fns = append(fns, fn)
	}

	n := utf8.RuneCountInString(text)
	cv.FillRect(float64(l.X-margin), float64(l.Y-margin),
		float64(l.X+l.CharW*n+l.Extra+margin), float64(l.Y+l.CharH+margin),
		bg, raster.Opaque)

	x := l.X
	for _, fn := range fns {
		fn(cv, x, l.Y, l.CharW, l.CharH, fg)
		x += l.CharW + l.Spacing
	}
	return nil
}
