// Package glyph draws the block letterforms used by the icon text.
//
// Letters are unions of opaque rectangles inside a w x h cell. Overlapping
// bars are fine since an opaque paint always replaces the sample.
package glyph

import (
	"errors"
	"fmt"

	"insicon/raster"
)

var ErrUnknownGlyph = errors.New("unknown glyph")

// DrawFunc draws one letter into the cell at (sx, sy).
type DrawFunc func(cv *raster.Canvas, sx, sy, w, h int, c raster.Color)

var glyphs = map[rune]DrawFunc{
	'i': DrawI,
	'n': DrawN,
	's': DrawS,
}

// Lookup returns the drawing function for r.
func Lookup(r rune) (DrawFunc, error) {
	fn, ok := glyphs[r]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGlyph, r)
	}
	return fn, nil
}

func rect(cv *raster.Canvas, x1, y1, x2, y2 int, c raster.Color) {
	cv.FillRect(float64(x1), float64(y1), float64(x2), float64(y2), c, raster.Opaque)
}

// DrawI draws a serif "i": top bar, centered stem, bottom bar.
func DrawI(cv *raster.Canvas, sx, sy, w, h int, c raster.Color) {
	barW := max(2, w/3)
	rect(cv, sx, sy, sx+w, sy+barW, c)
	rect(cv, sx+w/2-barW/2, sy, sx+w/2+barW/2+1, sy+h, c)
	rect(cv, sx, sy+h-barW, sx+w, sy+h, c)
}

// DrawN draws an "n" as two stems joined at the top. There is no diagonal.
func DrawN(cv *raster.Canvas, sx, sy, w, h int, c raster.Color) {
	barW := max(2, w/4)
	rect(cv, sx, sy, sx+barW, sy+h, c)
	rect(cv, sx+w-barW, sy, sx+w, sy+h, c)
	rect(cv, sx, sy, sx+w, sy+barW, c)
}

// DrawS draws a seven-segment style "s".
func DrawS(cv *raster.Canvas, sx, sy, w, h int, c raster.Color) {
	barW := max(2, w/4)
	mid := sy + h/2
	rect(cv, sx, sy, sx+w, sy+barW, c)
	rect(cv, sx, sy, sx+barW, mid, c)
	rect(cv, sx, mid-barW/2, sx+w, mid+barW/2+1, c)
	rect(cv, sx+w-barW, mid, sx+w, sy+h, c)
	rect(cv, sx, sy+h-barW, sx+w, sy+h, c)
}
