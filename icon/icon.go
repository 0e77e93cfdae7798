// Package icon composes the gear icon with its "ins" label.
//
// All geometry is proportional to the icon side length. Shapes are drawn
// in a fixed order, teeth then body then hole then text, and later shapes
// overwrite earlier ones.
package icon

import (
	"errors"
	"fmt"
	"math"

	"insicon/glyph"
	"insicon/palette"
	"insicon/raster"
)

const (
	Label = "ins"
	Teeth = 8

	// MaxSize bounds the side length so the canvas stays within 4 GiB.
	MaxSize = 1 << 15

	outerRatio = 0.42 // distance of the tooth centers from the icon center
	innerRatio = 0.30 // gear body
	holeRatio  = 0.15
	toothRatio = 0.10 // tooth circle radius

	textYRatio     = 0.70
	textXRatio     = 0.22
	charWRatio     = 0.13
	charHRatio     = 0.18
	spacingRatio   = 0.03
	textExtraRatio = 0.08
)

var ErrInvalidSize = errors.New("invalid icon size")

// Draw renders a size x size icon in the colors of theme.
func Draw(size int, theme palette.Theme) (*raster.Canvas, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	cv, err := raster.NewCanvas(size, size)
	if err != nil {
		return nil, err
	}

	drawGear(cv, float64(size), theme)

	if err := glyph.DrawText(cv, TextLayout(size), Label, theme.Text, theme.Background); err != nil {
		return nil, fmt.Errorf("could not draw label %q: %w", Label, err)
	}

	return cv, nil
}

func drawGear(cv *raster.Canvas, size float64, theme palette.Theme) {
	cx, cy := size/2, size/2
	outerR := size * outerRatio
	toothR := size * toothRatio

	for i := range Teeth {
		angle := 2 * math.Pi * float64(i) / Teeth
		tx := cx + float64(outerR*math.Cos(angle))
		ty := cy + float64(outerR*math.Sin(angle))
		cv.FillCircle(tx, ty, toothR, theme.Foreground, raster.Opaque)
	}

	cv.FillCircle(cx, cy, size*innerRatio, theme.Foreground, raster.Opaque)
	cv.FillCircle(cx, cy, size*holeRatio, theme.Background, raster.Opaque)
}

// TextLayout returns the label placement for a size x size icon.
func TextLayout(size int) glyph.Layout {
	s := float64(size)
	return glyph.Layout{
		X:       int(s * textXRatio),
		Y:       int(s * textYRatio),
		CharW:   int(s * charWRatio),
		CharH:   int(s * charHRatio),
		Spacing: int(s * spacingRatio),
		Extra:   int(s * textExtraRatio),
	}
}
