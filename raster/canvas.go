package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// Opaque is the alpha used for full coverage draws.
const Opaque uint8 = 0xFF

var ErrInvalidSize = errors.New("invalid canvas size")

type Color struct {
	R, G, B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color for a fully opaque c.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: Opaque}.RGBA()
}

// Canvas is a straight (non-premultiplied) RGBA sample grid.
type Canvas struct {
	// pix holds the samples. The pixel at (x, y) starts at
	// pix[y*stride + x*4].
	pix    []uint8
	stride int
	width  int
	height int
}

var _ image.Image = &Canvas{}

// NewCanvas returns a transparent black canvas. The sample count must
// fit in an int.
func NewCanvas(width, height int) (*Canvas, error) {
	if width < 0 || height < 0 || width > math.MaxInt/4 ||
		(width != 0 && height > math.MaxInt/4/width) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	return &Canvas{
		pix:    make([]uint8, width*height*4),
		stride: width * 4,
		width:  width,
		height: height,
	}, nil
}

func (cv *Canvas) Width() int {
	return cv.width
}

func (cv *Canvas) Height() int {
	return cv.height
}

// Pix returns the underlying samples, row-major without row padding.
func (cv *Canvas) Pix() []uint8 {
	return cv.pix
}

// PixelAt returns the color and alpha stored at (x, y), or zero values
// outside the canvas.
func (cv *Canvas) PixelAt(x, y int) (Color, uint8) {
	if !cv.contains(x, y) {
		return Color{}, 0
	}
	i := y*cv.stride + x*4
	return Color{R: cv.pix[i], G: cv.pix[i+1], B: cv.pix[i+2]}, cv.pix[i+3]
}

// BlendPixel paints c with alpha a at (x, y).
//
// A zero alpha paint does nothing. An empty sample or an opaque paint
// replaces the sample outright.
// Otherwise the color channels are interpolated with weight a/255 and
// truncated, and the alphas are summed and clamped to 255. The result
// depends on drawing order whenever partial alphas are involved.
func (cv *Canvas) BlendPixel(x, y int, c Color, a uint8) {
	if !cv.contains(x, y) {
		return
	}

	i := y*cv.stride + x*4
	s := cv.pix[i : i+4 : i+4]
	oldA := s[3]
	switch {
	case a == 0:
	case oldA == 0 || a == Opaque:
		s[0], s[1], s[2], s[3] = c.R, c.G, c.B, a
	default:
		fa := float64(a) / 255.0
		s[0] = mix(c.R, s[0], fa)
		s[1] = mix(c.G, s[1], fa)
		s[2] = mix(c.B, s[2], fa)
		s[3] = uint8(min(255, int(oldA)+int(a)))
	}
}

func mix(in, old uint8, fa float64) uint8 {
	return uint8(float64(float64(in)*fa) + float64(float64(old)*(1-fa)))
}

func (cv *Canvas) contains(x, y int) bool {
	return x >= 0 && x < cv.width && y >= 0 && y < cv.height
}

// At implements the image.Image interface.
func (cv *Canvas) At(x, y int) color.Color {
	c, a := cv.PixelAt(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Bounds implements the image.Image interface.
func (cv *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, cv.width, cv.height)
}

// ColorModel implements the image.Image interface.
func (cv *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}
