package okcolor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightness(t *testing.T) {
	assert.InDelta(t, 0.0, Lightness(color.Black), 1e-6)
	assert.InDelta(t, 1.0, Lightness(color.White), 1e-4)

	dark := Lightness(color.RGBA{R: 30, G: 30, B: 30, A: 0xFF})
	light := Lightness(color.RGBA{R: 200, G: 200, B: 200, A: 0xFF})
	assert.Less(t, dark, light)
}

func TestContrast(t *testing.T) {
	a := color.RGBA{R: 40, G: 100, B: 40, A: 0xFF}
	b := color.RGBA{R: 255, G: 255, B: 255, A: 0xFF}
	assert.InDelta(t, Contrast(a, b), Contrast(b, a), 1e-12)
	assert.Greater(t, Contrast(a, b), 0.3)
	assert.Zero(t, Contrast(a, a))
}

func TestLab_RoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{R: 80, G: 80, B: 80, A: 0xFF},
		{R: 100, G: 200, B: 100, A: 0xFF},
		{R: 255, G: 0, B: 0, A: 0xFF},
	} {
		got := color.RGBAModel.Convert(LabModel.Convert(c)).(color.RGBA)
		assert.InDelta(t, c.R, got.R, 1)
		assert.InDelta(t, c.G, got.G, 1)
		assert.InDelta(t, c.B, got.B, 1)
		assert.Equal(t, c.A, got.A)
	}
}

func TestWithLightness(t *testing.T) {
	c := color.RGBA{R: 100, G: 200, B: 100, A: 0xFF}

	for _, l := range []float64{0.5, 0.8} {
		back := color.RGBAModel.Convert(WithLightness(c, l))
		assert.InDelta(t, l, Lightness(back), 0.01)
	}

	assert.Equal(t, 1.0, WithLightness(c, 3).L)
	assert.Equal(t, 0.0, WithLightness(c, -1).L)

	gray := color.RGBAModel.Convert(WithLightness(color.RGBA{R: 90, G: 90, B: 90, A: 0xFF}, 0.8)).(color.RGBA)
	assert.InDelta(t, gray.R, gray.G, 1)
	assert.InDelta(t, gray.G, gray.B, 1)
	assert.Greater(t, gray.R, uint8(90))
}
