package palette

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"slices"

	"insicon/okcolor"
	"insicon/raster"
)

var ErrUnknownTheme = errors.New("unknown theme")

// MinContrast is the Oklab lightness difference below which text is hard
// to read against its backing rectangle.
const MinContrast = 0.25

type Theme struct {
	Name       string
	Foreground raster.Color // gear body and teeth
	Background raster.Color // center hole and text backing
	Text       raster.Color
}

var builtin = map[string]Theme{
	"light": {
		Name:       "light",
		Foreground: raster.Color{R: 80, G: 80, B: 80},
		Background: raster.Color{R: 255, G: 255, B: 255},
		Text:       raster.Color{R: 40, G: 100, B: 40},
	},
	"dark": {
		Name:       "dark",
		Foreground: raster.Color{R: 200, G: 200, B: 200},
		Background: raster.Color{R: 30, G: 30, B: 30},
		Text:       raster.Color{R: 100, G: 200, B: 100},
	},
}

// Names returns the built-in theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Builtin(name string) (Theme, error) {
	t, ok := builtin[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Contrast returns the lightness difference between text and background.
func (t Theme) Contrast() float64 {
	return okcolor.Contrast(t.Text, t.Background)
}

// LegibleText returns the text color with its lightness moved away from
// the background until the pair reaches MinContrast. It returns Text
// unchanged when the theme is already legible.
func (t Theme) LegibleText() raster.Color {
	if t.Contrast() >= MinContrast {
		return t.Text
	}

	bg := okcolor.Lightness(t.Background)
	target := bg + MinContrast
	if okcolor.Lightness(t.Text) < bg || target > 1 {
		target = bg - MinContrast
	}
	if target < 0 {
		target = bg + MinContrast
	}

	nrgba := color.NRGBAModel.Convert(okcolor.WithLightness(t.Text, target)).(color.NRGBA)
	return raster.Color{R: nrgba.R, G: nrgba.G, B: nrgba.B}
}

func (t Theme) Colors() color.Palette {
	return color.Palette{t.Foreground, t.Background, t.Text}
}

// FromPalette builds a theme from the first three entries of pal, in
// foreground, background, text order.
func FromPalette(name string, pal color.Palette) (Theme, error) {
	if len(pal) < 3 {
		return Theme{}, fmt.Errorf("theme %q needs 3 colors, palette has %d", name, len(pal))
	}

	conv := func(c color.Color) raster.Color {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		return raster.Color{R: rgba.R, G: rgba.G, B: rgba.B}
	}
	return Theme{
		Name:       name,
		Foreground: conv(pal[0]),
		Background: conv(pal[1]),
		Text:       conv(pal[2]),
	}, nil
}

// LoadTheme reads a RIFF PAL file and returns its first palette as a theme.
func LoadTheme(name, path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("could not open palette file %q: %w", path, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return Theme{}, fmt.Errorf("could not read palette file %q: %w", path, err)
	} else if len(pals) == 0 {
		return Theme{}, fmt.Errorf("palette file %q is empty", path)
	}

	return FromPalette(name, pals[0])
}

// WriteTheme writes t as a single palette RIFF PAL stream.
func WriteTheme(w io.Writer, t Theme) (int64, error) {
	return WriteTo(w, []color.Palette{t.Colors()})
}
