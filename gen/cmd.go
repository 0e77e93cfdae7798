package gen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"

	"insicon/icon"
	"insicon/palette"
	"insicon/parallel"
	"insicon/pngenc"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Dest        string            `help:"Destination folder for generated icons" default:"."`
	Size        int               `help:"Icon side length in pixels" default:"128"`
	Prefix      string            `help:"Output file name prefix, the theme name and .png are appended" default:"ins-icon"`
	Theme       []string          `help:"Themes to generate" default:"light,dark"`
	Palette     map[string]string `help:"Override theme colors with a RIFF PAL file (foreground, background, text), e.g. dark=night.pal"`
	Compression string            `help:"PNG compression level" enum:"default,none,speed,best" default:"default"`
	Verify      bool              `help:"Decode every written icon and compare it with the rendered pixels" default:"false"`
	Themes      []palette.Theme   `kong:"-"`
}

var compressionLevels = map[string]pngenc.CompressionLevel{
	"default": pngenc.DefaultCompression,
	"none":    pngenc.NoCompression,
	"speed":   pngenc.BestSpeed,
	"best":    pngenc.BestCompression,
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Size < 1 || c.Size > icon.MaxSize {
		return fmt.Errorf("invalid icon size: %d, must be between 1 and %d", c.Size, icon.MaxSize)
	}

	dest, err := filepath.Abs(c.Dest)
	if err != nil {
		return fmt.Errorf("invalid destination path %q: %w", c.Dest, err)
	}
	c.Dest = dest

	if c.Prefix == "" || c.Prefix != filepath.Base(c.Prefix) {
		return fmt.Errorf("invalid file name prefix: %q", c.Prefix)
	}

	for i, name := range c.Theme {
		if slices.Contains(c.Theme[:i], name) {
			return fmt.Errorf("theme %q given more than once", name)
		}
	}

	for name := range c.Palette {
		if !slices.Contains(c.Theme, name) {
			return fmt.Errorf("palette given for theme %q which is not generated", name)
		}
	}

	c.Themes = c.Themes[:0]
	for _, name := range c.Theme {
		var theme palette.Theme
		if path, ok := c.Palette[name]; ok {
			theme, err = palette.LoadTheme(name, path)
		} else {
			theme, err = palette.Builtin(name)
		}
		if err != nil {
			return err
		}
		c.Themes = append(c.Themes, theme)
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	enc := &pngenc.Encoder{CompressionLevel: compressionLevels[c.Compression]}

	var generatedCount, errCount atomic.Uint64
	for _, theme := range c.Themes {
		if contrast := theme.Contrast(); contrast < palette.MinContrast {
			slog.Warn("low text contrast", "theme", theme.Name, "contrast", contrast, "min", palette.MinContrast,
				"text", theme.Text, "suggested", theme.LegibleText())
		}

		worker(func() {
			fileName := fmt.Sprintf("%s-%s.png", c.Prefix, theme.Name)
			logger := slog.Default().With("theme", theme.Name, "file", filepath.Join(c.Dest, fileName))

			if err := c.generate(logger, enc, theme, fileName); err != nil {
				errCount.Add(1)
				logger.Error("could not generate icon", "error", err)
				return
			}
			generatedCount.Add(1)
		})
	}

	wait(true)

	generated := generatedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "generated", generated, "errors", errors,
		"total", generated+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d themes", errors)
	}
	return nil
}

func (c *CLICmd) generate(logger *slog.Logger, enc *pngenc.Encoder, theme palette.Theme, fileName string) error {
	logger.Debug("drawing icon", "size", c.Size,
		"foreground", theme.Foreground, "background", theme.Background, "text", theme.Text)

	cv, err := icon.Draw(c.Size, theme)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, cv); err != nil {
		return fmt.Errorf("could not encode PNG: %w", err)
	}

	if c.Verify {
		if err := verify(buf.Bytes(), cv.Pix()); err != nil {
			return err
		}
		logger.Debug("verified encoded icon")
	}

	if err := save(buf.Bytes(), c.Dest, fileName); err != nil {
		return err
	}

	logger.Info("icon written", "bytes", buf.Len())
	return nil
}

// verify decodes data with the standard library decoder and compares the
// samples with pix.
func verify(data, pix []uint8) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("could not decode encoded icon: %w", err)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		return fmt.Errorf("encoded icon decodes as %T, want *image.NRGBA", img)
	}
	if !bytes.Equal(nrgba.Pix, pix) {
		return fmt.Errorf("encoded icon does not match rendered pixels")
	}
	return nil
}
