package gen

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"

	"insicon/palette"

	"github.com/alecthomas/kong"
)

// ExportCmd writes a built-in theme as a RIFF PAL file, which can be edited
// and passed back to gen with --palette.
type ExportCmd struct {
	Theme string `help:"Theme to export" default:"light"`
	Out   string `arg:"" help:"Destination PAL file"`
}

func (c *ExportCmd) Validate(kctx *kong.Context) error {
	if _, err := palette.Builtin(c.Theme); err != nil {
		return err
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Out, err)
	}
	c.Out = out

	return nil
}

func (c *ExportCmd) Run() error {
	theme, err := palette.Builtin(c.Theme)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := palette.WriteTheme(&buf, theme); err != nil {
		return fmt.Errorf("could not encode theme %q: %w", c.Theme, err)
	}

	if err := save(buf.Bytes(), filepath.Dir(c.Out), filepath.Base(c.Out)); err != nil {
		return err
	}

	slog.Info("palette written", "theme", c.Theme, "file", c.Out)
	return nil
}
