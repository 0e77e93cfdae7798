package gen

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insicon/icon"
	"insicon/palette"
	"insicon/parallel"
	"insicon/raster"
)

func newCmd(dest string) *CLICmd {
	return &CLICmd{
		Dest:        dest,
		Size:        128,
		Prefix:      "ins-icon",
		Theme:       []string{"light", "dark"},
		Compression: "default",
		Verify:      true,
	}
}

func run(t *testing.T, c *CLICmd, workers int) error {
	t.Helper()
	pool := parallel.Start(workers)
	return c.Run(pool.Do, pool.Wait)
}

func TestRun_WritesThemes(t *testing.T) {
	dest := t.TempDir()
	c := newCmd(dest)
	require.NoError(t, c.Validate(nil))
	require.NoError(t, run(t, c, 2))

	for _, name := range []string{"light", "dark"} {
		data, err := os.ReadFile(filepath.Join(dest, "ins-icon-"+name+".png"))
		require.NoError(t, err, name)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		theme, err := palette.Builtin(name)
		require.NoError(t, err)
		cv, err := icon.Draw(128, theme)
		require.NoError(t, err)
		assert.Equal(t, cv.Pix(), img.(*image.NRGBA).Pix, name)
	}

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestRun_Deterministic(t *testing.T) {
	read := func() []byte {
		dest := t.TempDir()
		c := newCmd(dest)
		c.Theme = []string{"dark"}
		require.NoError(t, c.Validate(nil))
		require.NoError(t, run(t, c, 1))

		data, err := os.ReadFile(filepath.Join(dest, "ins-icon-dark.png"))
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, read(), read())
}

func TestRun_Overwrites(t *testing.T) {
	dest := t.TempDir()
	target := filepath.Join(dest, "ins-icon-light.png")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o644))

	c := newCmd(dest)
	c.Theme = []string{"light"}
	c.Size = 1
	require.NoError(t, c.Validate(nil))
	require.NoError(t, run(t, c, 1))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Width)
}

func TestRun_CreatesDest(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "a", "b")
	c := newCmd(dest)
	require.NoError(t, c.Validate(nil))
	require.NoError(t, run(t, c, 0))

	_, err := os.Stat(filepath.Join(dest, "ins-icon-dark.png"))
	assert.NoError(t, err)
}

func TestRun_ReportsFailures(t *testing.T) {
	dest := t.TempDir()
	c := newCmd(dest)
	require.NoError(t, c.Validate(nil))

	// a directory in the way of the rename
	require.NoError(t, os.Mkdir(filepath.Join(dest, "ins-icon-dark.png"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "ins-icon-dark.png", "keep"), nil, 0o644))

	err := run(t, c, 2)
	assert.ErrorContains(t, err, "error processing 1 themes")

	_, err = os.Stat(filepath.Join(dest, "ins-icon-light.png"))
	assert.NoError(t, err)
}

func TestRun_PaletteOverride(t *testing.T) {
	dir := t.TempDir()
	custom := palette.Theme{
		Name:       "dark",
		Foreground: raster.Color{R: 10, G: 20, B: 30},
		Background: raster.Color{R: 250, G: 240, B: 230},
		Text:       raster.Color{R: 200, G: 0, B: 0},
	}
	palPath := filepath.Join(dir, "night.pal")
	f, err := os.Create(palPath)
	require.NoError(t, err)
	_, err = palette.WriteTheme(f, custom)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c := newCmd(dir)
	c.Palette = map[string]string{"dark": palPath}
	require.NoError(t, c.Validate(nil))
	require.Len(t, c.Themes, 2)
	assert.Equal(t, custom, c.Themes[1])

	require.NoError(t, run(t, c, 1))
	data, err := os.ReadFile(filepath.Join(dir, "ins-icon-dark.png"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	cv, err := icon.Draw(128, custom)
	require.NoError(t, err)
	assert.Equal(t, cv.Pix(), img.(*image.NRGBA).Pix)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *CLICmd)
		errMsg string
	}{
		{name: "zero size", modify: func(c *CLICmd) { c.Size = 0 }, errMsg: "invalid icon size"},
		{name: "huge size", modify: func(c *CLICmd) { c.Size = 1 << 32 }, errMsg: "invalid icon size"},
		{name: "prefix with folder", modify: func(c *CLICmd) { c.Prefix = "a/b" }, errMsg: "invalid file name prefix"},
		{name: "empty prefix", modify: func(c *CLICmd) { c.Prefix = "" }, errMsg: "invalid file name prefix"},
		{name: "unknown theme", modify: func(c *CLICmd) { c.Theme = []string{"sepia"} }, errMsg: "unknown theme"},
		{name: "duplicate theme", modify: func(c *CLICmd) { c.Theme = []string{"dark", "dark"} }, errMsg: "more than once"},
		{
			name:   "palette for skipped theme",
			modify: func(c *CLICmd) { c.Theme = []string{"light"}; c.Palette = map[string]string{"dark": "x.pal"} },
			errMsg: "not generated",
		},
		{
			name:   "missing palette file",
			modify: func(c *CLICmd) { c.Palette = map[string]string{"dark": "/nonexistent/x.pal"} },
			errMsg: "could not open palette file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCmd(t.TempDir())
			tc.modify(c)
			assert.ErrorContains(t, c.Validate(nil), tc.errMsg)
		})
	}
}

func TestValidate_AbsDest(t *testing.T) {
	c := newCmd("icons")
	require.NoError(t, c.Validate(nil))
	assert.True(t, filepath.IsAbs(c.Dest))
}

func TestVerify(t *testing.T) {
	theme, err := palette.Builtin("light")
	require.NoError(t, err)
	cv, err := icon.Draw(16, theme)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 16, 16))))
	assert.ErrorContains(t, verify(buf.Bytes(), cv.Pix()), "does not match")

	assert.ErrorContains(t, verify([]byte("not a png"), cv.Pix()), "could not decode")
}
