package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insicon/palette"
)

func TestExportCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dark.pal")
	c := &ExportCmd{Theme: "dark", Out: out}
	require.NoError(t, c.Validate(nil))
	require.NoError(t, c.Run())

	got, err := palette.LoadTheme("dark", out)
	require.NoError(t, err)
	want, err := palette.Builtin("dark")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestExportCmd_UnknownTheme(t *testing.T) {
	c := &ExportCmd{Theme: "sepia", Out: "x.pal"}
	assert.ErrorIs(t, c.Validate(nil), palette.ErrUnknownTheme)
}
