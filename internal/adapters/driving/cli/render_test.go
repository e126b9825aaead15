package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCmd_Flags(t *testing.T) {
	flag := renderCmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)

	flag = renderCmd.Flags().Lookup("zoom")
	require.NotNil(t, flag)
	assert.Equal(t, "1", flag.DefValue)
}

func TestRenderCmd_ToWriter(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("render", testPath, "--zoom", "0.5")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	assert.Equal(t, 306, img.Bounds().Dx())
	assert.Equal(t, 396, img.Bounds().Dy())
}

func TestRenderCmd_ToFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "page.png")
	out, err := execute("render", testPath, "-p", "2", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path+" (612x792)")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 612, cfg.Width)
	assert.Equal(t, 792, cfg.Height)
}

func TestRenderCmd_RenderFailure(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.doc.renderErr = assert.AnError

	_, err := execute("render", testPath, "-o", filepath.Join(t.TempDir(), "page.png"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render page")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
