package video

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestCollectOrdersFrames(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "frame_00000002.png"), color.NRGBA{G: 255, A: 255})
	writePNG(t, filepath.Join(dir, "frame_00000001.png"), color.NRGBA{R: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	fs, err := Collect(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, fs.Count())

	first, err := fs.Load(0)
	require.NoError(t, err)
	r, _, _, _ := first.At(0, 0).RGBA()
	assert.EqualValues(t, 255, r>>8)

	second, err := fs.Load(1)
	require.NoError(t, err)
	_, g, _, _ := second.At(0, 0).RGBA()
	assert.EqualValues(t, 255, g>>8)
}

func TestStillReplaysOneFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "still.png")
	writePNG(t, path, color.NRGBA{B: 255, A: 255})

	fs := Still(path, 5)
	assert.Equal(t, 5, fs.Count())

	for i := 0; i < 5; i++ {
		img, err := fs.Load(i)
		require.NoError(t, err)
		_, _, b, _ := img.At(0, 0).RGBA()
		assert.EqualValues(t, 255, b>>8, "frame %d", i)
	}

	_, err := fs.Load(5)
	assert.Error(t, err)
}

func TestIsStill(t *testing.T) {
	assert.True(t, IsStill("photo.png"))
	assert.True(t, IsStill("photo.JPG"))
	assert.True(t, IsStill("photo.jpeg"))
	assert.False(t, IsStill("clip.mp4"))
	assert.False(t, IsStill("clip.mov"))
}
