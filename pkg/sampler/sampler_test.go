package sampler

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// coordImage encodes each pixel's own position into its color:
// R = x, G = y. Keeps sample positions directly assertable.
func coordImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

func TestSampleHorizontalLine(t *testing.T) {
	img := coordImage(101, 3)
	points := []Point{{X: 0, Y: 1}, {X: 100, Y: 1}}

	got := Sample(img, points, 5, 101, 3)
	want := []uint8{0, 25, 50, 75, 100}
	assert.Len(t, got, 5)
	for i, c := range got {
		assert.EqualValues(t, want[i], c.R, "sample %d x", i)
		assert.EqualValues(t, 1, c.G, "sample %d y", i)
	}
}

func TestSampleUnevenSegments(t *testing.T) {
	img := coordImage(32, 32)
	// total length 40: a short horizontal leg then a long vertical one
	points := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 30}}

	got := Sample(img, points, 5, 32, 32)
	want := []struct{ x, y uint8 }{
		{0, 0}, {10, 0}, {10, 10}, {10, 20}, {10, 30},
	}
	for i, c := range got {
		assert.EqualValues(t, want[i].x, c.R, "sample %d x", i)
		assert.EqualValues(t, want[i].y, c.G, "sample %d y", i)
	}
}

func TestSampleSinglePointBroadcast(t *testing.T) {
	img := coordImage(16, 16)
	got := Sample(img, []Point{{X: 5, Y: 7}}, 6, 16, 16)
	assert.Len(t, got, 6)
	for i, c := range got {
		assert.Equal(t, RGB{R: 5, G: 7}, c, "sample %d", i)
	}
}

func TestSampleCoincidentPoints(t *testing.T) {
	img := coordImage(16, 16)
	points := []Point{{X: 3, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 4}}
	got := Sample(img, points, 4, 16, 16)
	for i, c := range got {
		assert.Equal(t, RGB{R: 3, G: 4}, c, "sample %d", i)
	}
}

func TestSampleSingleSample(t *testing.T) {
	img := coordImage(16, 16)
	got := Sample(img, []Point{{X: 2, Y: 2}, {X: 10, Y: 2}}, 1, 16, 16)
	assert.Len(t, got, 1)
	assert.Equal(t, RGB{R: 2, G: 2}, got[0])
}

func TestSampleClampsToBounds(t *testing.T) {
	img := coordImage(16, 16)
	points := []Point{{X: -40, Y: -40}, {X: 40, Y: 40}}
	got := Sample(img, points, 3, 16, 16)
	assert.Equal(t, RGB{R: 0, G: 0}, got[0])
	assert.Equal(t, RGB{R: 15, G: 15}, got[2])
}

func TestSampleZeroLengthMiddleSegment(t *testing.T) {
	img := coordImage(16, 16)
	points := []Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}
	got := Sample(img, points, 3, 16, 16)
	assert.Equal(t, RGB{R: 0, G: 0}, got[0])
	assert.Equal(t, RGB{R: 5, G: 0}, got[1])
	assert.Equal(t, RGB{R: 10, G: 0}, got[2])
}

func TestSamplePortTrim(t *testing.T) {
	img := coordImage(101, 3)
	port := Port{
		LedCount:  10,
		TrimStart: 2,
		TrimEnd:   1,
		Points:    []Point{{X: 0, Y: 1}, {X: 100, Y: 1}},
	}

	got := SamplePort(img, port, 101, 3)
	assert.Len(t, got, 10)

	black := RGB{}
	assert.Equal(t, black, got[0])
	assert.Equal(t, black, got[1])
	assert.Equal(t, black, got[9])

	want := Sample(img, port.Points, 7, 101, 3)
	assert.Equal(t, want, got[2:9])
}

func TestSamplePortFullyTrimmed(t *testing.T) {
	img := coordImage(16, 16)
	port := Port{
		LedCount:  10,
		TrimStart: 6,
		TrimEnd:   5,
		Points:    []Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
	}

	// over-trimmed is a valid editing state: all black, no error
	got := SamplePort(img, port, 16, 16)
	assert.Len(t, got, 10)
	for i, c := range got {
		assert.Equal(t, RGB{}, c, "led %d", i)
	}
}
