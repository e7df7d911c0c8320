// Package sampler maps evenly arc-length-spaced positions along a 2D
// polyline onto colors read from a raster image. One polyline describes
// where a physical LED strip lies over the source footage; one sample
// per LED.
package sampler

import (
	"image"
	"math"
)

// Point is a 2D coordinate in source-image pixel space.
type Point struct {
	X float64
	Y float64
}

// Port describes one physical strip: how many LEDs it carries, how many
// are blanked at either end, and the polyline it follows over the image.
type Port struct {
	LedCount  int
	TrimStart int
	TrimEnd   int
	Points    []Point
}

// RGB is a linear 0-255 color triple. Alpha is discarded at sampling.
type RGB struct {
	R, G, B uint8
}

// Sample reads numSamples colors along the polyline, spaced evenly by
// cumulative path distance from the first point to the last. Coordinates
// are rounded to the nearest pixel and clamped to
// [0, maxW-1] x [0, maxH-1]. A zero-length path (single point, or all
// points coincident) broadcasts the color at that point.
func Sample(src image.Image, points []Point, numSamples, maxW, maxH int) []RGB {
	out := make([]RGB, numSamples)
	if len(points) == 0 {
		return out
	}

	segs := make([]float64, len(points)-1)
	total := 0.0
	for i := 1; i < len(points); i++ {
		d := math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
		segs[i-1] = d
		total += d
	}

	if total == 0 {
		c := readPixel(src, points[0].X, points[0].Y, maxW, maxH)
		for i := range out {
			out[i] = c
		}
		return out
	}

	for i := 0; i < numSamples; i++ {
		target := 0.0
		if numSamples > 1 {
			target = float64(i) / float64(numSamples-1) * total
		}

		// walk cumulative segment lengths to the containing segment
		seg := 0
		acc := 0.0
		for seg < len(segs)-1 && acc+segs[seg] < target {
			acc += segs[seg]
			seg++
		}

		length := segs[seg]
		if length == 0 {
			length = 1
		}
		t := (target - acc) / length
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}

		x := points[seg].X + (points[seg+1].X-points[seg].X)*t
		y := points[seg].Y + (points[seg+1].Y-points[seg].Y)*t
		out[i] = readPixel(src, x, y, maxW, maxH)
	}
	return out
}

// SamplePort samples the active run of a port's strip and blanks the
// trimmed LEDs at either end. A fully trimmed port yields an all-black
// strip rather than an error; that state is reachable during interactive
// editing and must stay harmless.
func SamplePort(src image.Image, port Port, maxW, maxH int) []RGB {
	out := make([]RGB, port.LedCount)
	active := port.LedCount - port.TrimStart - port.TrimEnd
	if active <= 0 {
		return out
	}
	copy(out[port.TrimStart:], Sample(src, port.Points, active, maxW, maxH))
	return out
}

func readPixel(src image.Image, x, y float64, maxW, maxH int) RGB {
	px := clamp(int(math.Round(x)), 0, maxW-1)
	py := clamp(int(math.Round(y)), 0, maxH-1)
	min := src.Bounds().Min
	r, g, b, _ := src.At(min.X+px, min.Y+py).RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
