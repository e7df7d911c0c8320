// Package dat builds .dat animation files for H803TC / H801RC / H802RA
// LED controllers, compatible with files produced by the LEDBuild software.
//
// Layout: a 512-byte header followed by one block per frame, each padded
// to a 512-byte boundary. A frame holds maxLeds LED-slots of three
// groups (B, G, R order); a group carries one byte per port across all
// controllers, 8 ports per controller.
package dat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	cfg "github.com/ledworks/go-leddat/pkg/config"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("out of range")
)

// "HC" signature of LEDBuild-generated files
var headerMagic = []byte{0x00, 0x00, 0x48, 0x43}

// Fixed configuration blocks captured from a known-good LEDBuild export.
// The hardware rejects files without them; their internal meaning is
// undocumented.
var headerConfig = []byte{
	0x40, 0x40, 0x0A, 0x60, 0x40, 0x4A, 0x0A, 0x60,
	0x04, 0x08, 0x50, 0x32,
}

var headerConfigExt = []byte{
	0xB3, 0x2F, 0x76, 0x45, 0x28, 0x02, 0x83, 0xAC,
	0xE3, 0x00, 0x04, 0xDF, 0x67, 0x43, 0x11, 0x40,
	0x08, 0xA0, 0xAF, 0xAF, 0xF5, 0xE9, 0xB4, 0xFB,
	0x15, 0x55, 0xB1, 0xAF, 0x7C, 0x45, 0x32, 0x22,
	0x85, 0xEC, 0xEC, 0x20, 0x0B, 0x9F, 0x7C, 0x03,
	0x17, 0x40, 0x0E, 0xE0, 0xB9, 0x8F, 0x83, 0x31,
	0x52, 0x70, 0x50, 0x55,
}

// File accumulates per-universe pixel data across a timeline and encodes
// it into the controller binary layout. Universe ids are handed out in
// registration order: ids 0-7 land on controller 0, 8-15 on controller 1,
// and so on.
//
// Not safe for concurrent mutation. SetPixel calls for distinct frames
// touch disjoint buffer ranges, so a pool of workers may fill different
// frames in parallel as long as no AddUniverse/SetNumFrames runs at the
// same time.
type File struct {
	universes []int    // LED count per universe
	numFrames int
	pixels    [][]byte // per universe: numFrames * leds * 3, RGB order, linear
	template  []byte   // optional 512-byte header replayed on encode
}

func New() *File {
	return &File{}
}

// NumUniverses returns the number of registered universes (ports).
func (f *File) NumUniverses() int { return len(f.universes) }

// NumFrames returns the global frame count.
func (f *File) NumFrames() int { return f.numFrames }

// UniverseLeds returns the LED count of universe u.
func (f *File) UniverseLeds(u int) (int, error) {
	if u < 0 || u >= len(f.universes) {
		return 0, fmt.Errorf("universe %d not in [0, %d): %w", u, len(f.universes), ErrOutOfRange)
	}
	return f.universes[u], nil
}

// MaxLeds returns the largest LED count across all universes. It sets the
// number of LED-slots in every encoded frame.
func (f *File) MaxLeds() int {
	max := 0
	for _, n := range f.universes {
		if n > max {
			max = n
		}
	}
	return max
}

// ControllerCount returns the number of 8-port controllers needed, at
// least 1.
func (f *File) ControllerCount() int {
	if len(f.universes) == 0 {
		return 1
	}
	return (len(f.universes) + cfg.PortsPerController - 1) / cfg.PortsPerController
}

// GroupSize returns the byte width of one color group: 8 bytes per
// controller in the chain.
func (f *File) GroupSize() int {
	return cfg.PortsPerController * f.ControllerCount()
}

// AddUniverse registers a port with numLeds LEDs and returns its 0-based
// universe id. The pixel buffer is allocated at the current frame count,
// zero-filled, so universes registered late start black on every frame.
func (f *File) AddUniverse(numLeds int) (int, error) {
	if numLeds <= 0 {
		return 0, fmt.Errorf("led count must be positive, got %d: %w", numLeds, ErrInvalidArgument)
	}
	uid := len(f.universes)
	f.universes = append(f.universes, numLeds)
	f.pixels = append(f.pixels, make([]byte, f.numFrames*numLeds*3))
	return uid, nil
}

// SetNumFrames sets the global frame count. Every universe buffer is
// reallocated; pixel data is preserved up to min(old, new) frames and new
// frames start black.
func (f *File) SetNumFrames(n int) error {
	if n <= 0 {
		return fmt.Errorf("frame count must be positive, got %d: %w", n, ErrInvalidArgument)
	}
	for u, numLeds := range f.universes {
		buf := make([]byte, n*numLeds*3)
		copy(buf, f.pixels[u])
		f.pixels[u] = buf
	}
	f.numFrames = n
	return nil
}

// SetPixel stores a linear RGB value. Gamma correction is applied at
// encode time only, so GetPixel reads back exactly what was written.
func (f *File) SetPixel(universe, frame, led int, r, g, b byte) error {
	if err := f.checkIndices(universe, frame, led); err != nil {
		return err
	}
	off := (frame*f.universes[universe] + led) * 3
	buf := f.pixels[universe]
	buf[off] = r
	buf[off+1] = g
	buf[off+2] = b
	return nil
}

// GetPixel returns the linear RGB value of a pixel.
func (f *File) GetPixel(universe, frame, led int) (r, g, b byte, err error) {
	if err := f.checkIndices(universe, frame, led); err != nil {
		return 0, 0, 0, err
	}
	off := (frame*f.universes[universe] + led) * 3
	buf := f.pixels[universe]
	return buf[off], buf[off+1], buf[off+2], nil
}

// AppendFrames grows the timeline by len(frames) and fills the new frames
// of the given universe. Each frame must hold leds*3 bytes of RGB data.
// Other universes stay black in the appended range.
func (f *File) AppendFrames(universe int, frames [][]byte) error {
	if universe < 0 || universe >= len(f.universes) {
		return fmt.Errorf("universe %d not in [0, %d): %w", universe, len(f.universes), ErrOutOfRange)
	}
	numLeds := f.universes[universe]
	for i, fr := range frames {
		if len(fr) != numLeds*3 {
			return fmt.Errorf("frame %d has %d bytes, want %d: %w", i, len(fr), numLeds*3, ErrInvalidArgument)
		}
	}
	if len(frames) == 0 {
		return nil
	}
	start := f.numFrames
	if err := f.SetNumFrames(start + len(frames)); err != nil {
		return err
	}
	buf := f.pixels[universe]
	for i, fr := range frames {
		copy(buf[(start+i)*numLeds*3:], fr)
	}
	return nil
}

// Clear drops all frame data but keeps the universe configuration.
func (f *File) Clear() {
	f.numFrames = 0
	for u := range f.pixels {
		f.pixels[u] = nil
	}
}

// LoadTemplateHeader stores the first 512 bytes of an externally supplied
// reference file. Encode replays it verbatim except for the controller
// count field, which is always recomputed.
func (f *File) LoadTemplateHeader(b []byte) error {
	if len(b) < cfg.SizeHeader {
		return fmt.Errorf("template header needs %d bytes, got %d: %w", cfg.SizeHeader, len(b), ErrInvalidArgument)
	}
	f.template = make([]byte, cfg.SizeHeader)
	copy(f.template, b)
	return nil
}

// Encode serializes the accumulated state into the complete .dat byte
// stream: header plus one padded block per frame. It is a pure function
// of the builder state and never fails.
func (f *File) Encode() []byte {
	maxLeds := f.MaxLeds()
	grpSize := f.GroupSize()
	frameBytes := maxLeds * 3 * grpSize
	padded := frameBytes
	if rem := frameBytes % cfg.SizeFramePad; rem != 0 {
		padded += cfg.SizeFramePad - rem
	}

	out := make([]byte, cfg.SizeHeader+f.numFrames*padded)
	f.buildHeader(out[:cfg.SizeHeader])
	for idx := 0; idx < f.numFrames; idx++ {
		f.buildFrame(out[cfg.SizeHeader+idx*padded:], idx, grpSize)
	}
	return out
}

func (f *File) buildHeader(hdr []byte) {
	if f.template != nil {
		copy(hdr, f.template)
	} else {
		copy(hdr, headerMagic)
		copy(hdr[4:], headerConfig)
		copy(hdr[18:], headerConfigExt)
	}
	binary.LittleEndian.PutUint16(hdr[cfg.OffsetControllerCount:], uint16(f.ControllerCount()))
}

// buildFrame writes one frame into buf. Channel groups are in B, G, R
// order. Within a controller's 8-byte block the ports are reversed:
// local port 0 lands on byte 7, local port 7 on byte 0. That mapping is
// fixed by the controller firmware.
func (f *File) buildFrame(buf []byte, frame, grpSize int) {
	for uid, numLeds := range f.universes {
		ctrl := uid / cfg.PortsPerController
		local := uid % cfg.PortsPerController
		bytePos := ctrl*cfg.PortsPerController + (cfg.PortsPerController - 1 - local)

		pixels := f.pixels[uid][frame*numLeds*3:]
		for led := 0; led < numLeds; led++ {
			r := pixels[led*3]
			g := pixels[led*3+1]
			b := pixels[led*3+2]

			base := led * 3 * grpSize
			buf[base+bytePos] = gammaLUT[b]
			buf[base+grpSize+bytePos] = gammaLUT[g]
			buf[base+2*grpSize+bytePos] = gammaLUT[r]
		}
	}
}

// Summary returns the human-readable listing that accompanies a .dat
// file. Debugging aid only, no binary semantics.
func (f *File) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Universes: %d\n", len(f.universes))
	for i, n := range f.universes {
		fmt.Fprintf(&sb, "Universe %d: %d LEDs\n", i, n)
	}
	fmt.Fprintf(&sb, "Frames: %d\n", f.numFrames)
	return sb.String()
}

func (f *File) checkIndices(universe, frame, led int) error {
	if universe < 0 || universe >= len(f.universes) {
		return fmt.Errorf("universe %d not in [0, %d): %w", universe, len(f.universes), ErrOutOfRange)
	}
	if frame < 0 || frame >= f.numFrames {
		return fmt.Errorf("frame %d not in [0, %d): %w", frame, f.numFrames, ErrOutOfRange)
	}
	if led < 0 || led >= f.universes[universe] {
		return fmt.Errorf("led %d not in [0, %d): %w", led, f.universes[universe], ErrOutOfRange)
	}
	return nil
}
