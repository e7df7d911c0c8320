package video

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledworks/go-leddat/pkg/logger"
)

var log = logger.Log

// call ffmpeg to decode the video into frames
func ExtractFrames(filename, dir string, fps int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	framesPath := filepath.Join(dir, "frame_%08d.png")
	args := []string{"-y", "-i", filename}
	if fps > 0 {
		args = append(args, "-vf", fmt.Sprintf("fps=%d", fps))
	}
	args = append(args, framesPath)
	log.Debugf("Running ffmpeg command: ffmpeg %s\n", strings.Join(args, " "))
	return exec.Command("ffmpeg", args...).Run()
}

// FrameSet is an ordered collection of raster frames on disk. A still
// image is represented as a single file replayed for a fixed count.
type FrameSet struct {
	files  []string
	repeat int
}

// Collect lists the extracted frame files of a directory in frame order.
func Collect(dir string) (*FrameSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame dir %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return &FrameSet{files: files}, nil
}

// Still wraps a single image file as a frame set of the given length.
func Still(path string, frames int) *FrameSet {
	if frames < 1 {
		frames = 1
	}
	return &FrameSet{files: []string{path}, repeat: frames}
}

// IsStill reports whether the input is a plain image rather than a video.
func IsStill(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func (f *FrameSet) Count() int {
	if f.repeat > 0 {
		return f.repeat
	}
	return len(f.files)
}

// Load decodes frame i. For a still set every index yields the same
// image.
func (f *FrameSet) Load(i int) (image.Image, error) {
	if i < 0 || i >= f.Count() {
		return nil, fmt.Errorf("frame %d not in [0, %d)", i, f.Count())
	}
	if f.repeat > 0 {
		i = 0
	}
	file, err := os.Open(f.files[i])
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.files[i], err)
	}
	return img, nil
}
