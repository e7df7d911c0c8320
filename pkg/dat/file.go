package dat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cfg "github.com/ledworks/go-leddat/pkg/config"
)

// WriteFile encodes the animation and writes it to path, plus a sibling
// .txt summary next to it. Returns the .dat size in bytes.
func (f *File) WriteFile(path string) (int, error) {
	data := f.Encode()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	txt := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
	if err := os.WriteFile(txt, []byte(f.Summary()), 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", txt, err)
	}
	return len(data), nil
}

// ReadTemplateHeader reads the first 512 bytes of an existing .dat file,
// e.g. one exported by LEDBuild, for reuse via LoadTemplateHeader.
func ReadTemplateHeader(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	hdr := make([]byte, cfg.SizeHeader)
	if _, err := io.ReadFull(file, hdr); err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	return hdr, nil
}
