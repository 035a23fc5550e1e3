package output

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/util"
)

const maxCardName = 60

// Writer writes outputs into one directory.
type Writer struct {
	OutputDir string
	// Overwrite lets single-card files replace existing ones. Sheets always
	// get a fresh name.
	Overwrite bool
	logger    *zap.Logger
}

// New creates a Writer targeting outputDir, creating it if needed. An empty
// outputDir means the working directory.
func New(outputDir string, overwrite bool, logger *zap.Logger) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := util.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{OutputDir: outputDir, Overwrite: overwrite, logger: logger}, nil
}

// WriteCard encodes img as PNG named after display. n and copies number
// the file when more than one copy is written: Kuzan_1.png, Kuzan_2.png.
func (w *Writer) WriteCard(display string, n, copies int, img image.Image) (string, error) {
	base := display
	if copies > 1 {
		base = fmt.Sprintf("%s_%d", display, n)
	}
	name := SafeName(base)
	if len(name) > maxCardName {
		name = name[:maxCardName]
	}
	data, err := EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", display, err)
	}
	path := filepath.Join(w.OutputDir, name+".png")
	if !w.Overwrite {
		path = UniquePath(path)
	}
	return w.write(path, data)
}

// WriteSheets encodes pages with enc and writes them as A4_<title>.pdf or
// A4_<title>_001.png, A4_<title>_002.png, ...
func (w *Writer) WriteSheets(title string, enc Encoder, pages []*imagepkg.Page) ([]string, error) {
	if len(pages) == 0 {
		return nil, nil
	}
	if title == "" {
		title = "sheet"
	}
	blobs, err := enc.Encode(pages)
	if err != nil {
		return nil, err
	}
	base := "A4_" + SafeName(title)
	var written []string
	for i, data := range blobs {
		name := base
		if enc.SplitPages() {
			name = fmt.Sprintf("%s_%03d", base, i+1)
		}
		path, err := w.write(UniquePath(filepath.Join(w.OutputDir, name+enc.Extension())), data)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (w *Writer) write(path string, data []byte) (string, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	w.logger.Info("wrote file", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SafeName replaces every run of characters outside [A-Za-z0-9_-] with a
// single underscore.
func SafeName(s string) string {
	return unsafeRun.ReplaceAllString(s, "_")
}

// UniquePath returns path, or "name (n).ext" with the smallest n >= 1 that
// does not exist yet.
func UniquePath(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
