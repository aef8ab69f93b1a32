package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/eringen/entrykit"
)

const (
	fullSize    = "full"
	jpegQuality = 80
	sizesSubdir = ".sizes"
)

// ErrUnknownSize is returned for a thumbnail size that is not configured.
var ErrUnknownSize = errors.New("preview: unknown image size")

// fileThumbnails serves entry thumbnails from the uploads directory and
// derives the named sizes on first use.
type fileThumbnails struct {
	dir     string
	baseURL string
	sizes   map[string]int
	lookup  func(entryID string) string

	mu sync.Mutex // serializes variant generation
}

func newFileThumbnails(dir, baseURL string, sizes map[string]int, lookup func(string) string) *fileThumbnails {
	return &fileThumbnails{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), sizes: sizes, lookup: lookup}
}

// IsEligible reports whether the entry has a thumbnail file on disk.
func (t *fileThumbnails) IsEligible(e entrykit.Entry) bool {
	name := t.lookup(e.ID)
	if !validFilename(name) {
		return false
	}
	_, err := os.Stat(filepath.Join(t.dir, name))
	return err == nil
}

// ImageMarkup renders the <img> for size with its scaled dimensions.
func (t *fileThumbnails) ImageMarkup(e entrykit.Entry, size string) (entrykit.Fragment, error) {
	name := t.lookup(e.ID)
	if !validFilename(name) {
		return "", fmt.Errorf("preview: entry %s has no thumbnail", e.ID)
	}
	w, h, err := t.dimensions(name, size)
	if err != nil {
		return "", err
	}
	src := t.baseURL + "/uploads/" + size + "/" + name
	return entrykit.Fragment(fmt.Sprintf(
		`<img src="%s" width="%d" height="%d" alt="" class="attachment-%s size-%s" loading="lazy">`,
		templ.EscapeString(src), w, h, templ.EscapeString(size), templ.EscapeString(size),
	)), nil
}

// dimensions returns the pixel size of name once scaled to size.
func (t *fileThumbnails) dimensions(name, size string) (int, int, error) {
	f, err := os.Open(filepath.Join(t.dir, name))
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	if size == fullSize {
		return cfg.Width, cfg.Height, nil
	}
	maxWidth, ok := t.sizes[size]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownSize, size)
	}
	w, h := scaledSize(cfg.Width, cfg.Height, maxWidth)
	return w, h, nil
}

// Variant returns the path of name at size, generating the scaled JPEG on
// first request.
func (t *fileThumbnails) Variant(size, name string) (string, error) {
	if !validFilename(name) {
		return "", os.ErrNotExist
	}
	original := filepath.Join(t.dir, name)
	if size == fullSize {
		return original, nil
	}
	maxWidth, ok := t.sizes[size]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSize, size)
	}

	out := filepath.Join(t.dir, sizesSubdir, size, strings.TrimSuffix(name, filepath.Ext(name))+".jpg")
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}

	src, err := os.Open(original)
	if err != nil {
		return "", err
	}
	defer src.Close()
	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	data, err := resizeJPEG(img, maxWidth)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// resizeJPEG scales img down to maxWidth (never up) and encodes it as JPEG.
func resizeJPEG(img image.Image, maxWidth int) ([]byte, error) {
	bounds := img.Bounds()
	w, h := scaledSize(bounds.Dx(), bounds.Dy(), maxWidth)
	if w != bounds.Dx() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func scaledSize(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth || w == 0 {
		return w, h
	}
	return maxWidth, h * maxWidth / w
}

// validFilename rejects empty names and anything that could leave the
// uploads directory.
func validFilename(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}
