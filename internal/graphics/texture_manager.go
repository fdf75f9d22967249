package graphics

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a decoded image waiting to be uploaded by a Renderer.
// Image is nil when loading failed; materials then fall back to their plain color.
type Texture struct {
	Path  string
	Image *image.RGBA
}

// Width returns the image width or zero for an empty texture
func (t *Texture) Width() int {
	if t == nil || t.Image == nil {
		return 0
	}
	return t.Image.Rect.Dx()
}

// Height returns the image height or zero for an empty texture
func (t *Texture) Height() int {
	if t == nil || t.Image == nil {
		return 0
	}
	return t.Image.Rect.Dy()
}

// TextureLoader decodes image files relative to a base directory and caches them by path
type TextureLoader struct {
	BaseDir string

	mu    sync.RWMutex
	cache map[string]*Texture
}

func NewTextureLoader(baseDir string) *TextureLoader {
	return &TextureLoader{BaseDir: baseDir, cache: make(map[string]*Texture)}
}

// Load returns the cached texture for path, decoding it on first use.
// Decode failures are logged and produce an empty texture rather than an error.
func (l *TextureLoader) Load(path string) *Texture {
	full := path
	if l.BaseDir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.BaseDir, path)
	}

	l.mu.RLock()
	if tex, ok := l.cache[full]; ok {
		l.mu.RUnlock()
		return tex
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double check locking
	if tex, ok := l.cache[full]; ok {
		return tex
	}

	tex := &Texture{Path: full}
	img, err := decodeFile(full)
	if err != nil {
		log.Warn().Err(err).Str("path", full).Msg("texture load failed")
	} else {
		tex.Image = img
	}
	l.cache[full] = tex
	return tex
}

func decodeFile(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()
	return DecodeImage(file)
}

// DecodeImage decodes any registered format into RGBA with the bottom row first,
// matching OpenGL's texture origin.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	flipVertical(rgba)
	return rgba, nil
}

func flipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
