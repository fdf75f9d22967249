package graphics

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph describes a single character's placement and metrics within the atlas
type Glyph struct {
	// Pixel coordinates of the glyph in the atlas image (top-left origin)
	AtlasX, AtlasY float32
	// Glyph bitmap size in pixels
	Width, Height float32
	// Offset from the pen position on the baseline
	BearingX, BearingY float32
	Advance            float32
}

// FontAtlas is a baked single-channel glyph sheet for printable ASCII
type FontAtlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight float32
}

const (
	atlasWidth   = 512
	atlasPadding = 1
)

// NewFontAtlas parses a TrueType/OpenType font and bakes runes 32..126 at the given pixel size
func NewFontAtlas(ttf []byte, pixels float64) (*FontAtlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type baked struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}
	var glyphs []baked
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, baked{r, dr, mask, maskp, advance})
	}

	// First pass: row-pack to find the atlas height
	type slot struct{ x, y int }
	slots := make([]slot, len(glyphs))
	x, y, rowH := 0, 0, 0
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if x+w > atlasWidth {
			x = 0
			y += rowH + atlasPadding
			rowH = 0
		}
		slots[i] = slot{x, y}
		x += w + atlasPadding
		if h > rowH {
			rowH = h
		}
	}
	atlasH := 1
	for atlasH < y+rowH {
		atlasH <<= 1
	}

	// Second pass: copy glyph masks and record metrics
	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH))
	out := make(map[rune]Glyph, len(glyphs))
	for i, g := range glyphs {
		s := slots[i]
		w, h := g.dr.Dx(), g.dr.Dy()
		if w > 0 && h > 0 && g.mask != nil {
			draw.Draw(img, image.Rect(s.x, s.y, s.x+w, s.y+h), g.mask, g.maskp, draw.Src)
		}
		out[g.r] = Glyph{
			AtlasX:   float32(s.x),
			AtlasY:   float32(s.y),
			Width:    float32(w),
			Height:   float32(h),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  float32(math.Round(float64(g.advance) / 64.0)),
		}
	}

	m := face.Metrics()
	return &FontAtlas{
		Image:      img,
		Glyphs:     out,
		LineHeight: float32(math.Ceil(float64(m.Height) / 64.0)),
	}, nil
}

// Measure returns the width and tallest glyph height of text at the given scale
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		width += g.Advance * scale
		if g.Height*scale > maxH {
			maxH = g.Height * scale
		}
	}
	return width, maxH
}

// Layout builds interleaved quads (x, y, u, v; six vertices per glyph) for text with its
// baseline starting at (x, y) in a top-left origin pixel space. Unknown runes advance like a space.
func (a *FontAtlas) Layout(text string, x, y, scale float32) []float32 {
	w := float32(a.Image.Rect.Dx())
	h := float32(a.Image.Rect.Dy())

	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += a.Glyphs[' '].Advance * scale
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := x + g.BearingX*scale
			y0 := y - g.BearingY*scale
			x1 := x0 + g.Width*scale
			y1 := y0 + g.Height*scale
			u0, v0 := g.AtlasX/w, g.AtlasY/h
			u1, v1 := (g.AtlasX+g.Width)/w, (g.AtlasY+g.Height)/h
			vertices = append(vertices,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += g.Advance * scale
	}
	return vertices
}
