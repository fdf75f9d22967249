package graphics

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestFontAtlasBakesPrintableASCII(t *testing.T) {
	atlas, err := NewFontAtlas(gomono.TTF, 16)
	if err != nil {
		t.Fatalf("bake: %v", err)
	}
	for r := rune(32); r <= 126; r++ {
		if _, ok := atlas.Glyphs[r]; !ok {
			t.Fatalf("missing glyph %q", r)
		}
	}
	if atlas.Image.Rect.Dx() != atlasWidth {
		t.Errorf("atlas width %d", atlas.Image.Rect.Dx())
	}
	if h := atlas.Image.Rect.Dy(); h&(h-1) != 0 {
		t.Errorf("atlas height %d is not a power of two", h)
	}
	if atlas.LineHeight <= 0 {
		t.Errorf("expected a positive line height")
	}
	for r, g := range atlas.Glyphs {
		if g.AtlasX+g.Width > float32(atlas.Image.Rect.Dx()) || g.AtlasY+g.Height > float32(atlas.Image.Rect.Dy()) {
			t.Fatalf("glyph %q outside atlas", r)
		}
	}
}

func TestFontAtlasLayoutAndMeasure(t *testing.T) {
	atlas, err := NewFontAtlas(gomono.TTF, 16)
	if err != nil {
		t.Fatal(err)
	}

	// monospace: every glyph advances the same
	w, _ := atlas.Measure("fps", 1)
	if want := 3 * atlas.Glyphs['f'].Advance; w != want {
		t.Errorf("measure %f, want %f", w, want)
	}
	w2, _ := atlas.Measure("fps", 2)
	if w2 != 2*w {
		t.Errorf("scale should multiply width: %f vs %f", w2, w)
	}

	// spaces advance without emitting quads
	if got := len(atlas.Layout("a b", 0, 20, 1)); got != 2*6*4 {
		t.Errorf("expected 2 quads, got %d floats", got)
	}
	if got := len(atlas.Layout("   ", 0, 20, 1)); got != 0 {
		t.Errorf("expected no quads for whitespace, got %d floats", got)
	}
}

func TestFontAtlasRejectsGarbage(t *testing.T) {
	if _, err := NewFontAtlas([]byte("not a font"), 16); err == nil {
		t.Errorf("expected parse error")
	}
}
