package sketch

import (
	"fmt"
	"time"

	"golang.org/x/image/font/gofont/gomono"

	"spicy/internal/graphics"
)

const (
	overlayFontPixels = 16
	overlayMargin     = 8
	overlayTopN       = 3
)

// frameStats counts rendered frames and refreshes the FPS figure once per second
type frameStats struct {
	frames      int
	windowStart time.Time
	fps         float64
}

// tick records one frame at now and reports whether fps was refreshed
func (s *frameStats) tick(now time.Time) bool {
	if s.windowStart.IsZero() {
		s.windowStart = now
	}
	s.frames++
	elapsed := now.Sub(s.windowStart)
	if elapsed < time.Second {
		return false
	}
	s.fps = float64(s.frames) / elapsed.Seconds()
	s.frames = 0
	s.windowStart = now
	return true
}

func statsLines(fps float64, budget time.Duration, top string) []string {
	lines := []string{fmt.Sprintf("fps %.1f", fps)}
	if budget > 0 {
		lines = append(lines, fmt.Sprintf("cap %.0f", float64(time.Second)/float64(budget)))
	} else {
		lines = append(lines, "cap off")
	}
	if top != "" {
		lines = append(lines, top)
	}
	return lines
}

// overlay draws frame statistics in the top-left corner; F3 toggles it
type overlay struct {
	text    *graphics.TextRenderer
	visible bool
	stats   frameStats
	lines   []string
}

func newOverlay(visible bool) (*overlay, error) {
	atlas, err := graphics.NewFontAtlas(gomono.TTF, overlayFontPixels)
	if err != nil {
		return nil, err
	}
	text, err := graphics.NewTextRenderer(atlas)
	if err != nil {
		return nil, err
	}
	return &overlay{text: text, visible: visible, lines: []string{"fps -"}}, nil
}

// frame updates the statistics and, when visible, draws them over the sketch
func (o *overlay) frame(now time.Time, fbWidth, fbHeight int, top func() string) {
	if o.stats.tick(now) {
		o.lines = statsLines(o.stats.fps, Budget(), top())
	}
	if !o.visible {
		return
	}
	o.text.DrawLines(o.lines, overlayMargin, overlayMargin, 1, graphics.White, fbWidth, fbHeight)
}

func (o *overlay) toggle() {
	o.visible = !o.visible
}

func (o *overlay) dispose() {
	o.text.Dispose()
}
