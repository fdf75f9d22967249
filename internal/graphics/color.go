package graphics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string is neither a CSS color name nor a hex triplet.
var ErrInvalidColor = errors.New("invalid color")

// Color is a linear RGB color with channels in 0..1
type Color struct {
	R, G, B float32
}

var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// ParseColor accepts CSS color names ("tomato", "white") and "#rgb" / "#rrggbb" hex strings
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	rgba, ok := colornames.Map[s]
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float32(rgba.R) / 255,
		G: float32(rgba.G) / 255,
		B: float32(rgba.B) / 255,
	}, nil
}

// MustColor is ParseColor for literals known to be valid
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// Vec3 returns the color as an RGB vector for uniform upload
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}
