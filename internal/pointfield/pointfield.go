// Package pointfield shades a surface by its distance to a fixed set of reference points.
//
// Every fragment takes the minimum Euclidean distance from its object-space position to
// the reference points; positions closer than the threshold render white, the rest keep
// the base color. The result is a dot pattern that does not depend on texture coordinates.
//
// The same function exists twice: as GLSL for the GPU (see Material) and as Go in
// Config.Shade, which the tests use as the reference.
package pointfield

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Threshold is the dot radius in the mesh's local units. It is not scaled with the
	// object, so it has to be tuned together with the geometry size.
	Threshold float32 = 0.15

	// DefaultMaxPoints is the array bound compiled into the shader
	DefaultMaxPoints = 64

	// distanceSentinel is the starting minimum; with no points it is the result
	distanceSentinel float32 = 10000
)

// HighlightColor is what positions inside the threshold render as
var HighlightColor = mgl32.Vec3{1, 1, 1}

var (
	ErrNoCapacity    = errors.New("pointfield: max point count must be at least 1")
	ErrTooManyPoints = errors.New("pointfield: point count exceeds max point count")
	ErrThreshold     = errors.New("pointfield: threshold must not be negative")
)

// Config describes one distance field: the shader's compile-time array bound,
// the points actually uploaded and the colors they mix between.
// A Config is immutable; its points are copied on construction.
type Config struct {
	maxPoints int
	points    []mgl32.Vec3
	threshold float32
	baseColor mgl32.Vec3
}

// NewConfig validates and copies points. maxPoints is the array bound the shader is
// compiled with and must be at least len(points).
func NewConfig(maxPoints int, points []mgl32.Vec3, baseColor mgl32.Vec3) (Config, error) {
	c := Config{
		maxPoints: maxPoints,
		points:    append([]mgl32.Vec3(nil), points...),
		threshold: Threshold,
		baseColor: baseColor,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the invariants the shader relies on
func (c Config) Validate() error {
	if c.maxPoints < 1 {
		return fmt.Errorf("%w: got %d", ErrNoCapacity, c.maxPoints)
	}
	if len(c.points) > c.maxPoints {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPoints, len(c.points), c.maxPoints)
	}
	if c.threshold < 0 {
		return fmt.Errorf("%w: %v", ErrThreshold, c.threshold)
	}
	return nil
}

func (c Config) MaxPoints() int { return c.maxPoints }

func (c Config) PointCount() int { return len(c.points) }

func (c Config) Threshold() float32 { return c.threshold }

func (c Config) BaseColor() mgl32.Vec3 { return c.baseColor }

// Points returns a copy of the reference points
func (c Config) Points() []mgl32.Vec3 {
	return append([]mgl32.Vec3(nil), c.points...)
}

// MinDistance scans every point and returns the smallest distance to p.
// With no points it returns the sentinel.
func (c Config) MinDistance(p mgl32.Vec3) float32 {
	dist := distanceSentinel
	for _, q := range c.points {
		if d := p.Sub(q).Len(); d < dist {
			dist = d
		}
	}
	return dist
}

// Mask is 1 inside the threshold radius of any point and 0 elsewhere
func (c Config) Mask(p mgl32.Vec3) float32 {
	return 1 - step(c.threshold, c.MinDistance(p))
}

// Shade mixes the base color toward white by the mask
func (c Config) Shade(p mgl32.Vec3) mgl32.Vec3 {
	return mix(c.baseColor, HighlightColor, c.Mask(p))
}

// step matches GLSL: 0 when x < edge, otherwise 1
func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
