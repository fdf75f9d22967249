package pointfield

import (
	_ "embed"

	"spicy/internal/graphics"
)

// Uniform names shared with shaders/pointfield.frag
const (
	UniformPoints     = "points"
	UniformPointCount = "pointCount"
	UniformColor      = "color"
	UniformTime       = "time"
)

var (
	//go:embed shaders/pointfield.vert
	VertexShader string
	//go:embed shaders/pointfield.frag
	FragmentShader string
)

// Defines returns the compile-time constants for the fragment shader
func (c Config) Defines() map[string]any {
	return map[string]any{
		"MAX_POINTS":        c.maxPoints,
		"THRESHOLD":         c.threshold,
		"DISTANCE_SENTINEL": distanceSentinel,
	}
}

// NewMaterial builds the shader material for c. The points uniform holds exactly
// PointCount elements and the pointCount uniform tells the shader where to stop.
func NewMaterial(c Config) *graphics.ShaderMaterial {
	return &graphics.ShaderMaterial{
		VertexShader:   VertexShader,
		FragmentShader: FragmentShader,
		Defines:        c.Defines(),
		Uniforms: graphics.Uniforms{
			UniformPoints:     {Value: c.Points()},
			UniformPointCount: {Value: int32(c.PointCount())},
			UniformColor:      {Value: c.baseColor},
			UniformTime:       {Value: float32(0)},
		},
	}
}
