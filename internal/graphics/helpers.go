package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NewAxesHelper draws the X, Y and Z axes in red, green and blue
func NewAxesHelper(size float32) *LineSegments {
	g := &Geometry{
		Positions: []mgl32.Vec3{
			{0, 0, 0}, {size, 0, 0},
			{0, 0, 0}, {0, size, 0},
			{0, 0, 0}, {0, 0, size},
		},
		Colors: []mgl32.Vec3{
			{1, 0, 0}, {1, 0.6, 0},
			{0, 1, 0}, {0.6, 1, 0},
			{0, 0, 1}, {0, 0.6, 1},
		},
	}
	ls := NewLineSegments(g, &LineMaterial{Color: White, VertexColors: true})
	ls.Name = "AxesHelper"
	return ls
}

// PointLightHelper outlines a point light with a small wire sphere that tracks the light
type PointLightHelper struct {
	LineSegments
	Light *PointLight
}

func NewPointLightHelper(light *PointLight, size float32) *PointLightHelper {
	g := NewWireframeGeometry(NewSphereGeometry(size, 4, 2))
	h := &PointLightHelper{
		LineSegments: *NewLineSegments(g, &LineMaterial{Color: light.Color}),
		Light:        light,
	}
	h.Name = "PointLightHelper"
	return h
}

// sync follows the light's world transform; called after the scene matrices are updated
func (h *PointLightHelper) sync() {
	h.matrixWorld = h.Light.MatrixWorld()
	h.Material.Color = h.Light.Color
}
