package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera handles the view and projection matrices.
// FOV is the vertical field of view in degrees.
type PerspectiveCamera struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Up       mgl32.Vec3

	target     mgl32.Vec3
	projection mgl32.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl32.Vec3{0, 1, 0},
		target: mgl32.Vec3{0, 0, -1},
	}
	c.UpdateProjectionMatrix()
	return c
}

// LookAt points the camera at target from its current position
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	c.target = target
}

// Target returns the point the camera is looking at
func (c *PerspectiveCamera) Target() mgl32.Vec3 {
	return c.target
}

// UpdateProjectionMatrix must be called after changing FOV, Aspect, Near or Far
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.target, up)
}
