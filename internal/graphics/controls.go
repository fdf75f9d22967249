package graphics

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const orbitEPS = 1e-6

type orbitState int

const (
	orbitNone orbitState = iota
	orbitRotate
	orbitPan
)

// OrbitControls rotates, dollies and pans a camera around a target point.
// Left drag orbits, right drag pans and the scroll wheel dollies.
// The camera is passed in explicitly; input arrives through Attach or the exported
// Rotate/Dolly/Pan methods.
type OrbitControls struct {
	Camera  *PerspectiveCamera
	Target  mgl32.Vec3
	Enabled bool

	RotateSpeed float64
	ZoomSpeed   float64
	PanSpeed    float64

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float64
	MaxPolarAngle float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  mgl32.Vec3

	window       *glfw.Window
	state        orbitState
	lastX, lastY float64
}

func NewOrbitControls(camera *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		Camera:        camera,
		Target:        camera.Target(),
		Enabled:       true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
		scale:         1,
	}
}

// Rotate orbits by a pointer delta in pixels; a full viewport height drag is one turn
func (c *OrbitControls) Rotate(dx, dy float64, viewportHeight int) {
	if !c.Enabled || viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	c.deltaTheta -= 2 * math.Pi * dx / h * c.RotateSpeed
	c.deltaPhi -= 2 * math.Pi * dy / h * c.RotateSpeed
}

// Dolly moves toward the target for positive steps and away for negative ones
func (c *OrbitControls) Dolly(steps float64) {
	if !c.Enabled || steps == 0 {
		return
	}
	c.scale *= math.Pow(c.zoomScale(), steps)
}

func (c *OrbitControls) zoomScale() float64 {
	return math.Pow(0.95, c.ZoomSpeed)
}

// Pan shifts camera and target in the view plane by a pointer delta in pixels
func (c *OrbitControls) Pan(dx, dy float64, viewportHeight int) {
	if !c.Enabled || viewportHeight <= 0 {
		return
	}
	offset := c.Camera.Position.Sub(c.Target)
	targetDistance := float64(offset.Len()) * math.Tan(float64(mgl32.DegToRad(c.Camera.FOV))/2)
	h := float64(viewportHeight)

	view := c.Camera.ViewMatrix()
	right := view.Row(0).Vec3()
	up := view.Row(1).Vec3()

	left := float32(2 * dx * targetDistance / h * c.PanSpeed)
	upward := float32(2 * dy * targetDistance / h * c.PanSpeed)
	c.panOffset = c.panOffset.Add(right.Mul(-left)).Add(up.Mul(upward))
}

// Update applies pending input to the camera and reports whether it moved
func (c *OrbitControls) Update() bool {
	prevPos := c.Camera.Position
	prevTarget := c.Camera.Target()

	offset := c.Camera.Position.Sub(c.Target)
	radius := float64(offset.Len())
	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(clamp(float64(offset.Y())/radius, -1, 1))
	}

	theta += c.deltaTheta
	phi += c.deltaPhi
	phi = clamp(phi, c.MinPolarAngle, c.MaxPolarAngle)
	phi = clamp(phi, orbitEPS, math.Pi-orbitEPS)

	radius *= c.scale
	radius = clamp(radius, float64(c.MinDistance), float64(c.MaxDistance))

	c.Target = c.Target.Add(c.panOffset)

	sinPhiRadius := math.Sin(phi) * radius
	offset = mgl32.Vec3{
		float32(sinPhiRadius * math.Sin(theta)),
		float32(math.Cos(phi) * radius),
		float32(sinPhiRadius * math.Cos(theta)),
	}
	c.Camera.Position = c.Target.Add(offset)
	c.Camera.LookAt(c.Target)

	c.deltaTheta, c.deltaPhi = 0, 0
	c.scale = 1
	c.panOffset = mgl32.Vec3{}

	moved := c.Camera.Position.Sub(prevPos).LenSqr() > orbitEPS ||
		c.Camera.Target().Sub(prevTarget).LenSqr() > orbitEPS
	return moved
}

// Attach listens for mouse input on the window until Dispose
func (c *OrbitControls) Attach(w *glfw.Window) {
	c.Dispose()
	c.window = w

	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			c.state = orbitNone
			return
		}
		c.lastX, c.lastY = w.GetCursorPos()
		switch button {
		case glfw.MouseButtonLeft:
			c.state = orbitRotate
		case glfw.MouseButtonRight, glfw.MouseButtonMiddle:
			c.state = orbitPan
		}
	})

	w.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		dx, dy := xpos-c.lastX, ypos-c.lastY
		c.lastX, c.lastY = xpos, ypos
		_, h := w.GetSize()
		switch c.state {
		case orbitRotate:
			c.Rotate(dx, dy, h)
		case orbitPan:
			c.Pan(dx, dy, h)
		}
	})

	w.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		c.Dolly(yoff)
	})
}

// Dispose detaches the window callbacks installed by Attach
func (c *OrbitControls) Dispose() {
	if c.window == nil {
		return
	}
	c.window.SetMouseButtonCallback(nil)
	c.window.SetCursorPosCallback(nil)
	c.window.SetScrollCallback(nil)
	c.window = nil
	c.state = orbitNone
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
