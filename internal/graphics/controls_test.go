package graphics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestCamera() *PerspectiveCamera {
	c := NewPerspectiveCamera(50, 1, 0.01, 100)
	c.Position = mgl32.Vec3{0, 0, -6}
	c.LookAt(mgl32.Vec3{})
	return c
}

func TestCameraViewLooksAtTarget(t *testing.T) {
	c := newTestCamera()
	// the origin sits straight ahead: view space (0, 0, -6)
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 0, -6}, 1e-5) {
		t.Errorf("expected origin at view (0,0,-6), got %v", p)
	}
}

func TestCameraAspectUpdate(t *testing.T) {
	c := newTestCamera()
	before := c.ProjectionMatrix()
	c.Aspect = 2
	if c.ProjectionMatrix() != before {
		t.Fatalf("projection must not change until UpdateProjectionMatrix")
	}
	c.UpdateProjectionMatrix()
	after := c.ProjectionMatrix()
	if math.Abs(float64(after[0]*2-before[0])) > 1e-5 {
		t.Errorf("x scale should halve when aspect doubles: %f -> %f", before[0], after[0])
	}
}

func TestOrbitUpdateWithoutInputKeepsCamera(t *testing.T) {
	c := newTestCamera()
	controls := NewOrbitControls(c)
	if controls.Update() {
		t.Errorf("expected no movement")
	}
	if !c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -6}, 1e-4) {
		t.Errorf("camera drifted to %v", c.Position)
	}
}

func TestOrbitRotateKeepsDistance(t *testing.T) {
	c := newTestCamera()
	controls := NewOrbitControls(c)

	// a quarter viewport height drag is a quarter turn
	controls.Rotate(150, 0, 600)
	if !controls.Update() {
		t.Fatalf("expected movement")
	}
	if d := c.Position.Len(); math.Abs(float64(d)-6) > 1e-4 {
		t.Errorf("orbit changed distance to %f", d)
	}
	want := mgl32.Vec3{6, 0, 0}
	if !c.Position.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("expected %v, got %v", want, c.Position)
	}
	if c.Target() != (mgl32.Vec3{}) {
		t.Errorf("camera should keep looking at origin")
	}
}

func TestOrbitPolarAngleIsClamped(t *testing.T) {
	c := newTestCamera()
	controls := NewOrbitControls(c)
	controls.Rotate(0, 10000, 600)
	controls.Update()

	if c.Position.Y() <= 5.99 || c.Position.Y() > 6 {
		t.Errorf("expected camera just below the pole, got %v", c.Position)
	}
}

func TestOrbitDolly(t *testing.T) {
	c := newTestCamera()
	controls := NewOrbitControls(c)

	controls.Dolly(1)
	controls.Update()
	if d := c.Position.Len(); math.Abs(float64(d)-6*0.95) > 1e-4 {
		t.Errorf("expected distance %f, got %f", 6*0.95, d)
	}

	controls.MinDistance = 5.5
	controls.Dolly(10)
	controls.Update()
	if d := c.Position.Len(); math.Abs(float64(d)-5.5) > 1e-4 {
		t.Errorf("expected clamp at 5.5, got %f", d)
	}
}

func TestOrbitPanMovesTargetAndCamera(t *testing.T) {
	c := newTestCamera()
	controls := NewOrbitControls(c)
	controls.Pan(100, 0, 600)
	controls.Update()

	if controls.Target.Len() == 0 {
		t.Fatalf("expected target to move")
	}
	offset := c.Position.Sub(controls.Target)
	if math.Abs(float64(offset.Len())-6) > 1e-4 {
		t.Errorf("pan should keep the orbit distance, got %f", offset.Len())
	}
	if controls.Target.Y() != 0 || controls.Target.Z() != 0 {
		t.Errorf("horizontal pan should move along X only, got %v", controls.Target)
	}
}

func TestOrbitDisabledIgnoresInput(t *testing.T) {
	c := newTestCamera()
	controls := NewOrbitControls(c)
	controls.Enabled = false
	controls.Rotate(300, 300, 600)
	controls.Dolly(5)
	if controls.Update() {
		t.Errorf("disabled controls must not move the camera")
	}
}
