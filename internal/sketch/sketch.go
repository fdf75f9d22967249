// Package sketch runs a creative-coding sketch in a GLFW window: it builds the
// sketch once, drives its resize and render callbacks from the main thread and
// unloads it exactly once when the window closes or the process is signalled.
package sketch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var ErrContext = errors.New("unsupported rendering context")

// Settings configures how a sketch is run
type Settings struct {
	Animate    bool    // render continuously; otherwise only on resize and expose
	Context    string  // "gl" or "webgl"
	Dimensions [2]int  // window size in screen coordinates; zero keeps the current size
	FPS        int     // frame cap; zero keeps config.GetFPSLimit
	Duration   float64 // loop length in seconds; zero runs forever
	Stats      bool    // show the frame statistics overlay at start; F3 toggles it
	Title      string
}

// Validate reports settings the runner cannot honour
func (s Settings) Validate() error {
	switch strings.ToLower(s.Context) {
	case "gl", "webgl":
	default:
		return fmt.Errorf("%w: %q", ErrContext, s.Context)
	}
	if s.Dimensions[0] < 0 || s.Dimensions[1] < 0 {
		return fmt.Errorf("invalid dimensions %dx%d", s.Dimensions[0], s.Dimensions[1])
	}
	if s.FPS < 0 {
		return fmt.Errorf("invalid fps %d", s.FPS)
	}
	if s.Duration < 0 {
		return fmt.Errorf("invalid duration %v", s.Duration)
	}
	return nil
}

// Context is what a sketch factory receives. The window's GL context is current.
type Context struct {
	Window   *glfw.Window
	Settings Settings
}

type ResizeProps struct {
	PixelRatio     float64
	ViewportWidth  int // logical size; the drawing buffer is this times PixelRatio
	ViewportHeight int
}

type RenderProps struct {
	Time      float64 // seconds since start, wrapped to Duration when set
	DeltaTime float64
	Playhead  float64 // Time / Duration, or 0 without a duration
	Frame     int
}

// Sketch is the set of lifecycle callbacks a running sketch provides
type Sketch interface {
	Resize(ResizeProps)
	Render(RenderProps)
	Unload()
}

// Func builds a sketch. It runs once, on the main thread, before the first resize.
type Func func(Context) (Sketch, error)
