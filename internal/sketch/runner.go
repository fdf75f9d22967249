package sketch

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog/log"
	"github.com/xlab/closer"

	"spicy/internal/config"
	"spicy/internal/input"
	"spicy/internal/profiling"
)

// slowFrameFactor is how many frame budgets a frame may take before it is logged
const slowFrameFactor = 2

// Run builds the sketch and drives it until the window closes or the process
// receives SIGINT/SIGTERM. It must be called on the main thread with the window's
// GL context current. Unload runs exactly once, on the calling thread.
func Run(window *glfw.Window, settings Settings, fn Func) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.Title != "" {
		window.SetTitle(settings.Title)
	}
	if w, h := settings.Dimensions[0], settings.Dimensions[1]; w > 0 && h > 0 {
		window.SetSize(w, h)
	}
	if settings.FPS > 0 {
		config.SetFPSLimit(settings.FPS)
	}

	s, err := fn(Context{Window: window, Settings: settings})
	if err != nil {
		return fmt.Errorf("build sketch: %w", err)
	}

	done := make(chan struct{})
	var unloadOnce sync.Once
	defer close(done)
	defer unloadOnce.Do(func() {
		defer profiling.Track("sketch.Unload")()
		s.Unload()
		log.Debug().Msg("sketch unloaded")
	})

	// The signal handler only asks the main thread to stop and waits for it.
	closer.Bind(func() {
		select {
		case <-done:
			return
		default:
		}
		log.Info().Msg("signal received, closing sketch")
		window.SetShouldClose(true)
		glfw.PostEmptyEvent()
		<-done
	})

	l := &loop{
		window:   window,
		settings: settings,
		sketch:   s,
		input:    input.NewInputManager(),
		clock:    NewClock(settings.Duration),
	}
	l.run()
	return nil
}

type loop struct {
	window   *glfw.Window
	settings Settings
	sketch   Sketch
	input    *input.InputManager
	clock    *Clock
	overlay  *overlay

	fbWidth  int
	fbHeight int

	pendingResize bool
	dirty         bool
	visible       bool
}

func (l *loop) run() {
	window := l.window
	l.pendingResize = true
	l.dirty = true

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		l.pendingResize = true
		l.dirty = true
	})
	window.SetRefreshCallback(func(_ *glfw.Window) {
		l.dirty = true
	})
	previousKey := window.SetKeyCallback(nil)
	window.SetKeyCallback(l.input.Callback(previousKey))
	defer window.SetFramebufferSizeCallback(nil)
	defer window.SetRefreshCallback(nil)
	defer window.SetKeyCallback(previousKey)

	if ov, err := newOverlay(l.settings.Stats); err != nil {
		log.Warn().Err(err).Msg("stats overlay unavailable")
	} else {
		l.overlay = ov
		defer ov.dispose()
	}

	limiter := NewFPSLimiter()

	for !window.ShouldClose() {
		profiling.ResetFrame()
		frameStart := time.Now()

		if l.pendingResize {
			l.pendingResize = false
			l.resize()
		}

		if l.visible && (l.settings.Animate || l.dirty) {
			l.dirty = false
			l.render()
		}

		if !l.settings.Animate {
			glfw.WaitEvents()
			l.handleInput()
			continue
		}

		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		l.handleInput()
		logSlowFrame(time.Since(frameStart))
		limiter.Wait()
	}
}

func (l *loop) render() {
	props := l.clock.Tick(time.Now())
	func() { defer profiling.Track("sketch.Render")(); l.sketch.Render(props) }()
	if l.overlay != nil {
		func() {
			defer profiling.Track("overlay.Draw")()
			l.overlay.frame(time.Now(), l.fbWidth, l.fbHeight, func() string { return profiling.TopN(overlayTopN) })
		}()
	}
	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()
}

// handleInput applies the runner hotkeys pressed since the last frame
func (l *loop) handleInput() {
	defer l.input.PostUpdate()

	if l.input.JustPressed(input.ActionQuit) {
		l.window.SetShouldClose(true)
	}
	if l.input.JustPressed(input.ActionTogglePlay) {
		paused := l.clock.TogglePause()
		log.Info().Bool("paused", paused).Msg("playback")
	}
	if l.input.JustPressed(input.ActionToggleStats) && l.overlay != nil {
		l.overlay.toggle()
		l.dirty = true
	}
}

func (l *loop) resize() {
	ww, wh := l.window.GetSize()
	fw, fh := l.window.GetFramebufferSize()
	props, ok := computeResize(ww, wh, fw, fh)
	l.visible = ok
	l.fbWidth, l.fbHeight = fw, fh
	if !ok {
		// minimized
		return
	}
	defer profiling.Track("sketch.Resize")()
	l.sketch.Resize(props)
	log.Debug().
		Int("width", props.ViewportWidth).
		Int("height", props.ViewportHeight).
		Float64("pixel_ratio", props.PixelRatio).
		Msg("resize")
}

// computeResize derives resize props from the window size in screen coordinates and
// the framebuffer size in pixels. It reports false for an empty (minimized) window.
func computeResize(windowW, windowH, fbW, fbH int) (ResizeProps, bool) {
	if windowW <= 0 || windowH <= 0 || fbW <= 0 || fbH <= 0 {
		return ResizeProps{}, false
	}
	return ResizeProps{
		PixelRatio:     float64(fbW) / float64(windowW),
		ViewportWidth:  windowW,
		ViewportHeight: windowH,
	}, true
}

func logSlowFrame(elapsed time.Duration) {
	budget := Budget()
	if budget == 0 || elapsed <= slowFrameFactor*budget {
		return
	}
	log.Debug().
		Dur("frame", elapsed).
		Dur("budget", budget).
		Str("top", profiling.TopN(3)).
		Msg("slow frame")
}
