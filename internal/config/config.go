package config

import "sync"

// RenderSettings holds runtime render configuration shared by the window setup and the sketch loop
type RenderSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = unlimited
	vsync    bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit: 60, // default value
}

// GetFPSLimit returns the current frame rate cap, 0 meaning unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetVSync reports whether buffer swaps wait for the display refresh
func GetVSync() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.vsync
}

func SetVSync(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.vsync = enabled
}

// SwapInterval is the value to pass to glfw.SwapInterval for the current vsync setting
func SwapInterval() int {
	if GetVSync() {
		return 1
	}
	return 0
}
