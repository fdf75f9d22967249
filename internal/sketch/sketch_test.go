package sketch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicy/internal/config"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"gl", Settings{Context: "gl"}, false},
		{"webgl", Settings{Context: "webgl", Animate: true}, false},
		{"upper case", Settings{Context: "WebGL"}, false},
		{"2d canvas", Settings{Context: "2d"}, true},
		{"empty", Settings{}, true},
		{"negative size", Settings{Context: "gl", Dimensions: [2]int{-1, 10}}, true},
		{"negative fps", Settings{Context: "gl", FPS: -1}, true},
		{"negative duration", Settings{Context: "gl", Duration: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsValidateContextSentinel(t *testing.T) {
	assert.ErrorIs(t, Settings{Context: "canvas"}.Validate(), ErrContext)
}

func TestRunRejectsInvalidSettingsBeforeBuilding(t *testing.T) {
	built := false
	err := Run(nil, Settings{Context: "2d"}, func(Context) (Sketch, error) {
		built = true
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrContext)
	assert.False(t, built)
}

func TestClockFirstTickIsZero(t *testing.T) {
	c := NewClock(0)
	start := time.Unix(100, 0)

	p := c.Tick(start)
	assert.Equal(t, RenderProps{}, p)

	p = c.Tick(start.Add(1500 * time.Millisecond))
	assert.InDelta(t, 1.5, p.Time, 1e-9)
	assert.InDelta(t, 1.5, p.DeltaTime, 1e-9)
	assert.Equal(t, 0.0, p.Playhead)
	assert.Equal(t, 1, p.Frame)

	p = c.Tick(start.Add(2 * time.Second))
	assert.InDelta(t, 2.0, p.Time, 1e-9)
	assert.InDelta(t, 0.5, p.DeltaTime, 1e-9)
	assert.Equal(t, 2, p.Frame)
}

func TestClockWrapsToDuration(t *testing.T) {
	c := NewClock(4)
	start := time.Unix(0, 0)
	c.Tick(start)

	p := c.Tick(start.Add(5 * time.Second))
	assert.InDelta(t, 1.0, p.Time, 1e-9)
	assert.InDelta(t, 0.25, p.Playhead, 1e-9)
	assert.InDelta(t, 5.0, p.DeltaTime, 1e-9)
}

func TestComputeResize(t *testing.T) {
	p, ok := computeResize(800, 600, 1600, 1200)
	require.True(t, ok)
	assert.Equal(t, ResizeProps{PixelRatio: 2, ViewportWidth: 800, ViewportHeight: 600}, p)

	_, ok = computeResize(800, 0, 1600, 0)
	assert.False(t, ok, "minimized windows are not resized")
}

func TestFPSLimiterUnlimitedDoesNotBlock(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(0)

	assert.Equal(t, time.Duration(0), Budget())
	f := NewFPSLimiter()
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(100)

	assert.Equal(t, 10*time.Millisecond, Budget())
	f := NewFPSLimiter()
	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFrameStatsRefreshesOncePerSecond(t *testing.T) {
	var s frameStats
	start := time.Unix(10, 0)

	for i := 0; i < 59; i++ {
		assert.False(t, s.tick(start.Add(time.Duration(i)*time.Second/60)))
	}
	assert.True(t, s.tick(start.Add(time.Second)))
	assert.InDelta(t, 60.0, s.fps, 1e-9)

	// the window restarts after each refresh
	assert.False(t, s.tick(start.Add(time.Second+time.Millisecond)))
}

func TestStatsLines(t *testing.T) {
	assert.Equal(t,
		[]string{"fps 59.9", "cap 60", "sketch.Render:1.2ms"},
		statsLines(59.94, time.Second/60, "sketch.Render:1.2ms"))
	assert.Equal(t, []string{"fps 0.0", "cap off"}, statsLines(0, 0, ""))
}

func TestClockPauseFreezesTime(t *testing.T) {
	c := NewClock(0)
	start := time.Unix(0, 0)
	c.Tick(start)
	c.Tick(start.Add(time.Second))

	require.True(t, c.TogglePause())
	p := c.Tick(start.Add(3 * time.Second))
	assert.InDelta(t, 1.0, p.Time, 1e-9)
	assert.Equal(t, 0.0, p.DeltaTime)
	assert.Equal(t, 2, p.Frame)
	p = c.Tick(start.Add(4 * time.Second))
	assert.Equal(t, 2, p.Frame, "paused clocks repeat the frame")

	require.False(t, c.TogglePause())
	p = c.Tick(start.Add(4500 * time.Millisecond))
	assert.InDelta(t, 1.5, p.Time, 1e-9)
	assert.InDelta(t, 0.5, p.DeltaTime, 1e-9)
	assert.Equal(t, 2, p.Frame)
}
