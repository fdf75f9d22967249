package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spicy/internal/config"
)

func TestMergeConfigOverridesFlags(t *testing.T) {
	flags := params{sketch: "dots", width: 900, height: 900, fps: 60, assetDir: "assets", logLevel: "info"}
	off := false

	got := flags.merge(&config.File{
		Sketch:   "planets",
		Window:   config.Window{Width: 1280},
		Animate:  &off,
		LogLevel: "debug",
	})

	assert.Equal(t, "planets", got.sketch)
	assert.Equal(t, 1280, got.width)
	assert.Equal(t, 900, got.height, "unset fields keep the flag value")
	assert.Equal(t, 60, got.fps)
	assert.Equal(t, "assets", got.assetDir)
	assert.Equal(t, "debug", got.logLevel)
	if assert.NotNil(t, got.animate) {
		assert.False(t, *got.animate)
	}
	assert.False(t, got.vsync)
}

func TestRunUnknownSketch(t *testing.T) {
	err := run(params{sketch: "nope"})
	assert.Error(t, err)
}
