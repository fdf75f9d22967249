package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestPressEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	if !im.JustPressed(ActionTogglePlay) || !im.IsActive(ActionTogglePlay) {
		t.Fatalf("expected space to press toggle-play")
	}
	im.PostUpdate()
	if im.JustPressed(ActionTogglePlay) {
		t.Errorf("edge should clear after PostUpdate")
	}

	// key repeat keeps the action held without a new edge
	im.HandleKeyEvent(glfw.KeySpace, glfw.Repeat)
	if im.JustPressed(ActionTogglePlay) {
		t.Errorf("repeat must not produce a new press edge")
	}

	im.HandleKeyEvent(glfw.KeySpace, glfw.Release)
	if !im.JustReleased(ActionTogglePlay) || im.IsActive(ActionTogglePlay) {
		t.Errorf("expected release edge")
	}
}

func TestBindingsAndUnbind(t *testing.T) {
	im := NewInputManager()
	im.BindKey(glfw.KeyQ, ActionQuit)

	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	if !im.JustPressed(ActionQuit) {
		t.Errorf("expected Q to quit after binding")
	}
	im.PostUpdate()

	im.UnbindKey(glfw.KeyF3)
	im.HandleKeyEvent(glfw.KeyF3, glfw.Press)
	if im.JustPressed(ActionToggleStats) {
		t.Errorf("unbound key must not trigger")
	}

	im.BindKey(glfw.KeyA, ActionCount)
	im.HandleKeyEvent(glfw.KeyA, glfw.Press)
	if im.JustPressed(ActionCount) || im.IsActive(Action(-1)) {
		t.Errorf("out of range actions are ignored")
	}
}

func TestCallbackForwards(t *testing.T) {
	im := NewInputManager()
	forwarded := false
	cb := im.Callback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		forwarded = key == glfw.KeyEscape
	})

	cb(nil, glfw.KeyEscape, 0, glfw.Press, 0)
	if !forwarded {
		t.Errorf("expected the previous callback to run")
	}
	if !im.JustPressed(ActionQuit) {
		t.Errorf("expected escape to quit")
	}
}
