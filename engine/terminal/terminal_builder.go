package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalBuilderOption is a functional option for configuring a Terminal.
type TerminalBuilderOption func(*terminal)

// WithScreen uses an existing screen instead of opening the controlling terminal.
// Tests pass a tcell simulation screen.
//
// Parameters:
//   - s: the screen
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithScreen(s tcell.Screen) TerminalBuilderOption {
	return func(t *terminal) {
		t.screen = s
	}
}

// WithFPS sets how many frames per second are composited.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithFPS(fps float64) TerminalBuilderOption {
	return func(t *terminal) {
		if fps > 0 {
			t.fps = fps
		}
	}
}

// WithCompositor replaces the default compositor, for example to change the cell size.
//
// Parameters:
//   - c: the compositor
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithCompositor(c Compositor) TerminalBuilderOption {
	return func(t *terminal) {
		t.compositor = c
	}
}

// WithClock replaces time.Now for frame timing.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithClock(now func() time.Time) TerminalBuilderOption {
	return func(t *terminal) {
		t.now = now
	}
}

// CompositorBuilderOption is a functional option for configuring a Compositor.
type CompositorBuilderOption func(*compositor)

// WithCompositorClock replaces time.Now for overlay animation.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithCompositorClock(now func() time.Time) CompositorBuilderOption {
	return func(c *compositor) {
		if now != nil {
			c.now = now
		}
	}
}
