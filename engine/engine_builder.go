package engine

import (
	"time"

	"github.com/Carmen-Shannon/imgsphere/engine/frame"
	"github.com/Carmen-Shannon/imgsphere/engine/profiler"
	"github.com/Carmen-Shannon/imgsphere/engine/renderer"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
	"github.com/Carmen-Shannon/imgsphere/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
// Without a window the engine is headless and advanced with Step.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that draws the page scene each iteration.
//
// Parameters:
//   - r: the renderer, usually created for the same window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScheduler replaces the default frame scheduler.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s frame.Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.sched = s
	}
}

// WithScene replaces the default page scene.
//
// Parameters:
//   - s: the Scene widgets mount into
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithViewport sets the viewport size of a headless engine. A window overrides it.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(width, height float64) EngineBuilderOption {
	return func(e *engine) {
		e.viewW, e.viewH = width, height
	}
}

// WithPageHeight fixes the scrollable page height.
//
// Parameters:
//   - h: page height in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPageHeight(h float64) EngineBuilderOption {
	return func(e *engine) {
		e.pageH = h
		e.fixedPageH = true
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithClock replaces time.Now for frame timing.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
	}
}
