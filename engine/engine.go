package engine

import (
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/frame"
	"github.com/Carmen-Shannon/imgsphere/engine/interaction"
	"github.com/Carmen-Shannon/imgsphere/engine/profiler"
	"github.com/Carmen-Shannon/imgsphere/engine/renderer"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
	"github.com/Carmen-Shannon/imgsphere/engine/widget"
	"github.com/Carmen-Shannon/imgsphere/engine/window"
)

const (
	scrollStep = 40.0
	pageMargin = 40.0
)

// ErrUnknownWidget is returned when unmounting a widget the engine did not mount.
var ErrUnknownWidget = errors.New("widget is not mounted on this engine")

// engine implements the Engine interface.
// The window message loop is the single UI goroutine: input callbacks, scheduler tasks,
// frame callbacks and rendering all run on it.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	sched    frame.Scheduler
	scene    scene.Scene
	widgets  []widget.ImageSphere

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback     func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	now              func() time.Time
	lastUpdate       time.Time

	viewW, viewH float64
	pageH        float64
	fixedPageH   bool
	scroll       float64
}

// Engine hosts image sphere widgets on a scrollable page.
//
// The page is taller than the window when widgets are mounted below the fold; wheel and
// paging keys scroll it. Scrolling is what moves widgets into and out of view, which in turn
// starts and stops their frame loops.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawing the page, or nil.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// SetRenderer sets the renderer drawing the page each loop iteration.
	// The renderer is usually created from Window() after the engine.
	//
	// Parameters:
	//   - r: the renderer
	SetRenderer(r renderer.Renderer)

	// Scheduler returns the frame scheduler driven by the message loop.
	//
	// Returns:
	//   - frame.Scheduler: the scheduler
	Scheduler() frame.Scheduler

	// Scene returns the page scene widgets draw into.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per loop iteration after the frame is rendered.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default); with VSync presentation the display paces it.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Mount mounts a widget at a page position and grows the page to contain it.
	// Call before Run or from a task posted to the scheduler.
	//
	// Parameters:
	//   - w: the widget
	//   - x, y: top-left page coordinates
	//
	// Returns:
	//   - error: the widget's mount error
	Mount(w widget.ImageSphere, x, y float64) error

	// Unmount unmounts a widget previously mounted with Mount.
	//
	// Parameters:
	//   - w: the widget
	//
	// Returns:
	//   - error: ErrUnknownWidget or the widget's unmount error
	Unmount(w widget.ImageSphere) error

	// Widgets returns the mounted widgets in mount order.
	//
	// Returns:
	//   - []widget.ImageSphere: a copy of the widget list
	Widgets() []widget.ImageSphere

	// SetPageHeight fixes the page height instead of deriving it from mounted widgets.
	//
	// Parameters:
	//   - h: the page height in pixels
	SetPageHeight(h float64)

	// PageHeight returns the scrollable page height.
	//
	// Returns:
	//   - float64: the page height in pixels
	PageHeight() float64

	// Scroll returns the page scroll offset.
	//
	// Returns:
	//   - float64: the offset of the viewport's top edge in page pixels
	Scroll() float64

	// ScrollTo moves the viewport, clamped to the page.
	//
	// Parameters:
	//   - y: the desired offset
	ScrollTo(y float64)

	// Viewport returns the visible page rectangle.
	//
	// Returns:
	//   - common.Rect: the viewport in page coordinates
	Viewport() common.Rect

	// Resize updates the viewport size. The window host calls it from its resize callback.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	Resize(width, height float64)

	// Wheel scrolls the page by wheel notches; positive dy scrolls toward the top.
	//
	// Parameters:
	//   - dx, dy: wheel deltas
	Wheel(dx, dy float64)

	// PointerDown forwards a primary button press in viewport pixels to every widget.
	//
	// Parameters:
	//   - x, y: viewport coordinates; the engine adds the scroll offset
	PointerDown(x, y float64)

	// PointerMove forwards pointer motion in viewport pixels to every widget.
	//
	// Parameters:
	//   - x, y: viewport coordinates
	PointerMove(x, y float64)

	// PointerUp forwards a primary button release in viewport pixels to every widget.
	//
	// Parameters:
	//   - x, y: viewport coordinates
	PointerUp(x, y float64)

	// PointerLeave tells every widget the pointer left the viewport.
	PointerLeave()

	// KeyDown routes a key press. Q quits; widgets see other keys first and
	// unconsumed keys navigate the page.
	//
	// Parameters:
	//   - key: a common.Key* code
	KeyDown(key int)

	// Step runs one loop iteration without rendering: scheduler tasks, viewport updates, frame callbacks.
	//
	// Parameters:
	//   - now: the frame time
	Step(now time.Time)

	// Run starts the window message loop (blocks until the window closes), then unmounts
	// every widget and releases the renderer and window.
	Run()

	// Close unmounts every widget and releases the renderer and window. Run calls it on exit;
	// headless hosts call it themselves.
	Close()

	// Quit asks the message loop to stop. Safe to call multiple times and from any goroutine.
	Quit()

	// Done is closed once Quit has been called.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When a window is supplied its input, resize and update callbacks are wired to the engine.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		now:         time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.sched == nil {
		e.sched = frame.NewScheduler(frame.WithClock(e.now))
	}
	if e.scene == nil {
		e.scene = scene.NewScene(scene.WithName("page"))
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.now))
	}

	if e.window != nil {
		e.viewW, e.viewH = float64(e.window.Width()), float64(e.window.Height())
		e.wireWindow()
	}
	e.scene.SetBounds(common.Rect{W: e.viewW, H: e.viewH})
	e.recomputePage()

	return e
}

func (e *engine) wireWindow() {
	e.window.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		e.Resize(float64(width), float64(height))
	})
	e.window.SetScrollCallback(e.Wheel)
	e.window.SetKeyDownCallback(e.KeyDown)
	e.window.SetMouseDownCallback(e.PointerDown)
	e.window.SetMouseMoveCallback(e.PointerMove)
	e.window.SetMouseUpCallback(e.PointerUp)
	e.window.SetMouseLeaveCallback(e.PointerLeave)
	e.window.SetUpdateCallback(e.update)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) SetRenderer(r renderer.Renderer) {
	e.renderer = r
}

func (e *engine) Scheduler() frame.Scheduler {
	return e.sched
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Mount(w widget.ImageSphere, x, y float64) error {
	if err := w.Mount(e.sched, e.scene, x, y); err != nil {
		return err
	}
	e.widgets = append(e.widgets, w)
	e.recomputePage()
	w.UpdateViewport(e.Viewport())
	return nil
}

func (e *engine) Unmount(w widget.ImageSphere) error {
	i := slices.Index(e.widgets, w)
	if i < 0 {
		return ErrUnknownWidget
	}
	e.widgets = slices.Delete(e.widgets, i, i+1)
	e.recomputePage()
	return w.Unmount()
}

func (e *engine) Widgets() []widget.ImageSphere {
	return slices.Clone(e.widgets)
}

func (e *engine) SetPageHeight(h float64) {
	e.pageH = h
	e.fixedPageH = true
	e.ScrollTo(e.scroll)
}

func (e *engine) PageHeight() float64 {
	return e.pageH
}

// recomputePage derives the page height from the lowest widget unless it was fixed.
func (e *engine) recomputePage() {
	if !e.fixedPageH {
		h := e.viewH
		for _, w := range e.widgets {
			if b, ok := w.Bounds(); ok {
				h = max(h, b.Y+b.H+pageMargin)
			}
		}
		e.pageH = h
	}
	e.ScrollTo(e.scroll)
}

func (e *engine) Scroll() float64 {
	return e.scroll
}

func (e *engine) ScrollTo(y float64) {
	limit := max(0, e.pageH-e.viewH)
	e.scroll = min(max(y, 0), limit)
	e.scene.SetScroll(e.scroll)
}

func (e *engine) Viewport() common.Rect {
	return common.Rect{Y: e.scroll, W: e.viewW, H: e.viewH}
}

func (e *engine) Resize(width, height float64) {
	e.viewW, e.viewH = width, height
	e.scene.SetBounds(common.Rect{W: width, H: height})
	e.recomputePage()
}

func (e *engine) Wheel(_, dy float64) {
	e.ScrollTo(e.scroll - dy*scrollStep)
}

func (e *engine) PointerDown(x, y float64) {
	for _, w := range e.widgets {
		w.PointerDown(interaction.PointerMouse, x, y+e.scroll)
	}
}

func (e *engine) PointerMove(x, y float64) {
	for _, w := range e.widgets {
		w.PointerMove(interaction.PointerMouse, x, y+e.scroll)
	}
}

func (e *engine) PointerUp(x, y float64) {
	for _, w := range e.widgets {
		w.PointerUp(interaction.PointerMouse, x, y+e.scroll)
	}
}

func (e *engine) PointerLeave() {
	for _, w := range e.widgets {
		w.PointerLeave()
	}
}

func (e *engine) KeyDown(key int) {
	if key == common.KeyQ {
		e.Quit()
		return
	}
	for _, w := range e.widgets {
		if w.KeyDown(key) {
			return
		}
	}

	switch key {
	case common.KeyDown:
		e.ScrollTo(e.scroll + scrollStep)
	case common.KeyUp:
		e.ScrollTo(e.scroll - scrollStep)
	case common.KeyPageDown, common.KeySpace:
		e.ScrollTo(e.scroll + e.viewH*0.9)
	case common.KeyPageUp:
		e.ScrollTo(e.scroll - e.viewH*0.9)
	case common.KeyHome:
		e.ScrollTo(0)
	case common.KeyEnd:
		e.ScrollTo(e.pageH)
	}
}

func (e *engine) Step(now time.Time) {
	e.sched.RunTasks(now)
	root := e.Viewport()
	for _, w := range e.widgets {
		w.UpdateViewport(root)
	}
	e.sched.RunFrame(now)
}

// update is the window's per-iteration callback.
func (e *engine) update() {
	now := e.now()
	var dt float32
	if !e.lastUpdate.IsZero() {
		dt = float32(now.Sub(e.lastUpdate).Seconds())
	}
	e.lastUpdate = now

	e.Step(now)

	var stats renderer.FrameStats
	if e.renderer != nil {
		if err := e.renderer.Render(e.scene); err != nil {
			log.Printf("[Engine] render: %v", err)
		}
		stats = e.renderer.Stats()
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(
			profiler.Counter{Name: "Sprites", Value: stats.Sprites},
			profiler.Counter{Name: "Textures", Value: stats.Textures},
			profiler.Counter{Name: "Frame Callbacks", Value: e.sched.PendingFrames()},
		)
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Run() {
	if e.window == nil {
		return
	}
	e.window.ProcessMessages()
	e.signalQuit()
	e.Close()
}

func (e *engine) Close() {
	for _, w := range slices.Clone(e.widgets) {
		if err := e.Unmount(w); err != nil {
			log.Printf("[Engine] unmount: %v", err)
		}
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	}
}

// Quit signals the loop to stop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil {
		e.window.RequestClose()
	}
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}
