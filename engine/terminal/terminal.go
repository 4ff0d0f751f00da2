// Package terminal hosts the engine in a text terminal through tcell: scenes are composited into
// half-block cells and mouse and key events are bridged to the engine's input methods.
package terminal

import (
	"fmt"
	"image/color"
	"time"

	"github.com/Carmen-Shannon/imgsphere/engine"
	"github.com/gdamore/tcell/v2"
)

const DefaultFPS = 30

// Terminal runs an engine in a tcell screen.
type Terminal interface {
	// Engine returns the hosted engine.
	//
	// Returns:
	//   - engine.Engine: the engine
	Engine() engine.Engine

	// Run initializes the screen and drives the engine until Quit, Ctrl-C or the engine's quit key.
	// The screen is restored and the engine closed before Run returns.
	//
	// Returns:
	//   - error: screen initialization error
	Run() error

	// Quit stops Run. Safe to call from any goroutine.
	Quit()
}

type terminal struct {
	screen     tcell.Screen
	engine     engine.Engine
	compositor Compositor
	fps        float64
	now        func() time.Time

	cols, rows int
	pressed    bool
}

var _ Terminal = &terminal{}

// NewTerminal creates a terminal host for e.
//
// Parameters:
//   - e: a headless engine, created without a window
//   - options: functional options
//
// Returns:
//   - Terminal: the host
//   - error: when no screen is configured and tcell cannot open one
func NewTerminal(e engine.Engine, options ...TerminalBuilderOption) (Terminal, error) {
	t := &terminal{
		engine: e,
		fps:    DefaultFPS,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(t)
	}
	if t.compositor == nil {
		t.compositor = NewCompositor(DefaultCellWidth, DefaultCellHeight, WithCompositorClock(t.now))
	}
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal screen: %w", err)
		}
		t.screen = s
	}
	return t, nil
}

func (t *terminal) Engine() engine.Engine {
	return t.engine
}

func (t *terminal) Run() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	defer t.screen.Fini()
	defer t.engine.Close()

	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	t.resize()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / t.fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-t.engine.Done():
			return nil
		case ev := <-eventChan:
			t.handleEvent(ev)
		case <-ticker.C:
			t.engine.Step(t.now())
			t.draw()
		}
	}
}

func (t *terminal) Quit() {
	t.engine.Quit()
}

func (t *terminal) resize() {
	t.cols, t.rows = t.screen.Size()
	cw, ch := t.compositor.CellSize()
	t.engine.Resize(float64(t.cols)*cw, float64(t.rows)*ch)
}

func (t *terminal) draw() {
	f := t.compositor.Compose(t.engine.Scene(), t.cols, t.rows)
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			cell := f.At(col, row)
			if cell.Rune != 0 {
				style := tcell.StyleDefault.Foreground(rgb(cell.FG)).Background(rgb(cell.Background()))
				t.screen.SetContent(col, row, cell.Rune, nil, style)
				continue
			}
			style := tcell.StyleDefault.Foreground(rgb(cell.Top)).Background(rgb(cell.Bottom))
			t.screen.SetContent(col, row, '▀', nil, style)
		}
	}
	t.screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
