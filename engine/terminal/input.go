package terminal

import (
	"unicode"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/gdamore/tcell/v2"
)

var namedKeys = map[tcell.Key]int{
	tcell.KeyEscape: common.KeyEsc,
	tcell.KeyEnter:  common.KeyEnter,
	tcell.KeyUp:     common.KeyUp,
	tcell.KeyDown:   common.KeyDown,
	tcell.KeyLeft:   common.KeyLeft,
	tcell.KeyRight:  common.KeyRight,
	tcell.KeyPgUp:   common.KeyPageUp,
	tcell.KeyPgDn:   common.KeyPageDown,
	tcell.KeyHome:   common.KeyHome,
	tcell.KeyEnd:    common.KeyEnd,
}

// keyCode maps a tcell key event to the engine's key codes. Letters map to their upper-case ASCII code.
func keyCode(ev *tcell.EventKey) (int, bool) {
	if ev.Key() == tcell.KeyRune {
		r := unicode.ToUpper(ev.Rune())
		if r == ' ' || (r >= 'A' && r <= 'Z') {
			return int(r), true
		}
		return 0, false
	}
	code, ok := namedKeys[ev.Key()]
	return code, ok
}

func (t *terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.Quit()
			return
		}
		if code, ok := keyCode(ev); ok {
			t.engine.KeyDown(code)
		}

	case *tcell.EventMouse:
		t.handleMouse(ev)
	}
}

// handleMouse turns tcell's button state snapshots into press, move and release transitions.
func (t *terminal) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := t.compositor.CellCenter(col, row)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		t.engine.Wheel(0, 1)
		return
	case buttons&tcell.WheelDown != 0:
		t.engine.Wheel(0, -1)
		return
	}

	down := buttons&tcell.Button1 != 0
	switch {
	case down && !t.pressed:
		t.pressed = true
		t.engine.PointerDown(x, y)
	case !down && t.pressed:
		t.pressed = false
		t.engine.PointerUp(x, y)
	default:
		t.engine.PointerMove(x, y)
	}
}
