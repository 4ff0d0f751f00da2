package interaction

import (
	"math"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/motion"
)

// DefaultClickThreshold is the drag dead zone in pixels.
const DefaultClickThreshold = 4.0

type controllerImpl struct {
	motion motion.Controller

	hitTest        HitTester
	detailLayout   DetailLayout
	clickThreshold float64
	onOpen         func(int)
	onClose        func()
	onHover        func(int)

	state        State
	downX, downY float64
	lastX, lastY float64
	travel       float64
	pressed      int
	hovered      int
	detail       int
}

var _ Controller = &controllerImpl{}

// NewController creates a gesture controller driving the given motion controller.
//
// Parameters:
//   - m: the rotation state the gestures act on
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(m motion.Controller, options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		motion:         m,
		clickThreshold: DefaultClickThreshold,
		pressed:        NoIndex,
		hovered:        NoIndex,
		detail:         NoIndex,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) hit(x, y float64) int {
	if c.hitTest == nil {
		return NoIndex
	}
	if i, ok := c.hitTest(x, y); ok {
		return i
	}
	return NoIndex
}

func (c *controllerImpl) setHover(i int) {
	if i == c.hovered {
		return
	}
	c.hovered = i
	if c.onHover != nil {
		c.onHover(i)
	}
}

func (c *controllerImpl) PointerDown(kind PointerKind, x, y float64) {
	if c.detail != NoIndex {
		c.detailClick(x, y)
		return
	}
	if c.state == Dragging {
		return
	}

	c.state = Dragging
	c.downX, c.downY = x, y
	c.lastX, c.lastY = x, y
	c.travel = 0
	c.pressed = c.hit(x, y)
	c.motion.BeginDrag()
}

func (c *controllerImpl) detailClick(x, y float64) {
	if c.detailLayout == nil {
		c.Close()
		return
	}
	card, closeRect, ok := c.detailLayout()
	if !ok || closeRect.Contains(x, y) || !card.Contains(x, y) {
		c.Close()
	}
}

func (c *controllerImpl) PointerMove(kind PointerKind, x, y float64) {
	if c.state == Dragging {
		c.drag(x, y)
		return
	}
	if kind == PointerMouse && c.detail == NoIndex {
		c.setHover(c.hit(x, y))
	}
}

func (c *controllerImpl) drag(x, y float64) {
	dx, dy := x-c.lastX, y-c.lastY
	if dx == 0 && dy == 0 {
		return
	}
	c.motion.Drag(dx, dy)
	c.lastX, c.lastY = x, y
	c.travel = math.Max(c.travel, math.Hypot(x-c.downX, y-c.downY))
}

func (c *controllerImpl) PointerUp(kind PointerKind, x, y float64) {
	if c.state != Dragging {
		return
	}
	c.drag(x, y)
	c.motion.EndDrag()
	c.state = Idle

	pressed := c.pressed
	c.pressed = NoIndex
	if c.travel <= c.clickThreshold && pressed != NoIndex {
		// A click must not leave the sphere drifting behind the detail view.
		c.motion.SetVelocity(motion.Velocity{})
		c.Open(pressed)
		return
	}

	if kind == PointerMouse {
		c.setHover(c.hit(x, y))
	} else {
		c.setHover(NoIndex)
	}
}

func (c *controllerImpl) PointerLeave() {
	if c.state == Dragging {
		c.motion.EndDrag()
		c.state = Idle
		c.pressed = NoIndex
	}
	c.setHover(NoIndex)
}

func (c *controllerImpl) KeyDown(key int) bool {
	if key == common.KeyEsc && c.detail != NoIndex {
		c.Close()
		return true
	}
	return false
}

func (c *controllerImpl) State() State {
	return c.state
}

func (c *controllerImpl) Hovered() int {
	return c.hovered
}

func (c *controllerImpl) Detail() (int, bool) {
	return c.detail, c.detail != NoIndex
}

func (c *controllerImpl) Open(index int) {
	if index < 0 {
		return
	}
	if c.state == Dragging {
		c.motion.EndDrag()
		c.state = Idle
		c.pressed = NoIndex
	}
	c.setHover(NoIndex)
	c.detail = index
	if c.onOpen != nil {
		c.onOpen(index)
	}
}

func (c *controllerImpl) Close() {
	if c.detail == NoIndex {
		return
	}
	c.detail = NoIndex
	if c.onClose != nil {
		c.onClose()
	}
}

func (c *controllerImpl) Reset() {
	if c.state == Dragging {
		c.motion.EndDrag()
	}
	c.state = Idle
	c.pressed = NoIndex
	c.hovered = NoIndex
	c.detail = NoIndex
	c.travel = 0
}
