package motion

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// Defaults shared by every host.
const (
	DefaultMomentumDecay    = 0.95
	DefaultMaxRotationSpeed = 5.0
	DefaultDragSensitivity  = 0.5
	DefaultAutoRotateSpeed  = 0.3
	DefaultRestEpsilon      = 0.01
)

// DefaultInitialRotation is the starting tilt of a freshly mounted sphere.
var DefaultInitialRotation = Rotation{X: 15, Y: 15}

// controllerImpl is the implementation of Controller.
type controllerImpl struct {
	mu *sync.Mutex

	rotation Rotation
	velocity Velocity
	dragging bool

	initial     Rotation
	decay       float64
	maxSpeed    float64
	sensitivity float64
	autoRotate  bool
	autoSpeed   float64
	epsilon     float64
}

var _ Controller = &controllerImpl{}

// NewController creates a rotation controller with the default physics constants.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:          &sync.Mutex{},
		initial:     DefaultInitialRotation,
		decay:       DefaultMomentumDecay,
		maxSpeed:    DefaultMaxRotationSpeed,
		sensitivity: DefaultDragSensitivity,
		autoSpeed:   DefaultAutoRotateSpeed,
		epsilon:     DefaultRestEpsilon,
	}
	for _, option := range options {
		option(c)
	}
	c.rotation = normalize(c.initial)
	return c
}

func normalize(r Rotation) Rotation {
	return Rotation{
		X: common.NormalizeAngle(r.X),
		Y: common.NormalizeAngle(r.Y),
		Z: common.NormalizeAngle(r.Z),
	}
}

func (c *controllerImpl) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging {
		return
	}

	c.velocity.X *= c.decay
	c.velocity.Y *= c.decay

	r := c.rotation
	if c.autoRotate {
		r.Y += c.autoSpeed
	}
	r.X += common.ClampAbs(c.velocity.X, c.maxSpeed)
	r.Y += common.ClampAbs(c.velocity.Y, c.maxSpeed)
	c.rotation = normalize(r)

	if math.Abs(c.velocity.X) < c.epsilon && math.Abs(c.velocity.Y) < c.epsilon {
		c.velocity = Velocity{}
	}
}

func (c *controllerImpl) BeginDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.velocity = Velocity{}
}

func (c *controllerImpl) Drag(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rx := common.ClampAbs(-dy*c.sensitivity, c.maxSpeed)
	ry := common.ClampAbs(dx*c.sensitivity, c.maxSpeed)
	c.rotation = normalize(Rotation{X: c.rotation.X + rx, Y: c.rotation.Y + ry, Z: c.rotation.Z})
	c.velocity = Velocity{X: rx, Y: ry}
}

func (c *controllerImpl) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

func (c *controllerImpl) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *controllerImpl) Rotation() Rotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *controllerImpl) SetRotation(r Rotation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = normalize(r)
}

func (c *controllerImpl) Velocity() Velocity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

func (c *controllerImpl) SetVelocity(v Velocity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.velocity = v
}

func (c *controllerImpl) AutoRotate() (bool, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoRotate, c.autoSpeed
}

func (c *controllerImpl) SetAutoRotate(enabled bool, speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoRotate = enabled
	c.autoSpeed = speed
}

func (c *controllerImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = normalize(c.initial)
	c.velocity = Velocity{}
	c.dragging = false
}
