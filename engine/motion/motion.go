// Package motion advances the orientation of a rotating body from drag input, momentum and auto-rotation.
package motion

// Rotation is an orientation in degrees about each axis, every component in (-180, 180].
type Rotation struct {
	X, Y, Z float64
}

// Velocity is an angular velocity in degrees per frame about the X and Y axes.
type Velocity struct {
	X, Y float64
}

// Zero reports whether both components are exactly zero.
func (v Velocity) Zero() bool {
	return v.X == 0 && v.Y == 0
}

// Controller owns the rotation and velocity state of a sphere.
// Drag input and momentum stepping are mutually exclusive: Step does nothing while a drag is active.
type Controller interface {
	// Step advances one frame of momentum and auto-rotation. It is a no-op while dragging.
	//
	// The order is: decay velocity, add the auto-rotate increment to Y, add the clamped
	// velocity, normalize, then snap velocity to zero once both axes fall below the rest epsilon.
	Step()

	// BeginDrag enters the dragging state and clears the velocity.
	BeginDrag()

	// Drag applies a pointer delta in pixels directly to the rotation.
	// Vertical motion tilts about X, horizontal motion spins about Y. The clamped delta becomes the new velocity.
	//
	// Parameters:
	//   - dx: horizontal pointer delta since the last move
	//   - dy: vertical pointer delta since the last move
	Drag(dx, dy float64)

	// EndDrag leaves the dragging state. The last drag delta seeds momentum.
	EndDrag()

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true while dragging
	Dragging() bool

	// Rotation returns a snapshot of the current orientation.
	//
	// Returns:
	//   - Rotation: orientation in degrees
	Rotation() Rotation

	// SetRotation replaces the orientation. Each component is normalized.
	//
	// Parameters:
	//   - r: the new orientation in degrees
	SetRotation(r Rotation)

	// Velocity returns a snapshot of the current angular velocity.
	//
	// Returns:
	//   - Velocity: degrees per frame
	Velocity() Velocity

	// SetVelocity replaces the angular velocity.
	//
	// Parameters:
	//   - v: degrees per frame
	SetVelocity(v Velocity)

	// AutoRotate reports whether continuous rotation is enabled and its speed.
	//
	// Returns:
	//   - bool: true when enabled
	//   - float64: degrees per frame about Y
	AutoRotate() (bool, float64)

	// SetAutoRotate enables or disables continuous rotation.
	//
	// Parameters:
	//   - enabled: true to enable
	//   - speed: degrees per frame about Y
	SetAutoRotate(enabled bool, speed float64)

	// Reset restores the initial rotation, clears velocity and ends any drag.
	Reset()
}
