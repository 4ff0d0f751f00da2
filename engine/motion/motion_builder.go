package motion

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithMomentumDecay sets the per-frame velocity multiplier. Values outside (0, 1) are ignored.
//
// Parameters:
//   - decay: velocity multiplier applied each frame
//
// Returns:
//   - ControllerBuilderOption: functional option to set the decay
func WithMomentumDecay(decay float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if decay > 0 && decay < 1 {
			c.decay = decay
		}
	}
}

// WithMaxRotationSpeed sets the clamp applied to every per-frame rotation delta.
//
// Parameters:
//   - speed: maximum degrees per frame on each axis
//
// Returns:
//   - ControllerBuilderOption: functional option to set the clamp
func WithMaxRotationSpeed(speed float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if speed > 0 {
			c.maxSpeed = speed
		}
	}
}

// WithDragSensitivity sets the multiplier from pointer pixels to rotation degrees.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - ControllerBuilderOption: functional option to set drag sensitivity
func WithDragSensitivity(sensitivity float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if sensitivity > 0 {
			c.sensitivity = sensitivity
		}
	}
}

// WithAutoRotate enables continuous rotation about Y.
//
// Parameters:
//   - enabled: true to enable
//   - speed: degrees per frame
//
// Returns:
//   - ControllerBuilderOption: functional option to configure auto-rotation
func WithAutoRotate(enabled bool, speed float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.autoRotate = enabled
		c.autoSpeed = speed
	}
}

// WithInitialRotation sets the starting tilt restored by Reset.
//
// Parameters:
//   - r: orientation in degrees
//
// Returns:
//   - ControllerBuilderOption: functional option to set the starting orientation
func WithInitialRotation(r Rotation) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.initial = r
	}
}

// WithRestEpsilon sets the speed below which velocity snaps to zero.
//
// Parameters:
//   - eps: degrees per frame
//
// Returns:
//   - ControllerBuilderOption: functional option to set the rest threshold
func WithRestEpsilon(eps float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if eps >= 0 {
			c.epsilon = eps
		}
	}
}
