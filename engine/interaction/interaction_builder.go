package interaction

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithHitTester sets the function used to find the item under the pointer.
//
// Parameters:
//   - fn: hit-test function
//
// Returns:
//   - ControllerBuilderOption: functional option to set the hit tester
func WithHitTester(fn HitTester) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.hitTest = fn
	}
}

// WithDetailLayout sets the function that reports the detail card geometry.
//
// Parameters:
//   - fn: layout function
//
// Returns:
//   - ControllerBuilderOption: functional option to set the detail layout
func WithDetailLayout(fn DetailLayout) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.detailLayout = fn
	}
}

// WithClickThreshold sets how far in pixels the pointer may travel while still counting as a click.
//
// Parameters:
//   - px: maximum displacement from the pointer-down position
//
// Returns:
//   - ControllerBuilderOption: functional option to set the click threshold
func WithClickThreshold(px float64) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if px >= 0 {
			c.clickThreshold = px
		}
	}
}

// WithOnOpen sets the callback fired when the detail view opens.
//
// Parameters:
//   - fn: callback receiving the opened item index
//
// Returns:
//   - ControllerBuilderOption: functional option to set the open callback
func WithOnOpen(fn func(index int)) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.onOpen = fn
	}
}

// WithOnClose sets the callback fired when the detail view closes.
//
// Parameters:
//   - fn: callback
//
// Returns:
//   - ControllerBuilderOption: functional option to set the close callback
func WithOnClose(fn func()) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.onClose = fn
	}
}

// WithOnHover sets the callback fired when the hovered item changes.
//
// Parameters:
//   - fn: callback receiving the new hovered index, or NoIndex
//
// Returns:
//   - ControllerBuilderOption: functional option to set the hover callback
func WithOnHover(fn func(index int)) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.onHover = fn
	}
}
