package scene

import (
	"image/color"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithBackground sets the clear color.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c color.RGBA) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithBounds sets the scene's page rectangle.
//
// Parameters:
//   - r: the page rectangle
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBounds(r common.Rect) SceneBuilderOption {
	return func(s *scene) {
		s.bounds = r
	}
}
