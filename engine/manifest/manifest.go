// Package manifest reads gallery manifests: the image list of one sphere plus its widget settings.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/imgsphere/engine/motion"
	"github.com/Carmen-Shannon/imgsphere/engine/widget"
)

// ErrNoImages is returned by Validate for a manifest without any images.
// Hosts that want to show the empty placeholder can call Parse without validating.
var ErrNoImages = errors.New("manifest has no images")

// RotationCfg is an orientation in degrees.
type RotationCfg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Manifest describes one image sphere. Zero numeric settings keep the widget defaults.
type Manifest struct {
	Name             string                   `json:"name,omitempty"`
	Container        float64                  `json:"container,omitempty"`
	Radius           float64                  `json:"radius,omitempty"`
	AutoRotate       bool                     `json:"autoRotate,omitempty"`
	AutoRotateSpeed  float64                  `json:"autoRotateSpeed,omitempty"`
	DragSensitivity  float64                  `json:"dragSensitivity,omitempty"`
	MomentumDecay    float64                  `json:"momentumDecay,omitempty"`
	MaxRotationSpeed float64                  `json:"maxRotationSpeed,omitempty"`
	BaseImageScale   float64                  `json:"baseImageScale,omitempty"`
	HoverScale       float64                  `json:"hoverScale,omitempty"`
	Perspective      *float64                 `json:"perspective,omitempty"` // container perspective in px
	InitialRotation  *RotationCfg             `json:"initialRotation,omitempty"`
	Images           []widget.ImageDescriptor `json:"images"`

	dir string
}

// Load reads and parses a manifest file. Image sources are relative to the file's directory.
//
// Parameters:
//   - path: the manifest file
//
// Returns:
//   - *Manifest: the parsed manifest
//   - error: read or decode error
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes a manifest and fills in missing image IDs.
//
// Parameters:
//   - b: the JSON document
//
// Returns:
//   - *Manifest: the parsed manifest
//   - error: decode error
func Parse(b []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	for i := range m.Images {
		if m.Images[i].ID == "" {
			m.Images[i].ID = fmt.Sprintf("image-%d", i)
		}
	}
	m.dir = "."
	return &m, nil
}

// Validate checks that the manifest is usable for a gallery.
//
// Returns:
//   - error: ErrNoImages, or a description of the first invalid field
func (m *Manifest) Validate() error {
	if len(m.Images) == 0 {
		return ErrNoImages
	}
	for i, img := range m.Images {
		if img.Src == "" {
			return fmt.Errorf("image %d (%s): missing src", i, img.ID)
		}
	}
	if m.Container < 0 || m.Radius < 0 {
		return fmt.Errorf("container and radius must not be negative")
	}
	if m.MomentumDecay < 0 || m.MomentumDecay >= 1 {
		return fmt.Errorf("momentumDecay %v outside [0, 1)", m.MomentumDecay)
	}
	return nil
}

// Dir returns the directory image sources are resolved against.
func (m *Manifest) Dir() string {
	return m.dir
}

// Options converts the manifest settings to widget options.
//
// Returns:
//   - []widget.ImageSphereBuilderOption: options for widget.NewImageSphere
func (m *Manifest) Options() []widget.ImageSphereBuilderOption {
	var opts []widget.ImageSphereBuilderOption
	if m.Name != "" {
		opts = append(opts, widget.WithName(m.Name))
	}
	if m.Container > 0 {
		opts = append(opts, widget.WithContainerSize(m.Container))
	}
	if m.Radius > 0 {
		opts = append(opts, widget.WithRadius(m.Radius))
	}
	if m.AutoRotate {
		speed := m.AutoRotateSpeed
		if speed == 0 {
			speed = motion.DefaultAutoRotateSpeed
		}
		opts = append(opts, widget.WithAutoRotate(true, speed))
	}
	if m.DragSensitivity > 0 {
		opts = append(opts, widget.WithDragSensitivity(m.DragSensitivity))
	}
	if m.MomentumDecay > 0 {
		opts = append(opts, widget.WithMomentumDecay(m.MomentumDecay))
	}
	if m.MaxRotationSpeed > 0 {
		opts = append(opts, widget.WithMaxRotationSpeed(m.MaxRotationSpeed))
	}
	if m.BaseImageScale > 0 {
		opts = append(opts, widget.WithBaseImageScale(m.BaseImageScale))
	}
	if m.HoverScale > 0 {
		opts = append(opts, widget.WithHoverScale(m.HoverScale))
	}
	if m.Perspective != nil {
		opts = append(opts, widget.WithPerspective(*m.Perspective))
	}
	if r := m.InitialRotation; r != nil {
		opts = append(opts, widget.WithInitialRotation(motion.Rotation{X: r.X, Y: r.Y, Z: r.Z}))
	}
	return opts
}
