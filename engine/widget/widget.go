// Package widget implements the interactive image sphere: a set of images laid out on a sphere
// that the user spins by dragging and opens by clicking.
//
// All methods must be called from the goroutine that runs the frame scheduler. Image loads
// complete on worker goroutines and are handed back through the scheduler's task queue.
package widget

import (
	"errors"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/frame"
	"github.com/Carmen-Shannon/imgsphere/engine/interaction"
	"github.com/Carmen-Shannon/imgsphere/engine/motion"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
)

var (
	// ErrNotMounted is returned by operations that need a mounted widget.
	ErrNotMounted = errors.New("widget not mounted")
	// ErrAlreadyMounted is returned by Mount on a mounted widget.
	ErrAlreadyMounted = errors.New("widget already mounted")
)

// ImageDescriptor is one displayable image. Descriptors are immutable once supplied.
type ImageDescriptor struct {
	ID          string `json:"id"`
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Label returns the title, falling back to the alt text and then the ID.
func (d ImageDescriptor) Label() string {
	return common.Coalesce(d.Title, d.Alt, d.ID)
}

// DetailView is the open lightbox: the clicked image's descriptor plus its on-screen geometry.
type DetailView struct {
	Index      int
	Descriptor ImageDescriptor
	Card       common.Rect
	Image      common.Rect
	Close      common.Rect
}

// ImageSphere is the widget's public contract.
type ImageSphere interface {
	// Mount creates the widget's nodes in a scene and starts loading images.
	// The frame loop starts once UpdateViewport reports the widget visible.
	// An empty image set mounts a placeholder and never schedules frames.
	//
	// Parameters:
	//   - sched: the scheduler driving frames and receiving load completions
	//   - sc: the scene the widget's nodes are created in
	//   - x, y: top-left corner of the widget in scene space
	//
	// Returns:
	//   - error: ErrAlreadyMounted if already mounted
	Mount(sched frame.Scheduler, sc scene.Scene, x, y float64) error

	// Unmount cancels the pending frame, abandons in-flight loads and removes every node.
	//
	// Returns:
	//   - error: ErrNotMounted if not mounted
	Unmount() error

	// Mounted reports whether the widget is mounted.
	Mounted() bool

	// Images returns the current image set.
	Images() []ImageDescriptor

	// SetImages replaces the image set and recomputes the layout. A mounted widget rebuilds its nodes.
	//
	// Parameters:
	//   - images: the new ordered image set
	SetImages(images []ImageDescriptor)

	// Radius returns the sphere radius.
	Radius() float64

	// Perspective returns the container's perspective distance. Items are placed on the
	// z=0 plane, so it does not move or scale them; depth is conveyed by Scale and ZIndex.
	Perspective() float64

	// SetRadius changes the sphere radius and recomputes the layout.
	//
	// Parameters:
	//   - radius: the new radius, ignored if not positive
	SetRadius(radius float64)

	// UpdateViewport reports the visible part of the scene. Entering view starts the frame loop;
	// leaving view cancels the pending frame.
	//
	// Parameters:
	//   - root: the visible rectangle in scene space
	UpdateViewport(root common.Rect)

	// Visible reports whether the widget was last seen in view.
	Visible() bool

	// PointerDown starts a gesture if the pointer is over the widget, or resolves a click on the detail view.
	//
	// Parameters:
	//   - kind: the pointer device
	//   - x, y: pointer position in scene space
	PointerDown(kind interaction.PointerKind, x, y float64)

	// PointerMove continues a drag or updates hover.
	//
	// Parameters:
	//   - kind: the pointer device
	//   - x, y: pointer position in scene space
	PointerMove(kind interaction.PointerKind, x, y float64)

	// PointerUp ends a gesture. A gesture that stayed within the click threshold opens the detail view.
	//
	// Parameters:
	//   - kind: the pointer device
	//   - x, y: pointer position in scene space
	PointerUp(kind interaction.PointerKind, x, y float64)

	// PointerLeave ends any gesture and clears hover.
	PointerLeave()

	// KeyDown handles widget keys: Escape closes the detail view, R resets the rotation and A toggles auto-rotation.
	//
	// Parameters:
	//   - key: a common.Key* code
	//
	// Returns:
	//   - bool: true if the key was consumed
	KeyDown(key int) bool

	// Detail returns the open detail view.
	//
	// Returns:
	//   - DetailView: the open view
	//   - bool: true while open
	Detail() (DetailView, bool)

	// OpenDetail opens the detail view for an image.
	//
	// Parameters:
	//   - index: the image index
	//
	// Returns:
	//   - error: ErrNotMounted if not mounted, or an error for an out-of-range index
	OpenDetail(index int) error

	// CloseDetail closes the detail view if open.
	CloseDetail()

	// Empty reports whether the image set is empty.
	Empty() bool

	// Bounds returns the widget's rectangle in scene space.
	//
	// Returns:
	//   - common.Rect: the bounds
	//   - bool: false if not mounted
	Bounds() (common.Rect, bool)

	// Rotation returns the current sphere orientation.
	Rotation() motion.Rotation

	// Hovered returns the hovered image index, or interaction.NoIndex.
	Hovered() int

	// Loaded reports whether an image has finished loading and passed its fade-in stagger.
	//
	// Parameters:
	//   - index: the image index
	//
	// Returns:
	//   - bool: true once the image may be shown
	Loaded(index int) bool

	// FramePending reports whether a frame callback is scheduled.
	FramePending() bool
}
