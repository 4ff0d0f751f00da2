// Command imgsphere shows a gallery manifest as an interactive image sphere in a desktop window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/Carmen-Shannon/imgsphere/engine"
	"github.com/Carmen-Shannon/imgsphere/engine/loader"
	"github.com/Carmen-Shannon/imgsphere/engine/manifest"
	"github.com/Carmen-Shannon/imgsphere/engine/renderer"
	"github.com/Carmen-Shannon/imgsphere/engine/widget"
	"github.com/Carmen-Shannon/imgsphere/engine/window"
)

const (
	title        = "Image Sphere"
	windowMargin = 24.0
)

func main() {
	manifestPath := flag.String("manifest", "gallery.json", "gallery manifest (JSON)")
	width := flag.Int("width", 1280, "window width in pixels")
	height := flag.Int("height", 720, "window height in pixels")
	vsync := flag.Bool("vsync", true, "present with vertical sync")
	profile := flag.Bool("profile", false, "log frame and memory statistics")
	msaa := flag.Bool("msaa", true, "enable 4x multisample anti-aliasing")
	flag.Parse()

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		log.Fatalf("[Gallery] %v", err)
	}
	// An empty gallery still opens and shows the placeholder.
	if err := m.Validate(); err != nil && !errors.Is(err, manifest.ErrNoImages) {
		log.Fatalf("[Gallery] %s: %v", *manifestPath, err)
	}

	l := loader.NewLoader(loader.WithFS(os.DirFS(m.Dir())))
	defer l.Close()

	size := m.Container
	if size <= 0 {
		size = widget.DefaultContainerSize
	}
	// The window never shrinks below the container plus a margin on each side.
	minEdge := int(math.Ceil(size + 2*windowMargin))

	eng := engine.NewEngine(
		engine.WithProfiling(*profile),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(title),
			window.WithSize(*width, *height),
			window.WithMinSize(minEdge, minEdge),
		)),
	)

	present := renderer.PresentModeVSync
	if !*vsync {
		present = renderer.PresentModeUncapped
	}
	samples := renderer.MSAAOff
	if *msaa {
		samples = renderer.MSAA4x
	}
	eng.SetRenderer(renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		eng.Window(),
		renderer.WithPresentMode(present),
		renderer.WithMSAA(samples),
	))

	opts := append(m.Options(),
		widget.WithLoader(l),
		widget.WithOnOpen(func(d widget.ImageDescriptor) {
			eng.Window().SetTitle(fmt.Sprintf("%s - %s", title, d.Label()))
		}),
		widget.WithOnClose(func() {
			eng.Window().SetTitle(title)
		}),
	)
	sphere := widget.NewImageSphere(m.Images, opts...)

	x := max(0, (float64(eng.Window().Width())-size)/2)
	y := max(0, (float64(eng.Window().Height())-size)/2)
	if err := eng.Mount(sphere, x, y); err != nil {
		log.Fatalf("[Gallery] mount: %v", err)
	}

	log.Printf("[Gallery] %d images from %s. Drag to spin, click to open, Esc to close, R to reset, A to toggle auto-rotate, Q to quit", len(m.Images), *manifestPath)
	eng.Run()
}
