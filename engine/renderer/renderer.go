package renderer

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
	"github.com/Carmen-Shannon/imgsphere/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	cardFill      = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	cardText      = color.RGBA{R: 20, G: 20, B: 24, A: 255}
	closeFill     = color.RGBA{R: 40, G: 40, B: 48, A: 230}
	closeGlyph    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	placeholderFG = color.RGBA{R: 180, G: 180, B: 190, A: 255}
	opaqueWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// FrameStats describes the last rendered frame.
type FrameStats struct {
	Sprites  int
	Textures int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	proj          [16]float32
	frame         uint64
	stats         FrameStats
	drawList      []scene.Node

	// nodeSlots live as long as their scene node; chrome slots are released when a frame stops using them.
	nodeSlots   map[uint64]*spriteSlot
	chromeSlots map[string]*spriteSlot

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	sampler              common.SamplerStagingData
	now                  func() time.Time
}

// Renderer composites a scene onto a window surface.
//
// Every visible node is drawn as one textured sprite, back to front in z-index order, at the
// rectangle reported by its ScreenRect. The placeholder is drawn underneath and the overlay on top.
// Textures are uploaded once per content version and freed when their node leaves the scene.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Render draws one frame of the scene and presents it.
	//
	// Parameters:
	//   - sc: the scene to draw
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	Render(sc scene.Scene) error

	// Stats returns counters for the last rendered frame.
	//
	// Returns:
	//   - FrameStats: sprite and texture counts
	Stats() FrameStats

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		nodeSlots:   make(map[uint64]*spriteSlot),
		chromeSlots: make(map[string]*spriteSlot),
		now:         time.Now,
		sampler: common.SamplerStagingData{
			AddressModeU: wgpu.AddressModeClampToEdge,
			AddressModeV: wgpu.AddressModeClampToEdge,
			MagFilter:    wgpu.FilterModeLinear,
			MinFilter:    wgpu.FilterModeLinear,
		},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.width, r.height = window.Width(), window.Height()
	r.backend.ConfigureSurface(r.width, r.height)
	if err := r.backend.RegisterSpritePipeline(spriteShaderSource, r.sampler); err != nil {
		panic(fmt.Sprintf("failed to create sprite pipeline: %v", err))
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	// A minimized window reports a zero framebuffer; the surface cannot be configured at that size.
	if width > 0 && height > 0 {
		r.backend.ConfigureSurface(width, height)
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Render(sc scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	r.frame++
	r.stats.Sprites = 0

	common.PixelProjection(r.proj[:], float32(r.width), float32(r.height))
	r.backend.WriteProjection(r.proj[:])
	if err := r.backend.BeginFrame(sc.Background()); err != nil {
		return err
	}

	scroll := sc.Scroll()
	if p, ok := sc.Placeholder(); ok {
		r.drawPlaceholder(p, scroll)
	}

	r.drawList = sc.DrawList(r.drawList[:0])
	for _, n := range r.drawList {
		r.drawNode(n, scroll)
	}

	if o, ok := sc.Overlay(); ok {
		r.drawOverlay(o, scroll)
	}

	r.backend.EndFrame()
	r.backend.Present()
	r.prune(sc)
	r.stats.Textures = len(r.nodeSlots) + len(r.chromeSlots)
	return nil
}

func (r *renderer) drawNode(n scene.Node, scroll float64) {
	slot, ok := r.nodeSlots[n.ID()]
	if !ok {
		var err error
		slot, err = r.backend.NewSprite(n.Spec().Name)
		if err != nil {
			log.Printf("[Renderer] sprite for %s: %v", n.Spec().Name, err)
			return
		}
		r.nodeSlots[n.ID()] = slot
	}

	content, version := n.Content()
	tint := opaqueWhite
	if content.Empty() {
		tint = n.Tint()
	}
	if !r.upload(slot, "v"+strconv.FormatUint(version, 10), func() common.TextureStagingData { return content }) {
		return
	}

	t := n.Transform()
	r.draw(slot, newSpriteUniform(n.ScreenRect(), scroll, tint, t.Opacity, n.Spec().Rounded))
}

func (r *renderer) drawPlaceholder(p scene.Placeholder, scroll float64) {
	fill := r.chrome("placeholder/fill")
	if fill != nil && r.upload(fill, "white", nil) {
		r.draw(fill, newSpriteUniform(p.Bounds, scroll, p.Fill, 1, false))
	}

	text := r.chrome("placeholder/text")
	w, h := int(p.Bounds.W), int(p.Bounds.H)
	key := fmt.Sprintf("%s@%dx%d", p.Text, w, h)
	if text != nil && r.upload(text, key, func() common.TextureStagingData {
		return rasterizeText(common.WrapText(p.Text, w-2*textPadding, measureText), w, h, placeholderFG, color.RGBA{}, true)
	}) {
		r.draw(text, newSpriteUniform(p.Bounds, scroll, opaqueWhite, 1, false))
	}
}

// drawOverlay rasterizes the card chrome at its resting size and draws it at the animated geometry.
func (r *renderer) drawOverlay(o scene.Overlay, scroll float64) {
	a, alpha := o.Frame(r.now())
	backdrop := r.chrome("overlay/backdrop")
	if backdrop != nil && r.upload(backdrop, "white", nil) {
		screen := common.Rect{W: float64(r.width), H: float64(r.height)}
		r.draw(backdrop, newSpriteUniform(screen, 0, a.Backdrop, 1, false))
	}

	card := r.chrome("overlay/card")
	w, h := int(o.Card.W), int(o.Card.H)
	key := fmt.Sprintf("%s\x00%s@%dx%d", o.Title, o.Caption, w, h)
	if card != nil && r.upload(card, key, func() common.TextureStagingData {
		// Text goes below the image area.
		textTop := int(o.Image.Y+o.Image.H-o.Card.Y) + textPadding
		lines := layoutText(o.Title, o.Caption, w)
		full := rasterizeText(nil, w, h, cardText, cardFill, false)
		if textTop < h {
			text := rasterizeText(lines, w, h-textTop, cardText, cardFill, false)
			copy(full.Pixels[textTop*w*4:], text.Pixels)
		}
		return full
	}) {
		r.draw(card, newSpriteUniform(a.Card, scroll, opaqueWhite, alpha, false))
	}

	if !o.Content.Empty() {
		img := r.chrome("overlay/image")
		if img != nil && r.upload(img, "v"+strconv.FormatUint(o.Version, 10), func() common.TextureStagingData { return o.Content }) {
			r.draw(img, newSpriteUniform(fitRect(a.Image, o.Content), scroll, opaqueWhite, alpha, false))
		}
	}

	closeSlot := r.chrome("overlay/close")
	cw, ch := int(o.Close.W), int(o.Close.H)
	if closeSlot != nil && r.upload(closeSlot, fmt.Sprintf("x@%dx%d", cw, ch), func() common.TextureStagingData {
		return rasterizeText([]string{"x"}, cw, ch, closeGlyph, closeFill, true)
	}) {
		r.draw(closeSlot, newSpriteUniform(a.Close, scroll, opaqueWhite, alpha, true))
	}
}

// fitRect letterboxes the content's aspect ratio inside box.
func fitRect(box common.Rect, content common.TextureStagingData) common.Rect {
	if content.Empty() {
		return box
	}
	return box.Fit(float64(content.Width), float64(content.Height))
}

func (r *renderer) chrome(key string) *spriteSlot {
	if slot, ok := r.chromeSlots[key]; ok {
		return slot
	}
	slot, err := r.backend.NewSprite(key)
	if err != nil {
		log.Printf("[Renderer] sprite for %s: %v", key, err)
		return nil
	}
	r.chromeSlots[key] = slot
	return slot
}

// upload makes sure the slot holds the content identified by key. A nil or empty producer result uploads a white pixel.
func (r *renderer) upload(slot *spriteSlot, key string, produce func() common.TextureStagingData) bool {
	slot.lastFrame = r.frame
	if slot.bindGroup != nil && slot.contentKey == key {
		return true
	}
	data := whitePixel
	if produce != nil {
		if d := produce(); !d.Empty() {
			data = d
		}
	}
	if err := r.backend.UploadTexture(slot, data); err != nil {
		log.Printf("[Renderer] upload %s: %v", slot.label, err)
		return false
	}
	slot.contentKey = key
	return true
}

func (r *renderer) draw(slot *spriteSlot, u spriteUniform) {
	r.backend.WriteSprite(slot, u)
	r.backend.DrawSprite(slot)
	r.stats.Sprites++
}

// prune releases node slots whose node has left the scene and chrome slots not drawn this frame.
func (r *renderer) prune(sc scene.Scene) {
	for id, slot := range r.nodeSlots {
		if n := sc.Node(id); n == nil || !n.Alive() {
			r.backend.ReleaseSprite(slot)
			delete(r.nodeSlots, id)
		}
	}
	for key, slot := range r.chromeSlots {
		if slot.lastFrame != r.frame {
			r.backend.ReleaseSprite(slot)
			delete(r.chromeSlots, key)
		}
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, slot := range r.nodeSlots {
		r.backend.ReleaseSprite(slot)
		delete(r.nodeSlots, id)
	}
	for key, slot := range r.chromeSlots {
		r.backend.ReleaseSprite(slot)
		delete(r.chromeSlots, key)
	}
	r.backend.Release()
}
