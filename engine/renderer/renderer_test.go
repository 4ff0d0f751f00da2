package renderer

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
)

// recordingBackend keeps the last uniform written to each sprite.
type recordingBackend struct {
	written map[string]spriteUniform
}

func (b *recordingBackend) ConfigureSurface(width, height int) {}
func (b *recordingBackend) SetPresentMode(mode PresentMode)    {}
func (b *recordingBackend) RegisterSpritePipeline(source string, sampler common.SamplerStagingData) error {
	return nil
}
func (b *recordingBackend) WriteProjection(proj []float32) {}
func (b *recordingBackend) NewSprite(label string) (*spriteSlot, error) {
	return &spriteSlot{label: label}, nil
}
func (b *recordingBackend) UploadTexture(slot *spriteSlot, data common.TextureStagingData) error {
	return nil
}
func (b *recordingBackend) WriteSprite(slot *spriteSlot, u spriteUniform) {
	b.written[slot.label] = u
}
func (b *recordingBackend) ReleaseSprite(slot *spriteSlot)    {}
func (b *recordingBackend) BeginFrame(clear color.RGBA) error { return nil }
func (b *recordingBackend) DrawSprite(slot *spriteSlot)       {}
func (b *recordingBackend) EndFrame()                         {}
func (b *recordingBackend) Present()                          {}
func (b *recordingBackend) Release()                          {}

func TestFitRectLetterboxes(t *testing.T) {
	box := common.Rect{X: 10, Y: 20, W: 200, H: 100}

	wide := common.TextureStagingData{Pixels: make([]byte, 40*10*4), Width: 40, Height: 10}
	got := fitRect(box, wide)
	want := common.Rect{X: 10, Y: 45, W: 200, H: 50}
	if got != want {
		t.Fatalf("wide: got %+v, want %+v", got, want)
	}

	tall := common.TextureStagingData{Pixels: make([]byte, 10*20*4), Width: 10, Height: 20}
	got = fitRect(box, tall)
	want = common.Rect{X: 85, Y: 20, W: 50, H: 100}
	if got != want {
		t.Fatalf("tall: got %+v, want %+v", got, want)
	}

	if got := fitRect(box, common.TextureStagingData{}); got != box {
		t.Fatalf("empty content changed the box: %+v", got)
	}
}

func TestNewSpriteUniform(t *testing.T) {
	u := newSpriteUniform(common.Rect{X: 1, Y: 50, W: 3, H: 4}, 40, color.RGBA{R: 255, A: 255}, 0.5, true)
	if u.Rect != [4]float32{1, 10, 3, 4} {
		t.Fatalf("Rect = %v", u.Rect)
	}
	if u.Tint != [4]float32{1, 0, 0, 1} {
		t.Fatalf("Tint = %v", u.Tint)
	}
	if u.Params[0] != 0.5 || u.Params[1] != 1 {
		t.Fatalf("Params = %v", u.Params)
	}
}

func TestDrawOverlayAnimatesOpening(t *testing.T) {
	opened := time.Unix(1000, 0)
	now := opened
	b := &recordingBackend{written: make(map[string]spriteUniform)}
	r := &renderer{
		mu:          &sync.Mutex{},
		backend:     b,
		width:       800,
		height:      600,
		nodeSlots:   make(map[uint64]*spriteSlot),
		chromeSlots: make(map[string]*spriteSlot),
	}
	WithClock(func() time.Time { return now })(r)

	o := scene.Overlay{
		Title:    "Title",
		Backdrop: color.RGBA{A: 200},
		Card:     common.Rect{X: 100, Y: 100, W: 200, H: 200},
		Image:    common.Rect{X: 120, Y: 110, W: 160, H: 100},
		Close:    common.Rect{X: 260, Y: 110, W: 30, H: 30},
		Opened:   opened,
	}

	r.drawOverlay(o, 0)
	card := b.written["overlay/card"]
	if card.Rect != [4]float32{120, 120, 160, 160} || card.Params[0] != 0 {
		t.Fatalf("card at open: rect %v opacity %v, want shrunk and transparent", card.Rect, card.Params[0])
	}
	if a := b.written["overlay/backdrop"].Tint[3]; a != 0 {
		t.Fatalf("backdrop alpha at open = %v, want 0", a)
	}

	now = opened.Add(scene.OverlayOpenDuration)
	r.drawOverlay(o, 0)
	card = b.written["overlay/card"]
	if card.Rect != [4]float32{100, 100, 200, 200} || card.Params[0] != 1 {
		t.Fatalf("card after opening: rect %v opacity %v", card.Rect, card.Params[0])
	}
	if a := b.written["overlay/backdrop"].Tint[3]; a != float32(200)/255 {
		t.Fatalf("backdrop alpha after opening = %v", a)
	}
	if c := b.written["overlay/close"]; c.Rect != [4]float32{260, 110, 30, 30} || c.Params[0] != 1 {
		t.Fatalf("close after opening = %+v", c)
	}
}
