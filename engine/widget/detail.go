package widget

import (
	"math"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/interaction"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
)

const (
	detailCardFraction = 0.8
	detailCaptionLines = 4
	detailLineHeight   = 18.0
	detailCloseSize    = 28.0
	detailPadding      = 16.0
)

// layoutDetail centers the detail card in the last reported viewport, or on the widget before any viewport is known.
func (w *imageSphere) layoutDetail(index int) DetailView {
	root := w.root
	if root.Empty() {
		root = w.bounds
	}
	edge := math.Min(root.W, root.H) * detailCardFraction
	cx, cy := root.Center()
	card := common.Rect{X: cx - edge/2, Y: cy - edge/2, W: edge, H: edge}

	textH := detailCaptionLines * detailLineHeight
	imgEdge := math.Max(0, math.Min(card.W, card.H-textH)-2*detailPadding)
	image := common.Rect{X: cx - imgEdge/2, Y: card.Y + detailPadding, W: imgEdge, H: imgEdge}
	closeRect := common.Rect{
		X: card.X + card.W - detailCloseSize - detailPadding/2,
		Y: card.Y + detailPadding/2,
		W: detailCloseSize,
		H: detailCloseSize,
	}

	return DetailView{
		Index:      index,
		Descriptor: w.images[index],
		Card:       card,
		Image:      image,
		Close:      closeRect,
	}
}

func (w *imageSphere) detailLayout() (common.Rect, common.Rect, bool) {
	if _, open := w.input.Detail(); !open {
		return common.Rect{}, common.Rect{}, false
	}
	return w.detail.Card, w.detail.Close, true
}

// openDetail is fired by the interaction controller once a click resolves to an image.
func (w *imageSphere) openDetail(index int) {
	if index < 0 || index >= len(w.images) {
		return
	}
	w.detail = w.layoutDetail(index)
	w.detailAt = w.now()
	if w.mounted {
		w.showOverlay()
	}
	if w.onOpen != nil {
		w.onOpen(w.detail.Descriptor)
	}
}

func (w *imageSphere) showOverlay() {
	d := w.detail
	o := scene.Overlay{
		Title:    d.Descriptor.Label(),
		Caption:  d.Descriptor.Description,
		Backdrop: detailBackdrop,
		Card:     d.Card,
		Image:    d.Image,
		Close:    d.Close,
		Opened:   w.detailAt,
	}
	if d.Index < len(w.nodes) {
		o.Content, o.Version = w.nodes[d.Index].Content()
	}
	w.sc.SetOverlay(o)
}

func (w *imageSphere) closeDetail() {
	if w.sc != nil {
		w.sc.ClearOverlay()
	}
	w.detail = DetailView{Index: interaction.NoIndex}
	if w.onClose != nil {
		w.onClose()
	}
}
