package terminal

import (
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
	"github.com/mattn/go-runewidth"
)

const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

var (
	cardFill      = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	cardText      = color.RGBA{R: 20, G: 20, B: 24, A: 255}
	closeFill     = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	closeGlyph    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	placeholderFG = color.RGBA{R: 180, G: 180, B: 190, A: 255}
)

// Cell is one composited terminal cell. Without a rune it is drawn as an upper half block
// so a cell carries two vertically stacked pixels.
type Cell struct {
	Top, Bottom color.RGBA
	Rune        rune
	FG          color.RGBA
}

// Background returns the color behind a text rune.
func (c Cell) Background() color.RGBA {
	return color.RGBA{
		R: uint8((int(c.Top.R) + int(c.Bottom.R)) / 2),
		G: uint8((int(c.Top.G) + int(c.Bottom.G)) / 2),
		B: uint8((int(c.Top.B) + int(c.Bottom.B)) / 2),
		A: 255,
	}
}

// Frame is a composited grid of cells in row-major order.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
}

// At returns the cell at (col, row), or nil outside the grid.
func (f *Frame) At(col, row int) *Cell {
	if col < 0 || row < 0 || col >= f.Cols || row >= f.Rows {
		return nil
	}
	return &f.Cells[row*f.Cols+col]
}

// Compositor rasterizes a scene into terminal cells on the CPU.
type Compositor interface {
	// Compose draws the scene's placeholder, nodes back to front and overlay into a grid.
	// The returned frame is reused by the next call.
	//
	// Parameters:
	//   - sc: the scene to draw
	//   - cols, rows: grid size in cells
	//
	// Returns:
	//   - *Frame: the composited cells
	Compose(sc scene.Scene, cols, rows int) *Frame

	// CellSize returns the pixel size one cell covers.
	//
	// Returns:
	//   - float64: cell width in pixels
	//   - float64: cell height in pixels
	CellSize() (float64, float64)

	// CellCenter maps a cell to the viewport pixel at its center.
	//
	// Parameters:
	//   - col, row: the cell
	//
	// Returns:
	//   - float64, float64: viewport coordinates
	CellCenter(col, row int) (float64, float64)
}

type compositor struct {
	cellW, cellH float64
	now          func() time.Time
	frame        Frame
	drawList     []scene.Node
}

var _ Compositor = &compositor{}

// NewCompositor creates a compositor whose cells cover cellW x cellH pixels.
// Non-positive sizes use the defaults.
//
// Parameters:
//   - cellW, cellH: cell size in pixels
//   - options: functional options
//
// Returns:
//   - Compositor: the compositor
func NewCompositor(cellW, cellH float64, options ...CompositorBuilderOption) Compositor {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	c := &compositor{cellW: cellW, cellH: cellH, now: time.Now}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *compositor) CellSize() (float64, float64) {
	return c.cellW, c.cellH
}

func (c *compositor) CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

func (c *compositor) Compose(sc scene.Scene, cols, rows int) *Frame {
	cols, rows = max(cols, 0), max(rows, 0)
	if cap(c.frame.Cells) < cols*rows {
		c.frame.Cells = make([]Cell, cols*rows)
	}
	c.frame.Cells = c.frame.Cells[:cols*rows]
	c.frame.Cols, c.frame.Rows = cols, rows

	bg := sc.Background()
	bg.A = 255
	for i := range c.frame.Cells {
		c.frame.Cells[i] = Cell{Top: bg, Bottom: bg}
	}

	scroll := sc.Scroll()
	if p, ok := sc.Placeholder(); ok {
		r := p.Bounds.Translate(0, -scroll)
		c.fill(r, false, 1, solid(p.Fill))
		c.text(r, []string{p.Text}, placeholderFG, true)
	}

	c.drawList = sc.DrawList(c.drawList[:0])
	for _, n := range c.drawList {
		c.drawNode(n, scroll)
	}

	if o, ok := sc.Overlay(); ok {
		c.drawOverlay(o, scroll)
	}
	return &c.frame
}

func (c *compositor) drawNode(n scene.Node, scroll float64) {
	t := n.Transform()
	if !t.Visible || t.Opacity <= 0 {
		return
	}
	r := n.ScreenRect().Translate(0, -scroll)
	content, _ := n.Content()
	if content.Empty() {
		c.fill(r, n.Spec().Rounded, t.Opacity, solid(n.Tint()))
		return
	}
	c.fill(r, n.Spec().Rounded, t.Opacity, content.At)
}

// drawOverlay draws the overlay at its animated geometry. Runes cannot fade, so text waits
// until the card is fully open.
func (c *compositor) drawOverlay(o scene.Overlay, scroll float64) {
	o, alpha := o.Frame(c.now())
	screen := common.Rect{W: float64(c.frame.Cols) * c.cellW, H: float64(c.frame.Rows) * c.cellH}
	c.fill(screen, false, 1, solid(o.Backdrop))
	// Text cells drawn before the overlay stay visible through the backdrop otherwise.
	for i := range c.frame.Cells {
		c.frame.Cells[i].Rune = 0
	}

	card := o.Card.Translate(0, -scroll)
	c.fill(card, false, alpha, solid(cardFill))
	if !o.Content.Empty() {
		img := o.Image.Translate(0, -scroll).Fit(float64(o.Content.Width), float64(o.Content.Height))
		c.fill(img, false, alpha, o.Content.At)
	}
	closeRect := o.Close.Translate(0, -scroll)
	c.fill(closeRect, false, alpha, solid(closeFill))
	if alpha < 1 {
		return
	}

	textTop := o.Image.Y + o.Image.H - scroll
	textBox := common.Rect{X: card.X, Y: textTop, W: card.W, H: card.Y + card.H - textTop}
	var lines []string
	if o.Title != "" {
		lines = append(lines, o.Title)
	}
	if o.Caption != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, o.Caption)
	}
	c.text(textBox, lines, cardText, false)
	c.text(closeRect, []string{"x"}, closeGlyph, true)
}

func solid(col color.RGBA) func(u, v float64) color.RGBA {
	return func(float64, float64) color.RGBA { return col }
}

// fill blends colorAt over every half-cell sample inside r. Rounded rects are clipped to their inscribed ellipse.
func (c *compositor) fill(r common.Rect, rounded bool, opacity float64, colorAt func(u, v float64) color.RGBA) {
	if r.W <= 0 || r.H <= 0 || opacity <= 0 {
		return
	}
	half := c.cellH / 2
	c0 := max(int(math.Floor(r.X/c.cellW)), 0)
	c1 := min(int(math.Ceil((r.X+r.W)/c.cellW)), c.frame.Cols)
	r0 := max(int(math.Floor(r.Y/c.cellH)), 0)
	r1 := min(int(math.Ceil((r.Y+r.H)/c.cellH)), c.frame.Rows)

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cell := c.frame.At(col, row)
			x := (float64(col) + 0.5) * c.cellW
			for i, dst := range []*color.RGBA{&cell.Top, &cell.Bottom} {
				y := float64(row)*c.cellH + (float64(i)+0.5)*half
				u, v := (x-r.X)/r.W, (y-r.Y)/r.H
				if u < 0 || u >= 1 || v < 0 || v >= 1 {
					continue
				}
				if rounded {
					du, dv := u*2-1, v*2-1
					if du*du+dv*dv > 1 {
						continue
					}
				}
				*dst = blend(*dst, colorAt(u, v), opacity)
			}
		}
	}
}

// text writes word-wrapped lines into the cells covered by r, one text line per cell row.
func (c *compositor) text(r common.Rect, paragraphs []string, fg color.RGBA, centered bool) {
	c0 := max(int(math.Ceil(r.X/c.cellW)), 0)
	c1 := min(int(math.Floor((r.X+r.W)/c.cellW)), c.frame.Cols)
	r0 := max(int(math.Ceil(r.Y/c.cellH)), 0)
	r1 := min(int(math.Floor((r.Y+r.H)/c.cellH)), c.frame.Rows)
	if centered {
		// Single-line boxes smaller than a cell still get their glyph.
		c0 = max(int(math.Floor(r.X/c.cellW)), 0)
		r0 = max(int(math.Floor(r.Y/c.cellH)), 0)
		c1 = max(c1, min(c0+1, c.frame.Cols))
		r1 = max(r1, min(r0+1, c.frame.Rows))
	}
	width := c1 - c0
	if width <= 0 || r1 <= r0 {
		return
	}

	var lines []string
	for _, p := range paragraphs {
		if p == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, common.WrapText(p, width, runewidth.StringWidth)...)
	}
	if len(lines) > r1-r0 {
		lines = lines[:r1-r0]
	}

	top := r0
	if centered {
		top = r0 + (r1-r0-len(lines))/2
	}
	for i, line := range lines {
		col := c0
		if centered {
			col = c0 + (width-runewidth.StringWidth(line))/2
		}
		for _, ch := range strings.TrimRight(line, " ") {
			w := runewidth.RuneWidth(ch)
			if col+w > c1 {
				break
			}
			if cell := c.frame.At(col, top+i); cell != nil && ch != ' ' {
				cell.Rune = ch
				cell.FG = fg
			}
			col += max(w, 1)
		}
	}
}

// blend composites src over dst with src's alpha scaled by opacity. The result is opaque.
func blend(dst, src color.RGBA, opacity float64) color.RGBA {
	a := float64(src.A) / 255 * math.Min(opacity, 1)
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}
