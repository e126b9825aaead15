// Package page provides the document page view for the TUI.
//
// The page is drawn with half-block cells: every terminal cell shows two
// vertically stacked viewport pixels, so one viewport pixel is one column
// wide and half a row tall.
package page

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
)

const (
	halfBlock = "▀"

	// Tint strengths in [0, 1].
	highlightAlpha = 0.45
	marqueeAlpha   = 0.2
)

// View renders the displayed page of a viewer.
type View struct {
	styles *styles.Styles
	viewer driving.ViewerService

	width    int
	height   int
	pageSize domain.PageSize

	// source and rgba cache the raster converted for direct pixel access.
	source *domain.RasterImage
	rgba   *image.RGBA
}

// NewView creates a page view over viewer.
func NewView(s *styles.Styles, viewer driving.ViewerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, viewer: viewer}
}

// SetDimensions sets the size of the page area in cells.
func (v *View) SetDimensions(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
}

// Dimensions returns the size of the page area in cells.
func (v *View) Dimensions() (width, height int) {
	return v.width, v.height
}

// SetPageSize sets the size of the displayed page in document units.
func (v *View) SetPageSize(size domain.PageSize) {
	v.pageSize = size
}

// ViewportSize returns the page area in viewport pixels.
func (v *View) ViewportSize() (width, height float64) {
	return float64(v.width), float64(v.height * 2)
}

// CellToViewport maps a terminal cell to the viewport pixel at its centre.
func CellToViewport(col, row int) domain.Point {
	return domain.Point{X: float64(col) + 0.5, Y: float64(row*2) + 1}
}

// Contains reports whether the cell lies inside the page area.
func (v *View) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.width && row < v.height
}

// FitWidth returns the zoom factor that makes the page as wide as the view.
func (v *View) FitWidth() float64 {
	if v.pageSize.Width <= 0 || v.width == 0 {
		return 1
	}
	return float64(v.width) / v.pageSize.Width
}

// ClampScroll limits scroll so the page stays in view. A page smaller
// than the view along an axis is centred on that axis.
func (v *View) ClampScroll(scroll domain.Point, factor float64) domain.Point {
	viewW, viewH := v.ViewportSize()
	pageW := v.pageSize.Width * factor
	pageH := v.pageSize.Height * factor

	return domain.Point{
		X: clampAxis(scroll.X, pageW, viewW),
		Y: clampAxis(scroll.Y, pageH, viewH),
	}
}

func clampAxis(offset, page, view float64) float64 {
	if page <= view {
		return math.Floor((view - page) / 2)
	}
	return math.Min(0, math.Max(offset, view-page))
}

// View renders the page area.
func (v *View) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}

	state := v.viewer.State()
	c := v.canvas(state)

	var b strings.Builder
	for row := 0; row < v.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		v.renderRow(&b, c, row)
	}
	return b.String()
}

// renderRow writes one row of cells, merging runs of equal colours.
func (v *View) renderRow(b *strings.Builder, c *canvas, row int) {
	var (
		run    strings.Builder
		fg, bg color.RGBA
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle().Foreground(styles.Hex(fg)).Background(styles.Hex(bg))
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for col := 0; col < v.width; col++ {
		top := c.at(domain.Point{X: float64(col) + 0.5, Y: float64(row*2) + 0.5})
		bottom := c.at(domain.Point{X: float64(col) + 0.5, Y: float64(row*2) + 1.5})
		if run.Len() > 0 && (top != fg || bottom != bg) {
			flush()
		}
		fg, bg = top, bottom
		run.WriteString(halfBlock)
	}
	flush()
}

// canvas holds everything needed to colour one viewport pixel.
type canvas struct {
	zoom       domain.ZoomState
	page       domain.Rect
	raster     *image.RGBA
	scale      float64
	highlights []domain.Rect
	marquee    *domain.Rect

	background color.RGBA
	paper      color.RGBA
	highlight  color.RGBA
	marqueeRGB color.RGBA
}

func (v *View) canvas(state domain.ViewerState) *canvas {
	theme := v.styles.Theme()
	c := &canvas{
		zoom:       state.Zoom,
		page:       domain.RectToViewport(v.pageSize.Bounds(), state.Zoom),
		highlights: v.viewer.CurrentHighlightRegions(),
		background: styles.RGBA(theme.Background),
		paper:      styles.RGBA(theme.Paper),
		highlight:  styles.RGBA(theme.Highlight),
		marqueeRGB: styles.RGBA(theme.Marquee),
	}

	if raster := v.viewer.CurrentRaster(); raster != nil && raster.Page == state.Page && raster.Image != nil {
		c.raster = v.pixels(raster)
		c.scale = raster.Scale
	}

	if sel := v.viewer.Selection(); sel.State == domain.SelectionDragging {
		r := domain.RectToViewport(sel.Rect, state.Zoom)
		c.marquee = &r
	}
	return c
}

// pixels converts the raster to RGBA once per raster.
func (v *View) pixels(raster *domain.RasterImage) *image.RGBA {
	if v.source == raster && v.rgba != nil {
		return v.rgba
	}
	bounds := raster.Image.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(rgba, image.Point{}, raster.Image, bounds, draw.Src, nil)
	v.source = raster
	v.rgba = rgba
	return rgba
}

// at returns the colour of viewport pixel p.
func (c *canvas) at(p domain.Point) color.RGBA {
	if !contains(c.page, p) {
		return c.background
	}

	px := c.paper
	if c.raster != nil {
		d := domain.ToDocumentSpace(p, c.zoom)
		x := int(math.Floor(d.X * c.scale))
		y := int(math.Floor(d.Y * c.scale))
		if (image.Point{X: x, Y: y}).In(c.raster.Rect) {
			px = c.raster.RGBAAt(x, y)
			px.A = 0xff
		}
	}

	for _, r := range c.highlights {
		if contains(r, p) {
			px = blend(px, c.highlight, highlightAlpha)
			break
		}
	}
	if c.marquee != nil && contains(*c.marquee, p) {
		px = blend(px, c.marqueeRGB, marqueeAlpha)
	}
	return px
}

func contains(r domain.Rect, p domain.Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// blend mixes tint over base with the given opacity.
func blend(base, tint color.RGBA, alpha float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-alpha) + float64(b)*alpha))
	}
	return color.RGBA{R: mix(base.R, tint.R), G: mix(base.G, tint.G), B: mix(base.B, tint.B), A: 0xff}
}
