package native

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// pageBox is a page's MediaBox in PDF user space (origin bottom-left).
type pageBox struct {
	x0, y0, x1, y1 float64
}

func (b pageBox) size() domain.PageSize {
	return domain.PageSize{Width: b.x1 - b.x0, Height: b.y1 - b.y0}
}

// maxTreeDepth bounds the walk up the page tree.
const maxTreeDepth = 32

// pageBoxes reads the MediaBox of every page.
func pageBoxes(r *pdf.Reader) (boxes []pageBox, err error) {
	page := 0
	defer func() {
		if p := recover(); p != nil {
			boxes, err = nil, fmt.Errorf("page %d: malformed page dictionary: %v", page, p)
		}
	}()

	boxes = make([]pageBox, r.NumPage())
	for i := range boxes {
		page = i + 1
		boxes[i] = mediaBox(r.Page(page))
	}
	return boxes, nil
}

// mediaBox returns the MediaBox of page, following inheritance from the
// page tree. A missing box falls back to US Letter.
func mediaBox(page pdf.Page) pageBox {
	v := page.V
	for depth := 0; depth < maxTreeDepth && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if mb.Kind() != pdf.Array || mb.Len() < 4 {
			v = v.Key("Parent")
			continue
		}
		x0, y0 := mb.Index(0).Float64(), mb.Index(1).Float64()
		x1, y1 := mb.Index(2).Float64(), mb.Index(3).Float64()
		return pageBox{
			x0: math.Min(x0, x1), y0: math.Min(y0, y1),
			x1: math.Max(x0, x1), y1: math.Max(y0, y1),
		}
	}
	return pageBox{x1: 612, y1: 792}
}

// Layout groups positioned glyphs into words.
type Layout struct {
	// RowTolerance is how far apart two baselines may be, in points,
	// and still belong to the same row.
	RowTolerance float64

	// WordGap is the horizontal gap, as a fraction of the font size,
	// that starts a new word.
	WordGap float64

	// Ascent and Descent approximate the glyph box above and below the
	// baseline, as fractions of the font size.
	Ascent  float64
	Descent float64
}

// DefaultLayout returns the layout parameters used by the renderer.
func DefaultLayout() Layout {
	return Layout{
		RowTolerance: 2.0,
		WordGap:      0.15,
		Ascent:       0.8,
		Descent:      0.2,
	}
}

// Words groups glyphs into word boxes in reading order: rows top to
// bottom, words left to right. Boxes are in top-left based document space.
func (l Layout) Words(texts []pdf.Text, box pageBox) []domain.WordBox {
	words := []domain.WordBox{}
	for _, row := range l.rows(texts) {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

		var cur *wordRun
		for _, t := range row {
			if strings.TrimSpace(t.S) == "" {
				if cur != nil {
					words = appendWord(words, cur, box)
					cur = nil
				}
				continue
			}
			if cur != nil && t.X-cur.x1 > l.gap(cur.fontSize) {
				words = appendWord(words, cur, box)
				cur = nil
			}
			if cur == nil {
				cur = &wordRun{x0: t.X, x1: t.X + t.W, fontSize: t.FontSize}
				cur.top = t.Y + t.FontSize*l.Ascent
				cur.bottom = t.Y - t.FontSize*l.Descent
			}
			cur.add(t, l)
		}
		if cur != nil {
			words = appendWord(words, cur, box)
		}
	}
	return words
}

func (l Layout) gap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return l.WordGap * fontSize
}

// rows buckets glyphs by baseline, ordered top to bottom.
func (l Layout) rows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []bucket
	for _, t := range texts {
		placed := false
		for i := range buckets {
			b := &buckets[i]
			if t.Y >= b.yMin-l.RowTolerance && t.Y <= b.yMax+l.RowTolerance {
				b.texts = append(b.texts, t)
				b.yMin = math.Min(b.yMin, t.Y)
				b.yMax = math.Max(b.yMax, t.Y)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF y grows upwards, so the top row has the largest baseline.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.texts
	}
	return rows
}

// wordRun accumulates the glyphs of one word in PDF user space.
type wordRun struct {
	x0, x1      float64
	top, bottom float64
	fontSize    float64
	text        strings.Builder
}

func (w *wordRun) add(t pdf.Text, l Layout) {
	w.x0 = math.Min(w.x0, t.X)
	w.x1 = math.Max(w.x1, t.X+t.W)
	w.top = math.Max(w.top, t.Y+t.FontSize*l.Ascent)
	w.bottom = math.Min(w.bottom, t.Y-t.FontSize*l.Descent)
	w.fontSize = math.Max(w.fontSize, t.FontSize)
	w.text.WriteString(t.S)
}

// appendWord flips w into top-left based coordinates relative to box.
func appendWord(words []domain.WordBox, w *wordRun, box pageBox) []domain.WordBox {
	text := norm.NFC.String(strings.TrimSpace(w.text.String()))
	if text == "" {
		return words
	}
	return append(words, domain.WordBox{
		Rect: domain.NormalizeRect(
			domain.Point{X: w.x0 - box.x0, Y: box.y1 - w.top},
			domain.Point{X: w.x1 - box.x0, Y: box.y1 - w.bottom},
			domain.SpaceDocument,
		),
		Text: text,
	})
}
