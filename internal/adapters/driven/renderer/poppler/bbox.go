package poppler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// parseBBox reads the XHTML written by "pdftotext -bbox" and returns
// one word box per <word> element, in document order.
//
//	<page width="612.000000" height="792.000000">
//	  <word xMin="72.0" yMin="71.2" xMax="101.4" yMax="83.2">Hello</word>
//	</page>
//
// Coordinates are already top-left based, in points.
func parseBBox(r io.Reader) ([]domain.WordBox, error) {
	z := html.NewTokenizer(r)

	words := []domain.WordBox{}
	var current *domain.WordBox
	var text strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return words, nil
			}
			return nil, fmt.Errorf("parse bbox output: %w", z.Err())

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "word" {
				continue
			}
			rect, err := readWordRect(z, hasAttr)
			if err != nil {
				return nil, err
			}
			current = &domain.WordBox{Rect: rect}
			text.Reset()

		case html.TextToken:
			if current != nil {
				text.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != "word" || current == nil {
				continue
			}
			current.Text = norm.NFC.String(strings.TrimSpace(text.String()))
			if current.Text != "" {
				words = append(words, *current)
			}
			current = nil
		}
	}
}

// readWordRect reads the xMin, yMin, xMax and yMax attributes of a <word>.
// The tokenizer lower-cases attribute names.
func readWordRect(z *html.Tokenizer, hasAttr bool) (domain.Rect, error) {
	var coords [4]float64
	var seen int

	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()

		idx := -1
		switch string(key) {
		case "xmin":
			idx = 0
		case "ymin":
			idx = 1
		case "xmax":
			idx = 2
		case "ymax":
			idx = 3
		}
		if idx < 0 {
			continue
		}
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return domain.Rect{}, fmt.Errorf("parse bbox output: %s=%q: %w", key, val, err)
		}
		coords[idx] = f
		seen++
	}
	if seen != 4 {
		return domain.Rect{}, fmt.Errorf("parse bbox output: word without coordinates")
	}

	return domain.NormalizeRect(
		domain.Point{X: coords[0], Y: coords[1]},
		domain.Point{X: coords[2], Y: coords[3]},
		domain.SpaceDocument,
	), nil
}
