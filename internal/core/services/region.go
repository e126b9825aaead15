package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
)

// SelectRegion selects the words of the displayed page under rect and
// returns the committed selection. When zoom is non-zero it is applied
// first. Viewport coordinates only make sense at the exact factor, so a
// viewport rect with a zoom the viewer would clamp fails with
// domain.ErrZoomOutOfRange.
func SelectRegion(
	ctx context.Context,
	viewer driving.ViewerService,
	rect domain.Rect,
	zoom float64,
) (domain.Selection, error) {
	if viewer.Document() == nil {
		return domain.Selection{}, domain.ErrNoDocument
	}
	if zoom != 0 {
		if err := viewer.ZoomChange(zoom); err != nil {
			return domain.Selection{}, err
		}
		if got := viewer.State().Zoom.Factor; rect.Space == domain.SpaceViewport && got != zoom {
			return domain.Selection{}, fmt.Errorf("zoom %v (clamped to %v): %w", zoom, got, domain.ErrZoomOutOfRange)
		}
	}
	if err := viewer.EnsureWords(ctx); err != nil {
		return domain.Selection{}, fmt.Errorf("load words: %w", err)
	}

	viewer.SelectRect(rect)
	return viewer.Selection(), nil
}

// ParseRect parses "x0,y0,x1,y1" into a normalised rectangle in space.
func ParseRect(s string, space domain.CoordSpace) (domain.Rect, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return domain.Rect{}, fmt.Errorf("rect %q: want x0,y0,x1,y1: %w", s, domain.ErrInvalidInput)
	}

	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return domain.Rect{}, fmt.Errorf("rect %q: bad coordinate %q: %w", s, f, domain.ErrInvalidInput)
		}
		v[i] = n
	}
	return domain.NormalizeRect(domain.Point{X: v[0], Y: v[1]}, domain.Point{X: v[2], Y: v[3]}, space), nil
}
