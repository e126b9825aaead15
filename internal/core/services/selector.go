package services

import (
	"strings"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// SelectIn returns the words whose boxes overlap rect with strictly
// positive area, in the order they appear in words.
// Boxes that only touch rect along an edge are not selected.
func SelectIn(rect domain.Rect, words []domain.WordBox) []domain.WordBox {
	var selected []domain.WordBox
	for _, w := range words {
		if w.Rect.Intersects(rect) {
			selected = append(selected, w)
		}
	}
	return selected
}

// JoinText space-joins the word texts in order and trims the result.
// Selections cross visual lines, so line breaks are flattened.
func JoinText(words []domain.WordBox) string {
	if len(words) == 0 {
		return ""
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
