// Package extract collects the distinct fill colors of a selection.
package extract

import (
	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/shape"
)

// Colors returns the fill colors under roots, deduplicated by color.Key and
// in the order they are first met in a pre-order walk. Unfilled leaves are
// skipped.
func Colors(roots []shape.Node) []color.Color {
	var colors []color.Color
	seen := make(map[string]bool)

	shape.Walk(roots, func(leaf *shape.Leaf) bool {
		if !leaf.Filled || leaf.Fill == nil {
			return true
		}
		key := color.Key(leaf.Fill)
		if !seen[key] {
			seen[key] = true
			colors = append(colors, leaf.Fill)
		}
		return true
	})

	return colors
}
