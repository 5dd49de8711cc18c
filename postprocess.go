// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// ClipToWall is post-processing step (a) of spec §4.6: every block's
// geometry is intersected with the true wall polygon. A standard whose
// footprint is unchanged by the clip stays a StandardBlock; any block
// whose footprint shrinks (or splits) becomes one CustomPiece per
// surviving fragment, and fragments below AreaEPS are dropped as
// DegenerateGeometry (§7).
func ClipToWall(k *Kernel, wall Polygon, standards []StandardBlock, customs []CustomPiece, cfg EngineConfig) ([]StandardBlock, []CustomPiece, error) {
	var keptStandards []StandardBlock
	var keptCustoms []CustomPiece

	for _, b := range standards {
		footprint := Box(b.X, b.Y, b.X+b.WidthMM, b.Y+b.HeightMM)
		pieces, err := clipFragments(k, footprint, wall, cfg)
		if err != nil {
			return nil, nil, err
		}
		if len(pieces) == 0 {
			continue
		}
		footprintArea := b.WidthMM * b.HeightMM
		if len(pieces) == 1 {
			pieceArea, err := k.Area(pieces[0])
			if err != nil {
				return nil, nil, err
			}
			if math.Abs(pieceArea-footprintArea) <= cfg.AreaEPS {
				keptStandards = append(keptStandards, b)
				continue
			}
		}
		for _, piece := range pieces {
			cp := customFromGeometry(piece, b.Y, b.RowIndex, cfg.SnapMM)
			keptCustoms = append(keptCustoms, cp)
		}
	}

	for _, c := range customs {
		pieces, err := clipFragments(k, c.Geometry, wall, cfg)
		if err != nil {
			return nil, nil, err
		}
		for _, piece := range pieces {
			cp := customFromGeometry(piece, c.Y, c.RowIndex, cfg.SnapMM)
			keptCustoms = append(keptCustoms, cp)
		}
	}

	return keptStandards, keptCustoms, nil
}

func clipFragments(k *Kernel, footprint, wall Polygon, cfg EngineConfig) ([]Polygon, error) {
	pieces, err := k.Intersect(footprint, wall)
	if err != nil {
		return nil, wrapFatal("clip to wall", err)
	}
	return lo.Filter(pieces, func(p Polygon, _ int) bool {
		area, err := k.Area(p)
		return err == nil && area >= cfg.AreaEPS
	}), nil
}

// RowAwareMerge is post-processing step (b): customs are grouped by their
// row index and unioned within the group only, coalescing slivers left by
// separate packer steps without ever merging across rows. A merged custom
// can be wider than the widest catalog width; widths are bounded only after
// SplitOutOfSpec, which runs after this pass.
func RowAwareMerge(k *Kernel, customs []CustomPiece, cfg EngineConfig) ([]CustomPiece, error) {
	byRow := lo.GroupBy(customs, func(c CustomPiece) int { return c.RowIndex })

	rowIndices := lo.Keys(byRow)
	sort.Ints(rowIndices)

	var merged []CustomPiece
	for _, row := range rowIndices {
		group := byRow[row]
		if len(group) == 0 {
			continue
		}
		geoms := lo.Map(group, func(c CustomPiece, _ int) Polygon { return c.Geometry })
		pieces, err := k.Union(geoms)
		if err != nil {
			return nil, wrapFatal("row-aware merge", err)
		}
		y := group[0].Y
		for _, piece := range pieces {
			merged = append(merged, customFromGeometry(piece, y, row, cfg.SnapMM))
		}
	}
	return merged, nil
}

// SplitOutOfSpec is post-processing step (c): a custom wider than
// maxWidth+5mm, or taller than blockHeight+5mm, is sliced vertically into
// pieces no wider than maxWidth; each slice's width/height are re-derived
// from its own clipped geometry, not copied from the unsliced custom.
func SplitOutOfSpec(k *Kernel, customs []CustomPiece, maxWidth int, blockHeight float64, cfg EngineConfig) ([]CustomPiece, error) {
	var out []CustomPiece
	for _, c := range customs {
		if !isOutOfSpec(c, maxWidth, blockHeight, cfg) {
			out = append(out, c)
			continue
		}
		bounds := BoundsOf(c.Geometry)
		sliceCount := int(math.Ceil(bounds.Width() / float64(maxWidth)))
		if sliceCount < 1 {
			sliceCount = 1
		}
		sliceWidth := bounds.Width() / float64(sliceCount)
		for i := 0; i < sliceCount; i++ {
			x0 := bounds.MinX + float64(i)*sliceWidth
			x1 := x0 + sliceWidth
			band := Box(x0, bounds.MinY, x1, bounds.MaxY)
			pieces, err := k.Intersect(c.Geometry, band)
			if err != nil {
				return nil, wrapFatal("split out-of-spec custom", err)
			}
			for _, p := range pieces {
				area, err := k.Area(p)
				if err != nil {
					return nil, err
				}
				if area < cfg.AreaEPS {
					continue
				}
				out = append(out, customFromGeometry(p, c.Y, c.RowIndex, cfg.SnapMM))
			}
		}
	}
	return out, nil
}

func isOutOfSpec(c CustomPiece, maxWidth int, blockHeight float64, cfg EngineConfig) bool {
	return c.WidthMM > float64(maxWidth)+cfg.ScartoCustomMM || c.HeightMM > blockHeight+cfg.ScartoCustomMM
}

// TagTypes is post-processing step (d): classify each final custom as
// flush, flex, or out_of_spec per spec §4.6.
func TagTypes(customs []CustomPiece, maxWidth int, blockHeight float64, cfg EngineConfig) {
	for i := range customs {
		c := &customs[i]
		switch {
		case isOutOfSpec(*c, maxWidth, blockHeight, cfg):
			c.Ctype = CTypeOutOfSpec
		case math.Abs(c.HeightMM-blockHeight) <= cfg.ScartoCustomMM:
			c.Ctype = CTypeFlush
		default:
			c.Ctype = CTypeFlex
		}
	}
}

// ChooseSourceBlocks is post-processing step (e): pick the smallest
// catalog width at least as wide as the custom, falling back to the
// largest width, and record the resulting waste.
func ChooseSourceBlocks(customs []CustomPiece, catalog Catalog) {
	for i := range customs {
		c := &customs[i]
		c.SourceBlockWidth = catalog.SourceBlockFor(c.WidthMM)
		c.WasteMM = float64(c.SourceBlockWidth) - c.WidthMM
	}
}
