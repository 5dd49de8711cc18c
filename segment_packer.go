// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "sort"

// Direction is the side a segment packer starts filling a component from.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// DirectionForRow implements the running-bond alternation rule of spec
// §4.4: even rows go left-to-right, odd rows right-to-left, unless pinned
// overrides it (the small variant and an anchor-wall override both pin).
func DirectionForRow(rowIndex int, pinned Direction) Direction {
	if pinned != "" {
		return pinned
	}
	if rowIndex%2 == 0 {
		return DirectionLTR
	}
	return DirectionRTL
}

// PackSegment fills one connected component of a row stripe with standard
// blocks, emitting custom pieces wherever a block only partially fits
// (spec §4.4). widths must be sorted largest-first.
func PackSegment(k *Kernel, component Polygon, yBottom, height float64, widths []int, direction Direction, rowIndex int, cfg EngineConfig) ([]StandardBlock, []CustomPiece, error) {
	bounds := BoundsOf(component)
	sx, ex := bounds.MinX, bounds.MaxX

	var standards []StandardBlock
	var customs []CustomPiece

	cursor := sx
	if direction == DirectionRTL {
		cursor = ex
	}

	for {
		var remaining float64
		if direction == DirectionLTR {
			remaining = ex - cursor
		} else {
			remaining = cursor - sx
		}
		if remaining <= cfg.CoordEPS {
			break
		}

		w, rect, intersection, area, rectArea, found, err := bestFittingWidth(k, component, cursor, yBottom, height, widths, direction, remaining, cfg)
		if err != nil {
			return nil, nil, err
		}

		if !found {
			if remaining > cfg.MicroRestMM {
				trailing, err := trailingRect(cursor, yBottom, height, direction, sx, ex)
				if err != nil {
					return nil, nil, err
				}
				pieces, err := k.Intersect(component, trailing)
				if err != nil {
					return nil, nil, wrapFatal("segment packer: trailing intersection", err)
				}
				for _, piece := range pieces {
					pArea, err := k.Area(piece)
					if err != nil {
						return nil, nil, wrapFatal("segment packer: trailing area", err)
					}
					if pArea < cfg.AreaEPS {
						continue
					}
					customs = append(customs, customFromGeometry(piece, yBottom, rowIndex, cfg.SnapMM))
				}
			}
			break
		}

		if area/rectArea >= cfg.FullBlockCoverageRatio {
			x := rect.Exterior()[0].X
			standards = append(standards, StandardBlock{
				WidthMM:  float64(w),
				HeightMM: height,
				X:        snapCoord(x, cfg.SnapMM),
				Y:        snapCoord(yBottom, cfg.SnapMM),
				RowIndex: rowIndex,
			})
		} else {
			customs = append(customs, customFromGeometry(intersection, yBottom, rowIndex, cfg.SnapMM))
		}

		if direction == DirectionLTR {
			cursor += float64(w)
		} else {
			cursor -= float64(w)
		}
	}

	return standards, customs, nil
}

// bestFittingWidth tries catalog widths largest-to-smallest that fit within
// remaining, skipping any whose candidate rectangle intersects the
// component in a degenerate (near-zero) area, per spec §4.4 steps 1–3.
func bestFittingWidth(k *Kernel, component Polygon, cursor, yBottom, height float64, widths []int, direction Direction, remaining float64, cfg EngineConfig) (w int, rect Polygon, intersection Polygon, area, rectArea float64, found bool, err error) {
	for _, cand := range widths {
		if float64(cand) > remaining+cfg.CoordEPS {
			continue
		}
		var r Polygon
		if direction == DirectionLTR {
			r = Box(cursor, yBottom, cursor+float64(cand), yBottom+height)
		} else {
			r = Box(cursor-float64(cand), yBottom, cursor, yBottom+height)
		}
		pieces, ierr := k.Intersect(component, r)
		if ierr != nil {
			return 0, Polygon{}, Polygon{}, 0, 0, false, wrapFatal("segment packer: candidate intersection", ierr)
		}
		merged, iArea := largestPiece(k, pieces)
		if iArea < cfg.AreaEPS {
			continue
		}
		ra, aerr := k.Area(r)
		if aerr != nil {
			return 0, Polygon{}, Polygon{}, 0, 0, false, wrapFatal("segment packer: rect area", aerr)
		}
		return cand, r, merged, iArea, ra, true, nil
	}
	return 0, Polygon{}, Polygon{}, 0, 0, false, nil
}

// largestPiece returns the largest-area polygon among pieces (an
// intersection against a rectangle can yield slivers; the packer reasons
// about the dominant piece) and its area.
func largestPiece(k *Kernel, pieces []Polygon) (Polygon, float64) {
	var best Polygon
	var bestArea float64
	for _, p := range pieces {
		a, err := k.Area(p)
		if err != nil {
			continue
		}
		if a > bestArea {
			best, bestArea = p, a
		}
	}
	return best, bestArea
}

func trailingRect(cursor, yBottom, height float64, direction Direction, sx, ex float64) (Polygon, error) {
	if direction == DirectionLTR {
		return Box(cursor, yBottom, ex, yBottom+height), nil
	}
	return Box(sx, yBottom, cursor, yBottom+height), nil
}

// customFromGeometry builds a CustomPiece whose WidthMM/HeightMM/X are
// derived from geom's own bounds and snapped to grid, mirroring
// wall_builder.py:_mk_custom — the piece's footprint is authoritative, not
// the nominal row band it was cut from, since a component already clipped
// to the wall or an aperture can be shorter or narrower than the band.
// Y is the supplied yBottom (the row's bottom edge), snapped to grid, not
// the geometry's own minimum y.
func customFromGeometry(geom Polygon, yBottom float64, rowIndex int, grid float64) CustomPiece {
	b := BoundsOf(geom)
	return CustomPiece{
		WidthMM:  snapCoord(b.Width(), grid),
		HeightMM: snapCoord(b.Height(), grid),
		X:        snapCoord(b.MinX, grid),
		Y:        snapCoord(yBottom, grid),
		RowIndex: rowIndex,
		Geometry: geom,
	}
}

// sortedWidthsDescending is a small convenience used by callers building a
// widths slice from a Catalog.
func sortedWidthsDescending(widths []int) []int {
	out := append([]int(nil), widths...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
