// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "sort"

// Row is one horizontal stripe of the wall, already carved by the keep-out
// (apertures + wall holes) into its left-to-right connected components.
type Row struct {
	Index      int
	YBottom    float64
	YTop       float64
	Components []Polygon
	// Adaptive marks the final, reduced-height band emitted when the wall
	// height is not a multiple of the block height (spec §4.3).
	Adaptive bool
}

// Height returns YTop - YBottom.
func (r Row) Height() float64 { return r.YTop - r.YBottom }

// RowIterator produces the stripes described in spec §4.3. It is a finite,
// non-restartable sequence: each call to Next advances past the previous
// row and it is an error for a caller to try to replay one.
type RowIterator struct {
	kernel  *Kernel
	wall    Polygon
	keepOut []Polygon
	height  float64
	bounds  Bounds
	cfg     EngineConfig

	index int
	y     float64
	done  bool
}

// NewRowIterator builds an iterator over wall, sliced into bands of the
// given height, with apertures and wall holes both forming the keep-out.
func NewRowIterator(k *Kernel, wall Polygon, apertures []Polygon, height float64, cfg EngineConfig) *RowIterator {
	return NewOffsetRowIterator(k, wall, apertures, height, 0, cfg)
}

// NewOffsetRowIterator is NewRowIterator with the first row's y lifted by
// groundOffsetMM (spec §4.7, "piedini"): the band between the wall's
// bottom edge and the offset is left to the caller (leveling feet, not
// packed blocks), and the adaptive last-row threshold is evaluated against
// the shifted grid.
func NewOffsetRowIterator(k *Kernel, wall Polygon, apertures []Polygon, height, groundOffsetMM float64, cfg EngineConfig) *RowIterator {
	keepOut := append([]Polygon(nil), apertures...)
	keepOut = append(keepOut, holesAsPolygons(wall)...)
	bounds := BoundsOf(wall)
	return &RowIterator{
		kernel:  k,
		wall:    wall,
		keepOut: keepOut,
		height:  height,
		bounds:  bounds,
		cfg:     cfg,
		y:       bounds.MinY + groundOffsetMM,
	}
}

// holesAsPolygons turns a polygon's interior rings into standalone
// single-ring polygons usable as keep-outs.
func holesAsPolygons(p Polygon) []Polygon {
	holes := p.Holes()
	out := make([]Polygon, len(holes))
	for i, ring := range holes {
		out[i] = Polygon{Rings: [][]Point{ring}}
	}
	return out
}

// Next yields the next row, or (Row{}, false, nil) once the iterator is
// exhausted. It returns an error only on a geometry-kernel failure.
func (it *RowIterator) Next() (Row, bool, error) {
	if it.done {
		return Row{}, false, nil
	}

	maxY := it.bounds.MaxY
	yTop := it.y + it.height

	if yTop > maxY {
		// Final, possibly-partial band.
		it.done = true
		leftover := maxY - it.y
		if leftover < it.cfg.AdaptiveBandMinMM {
			return Row{}, false, nil
		}
		row, err := it.buildRow(it.y, maxY, true)
		if err != nil {
			return Row{}, false, err
		}
		return row, true, nil
	}

	row, err := it.buildRow(it.y, yTop, false)
	if err != nil {
		return Row{}, false, err
	}
	it.y = yTop
	it.index++
	return row, true, nil
}

func (it *RowIterator) buildRow(yBottom, yTop float64, adaptive bool) (Row, error) {
	stripe := Box(it.bounds.MinX, yBottom, it.bounds.MaxX, yTop)

	pieces, err := it.kernel.Intersect(it.wall, stripe)
	if err != nil {
		return Row{}, wrapFatal("row iterator: intersect stripe", err)
	}

	buf := getPolygonSlice()
	defer putPolygonSlice(buf)

	for _, piece := range pieces {
		carved, err := it.kernel.DifferenceMany(piece, it.keepOut)
		if err != nil {
			return Row{}, wrapFatal("row iterator: subtract keep-out", err)
		}
		for _, c := range carved {
			area, err := it.kernel.Area(c)
			if err != nil {
				return Row{}, wrapFatal("row iterator: area", err)
			}
			if area < it.cfg.AreaEPS {
				continue // DegenerateGeometry, skipped silently per §7
			}
			*buf = append(*buf, c)
		}
	}

	sort.Slice(*buf, func(i, j int) bool {
		return BoundsOf((*buf)[i]).MinX < BoundsOf((*buf)[j]).MinX
	})

	components := append([]Polygon(nil), (*buf)...)

	return Row{
		Index:      it.index,
		YBottom:    yBottom,
		YTop:       yTop,
		Components: components,
		Adaptive:   adaptive,
	}, nil
}
