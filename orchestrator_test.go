// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPackS1Rectangle is spec scenario S1: a clean 5000x2475 wall packs
// into exactly 5 rows of 5 blocks and ~zero waste. Every catalog width is a
// multiple of 413 and 5000 is not, so each row is four 1239 standards plus
// one 44mm trailing custom.
func TestPackS1Rectangle(t *testing.T) {
	req := PackRequest{
		Wall:    rectWall(5000, 2475),
		Catalog: DefaultCatalog(),
	}
	placement, err := Pack(req)
	require.NoError(t, err)
	require.False(t, placement.Empty)

	require.Len(t, placement.Standards, 20)
	require.Len(t, placement.Customs, 5)
	require.InDelta(t, 0, placement.Metrics.WasteRatio, 0.02)

	// Row 0 (ltr) begins at x=0 with the widest block.
	row0 := filterByRow(placement.Standards, 0)
	require.NotEmpty(t, row0)
	require.Equal(t, 0.0, minX(row0))
	require.Equal(t, 1239.0, widthAt(row0, 0))

	// Row 1 (rtl) ends flush at x=5000.
	row1 := filterByRow(placement.Standards, 1)
	require.NotEmpty(t, row1)
	require.Equal(t, 5000.0, maxX(row1))
}

// TestPackS2CenteredDoor is spec scenario S2.
func TestPackS2CenteredDoor(t *testing.T) {
	req := PackRequest{
		Wall:      rectWall(5000, 2475),
		Apertures: []Polygon{Box(2000, 0, 3000, 2100)},
		Catalog:   DefaultCatalog(),
	}
	placement, err := Pack(req)
	require.NoError(t, err)

	for _, b := range placement.Standards {
		if b.Y < 2100 && overlapsInterval(b.X, b.X+b.WidthMM, 2000, 3000) {
			t.Fatalf("standard %+v overlaps the door keep-out", b)
		}
	}
	for _, c := range placement.Customs {
		if c.Y < 2100 && overlapsInterval(c.X, c.X+c.WidthMM, 2000, 3000) {
			t.Fatalf("custom %+v overlaps the door keep-out", c)
		}
	}
}

// TestPackS3TrapezoidalWall is spec scenario S3.
func TestPackS3TrapezoidalWall(t *testing.T) {
	wall := Polygon{Rings: [][]Point{{
		{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 2000}, {X: 0, Y: 2500}, {X: 0, Y: 0},
	}}}
	req := PackRequest{Wall: wall, Catalog: DefaultCatalog()}
	placement, err := Pack(req)
	require.NoError(t, err)

	var sawFlex bool
	for _, c := range placement.Customs {
		if c.Ctype == CTypeFlex {
			sawFlex = true
		}
	}
	require.True(t, sawFlex, "expected at least one flex custom from the slanted top edge")
}

// TestPackS4AdaptiveBand is spec scenario S4.
func TestPackS4AdaptiveBand(t *testing.T) {
	req := PackRequest{
		Wall:    rectWall(2478, 1700),
		Catalog: DefaultCatalog(),
	}
	placement, err := Pack(req)
	require.NoError(t, err)

	var sawAdaptiveHeight bool
	for _, b := range placement.Standards {
		if math.Abs(b.HeightMM-215) < 1 {
			sawAdaptiveHeight = true
		}
	}
	require.True(t, sawAdaptiveHeight, "expected blocks with the adaptive 215mm height")
}

func TestPackInvalidCatalogFails(t *testing.T) {
	req := PackRequest{
		Wall:    rectWall(1000, 500),
		Catalog: Catalog{Widths: []int{100, 200}, Height: 100},
	}
	_, err := Pack(req)
	require.Error(t, err)
}

func TestPackSmallWithoutMoralettiFails(t *testing.T) {
	req := PackRequest{
		Wall:      rectWall(1000, 500),
		Catalog:   DefaultCatalog(),
		Algorithm: AlgorithmSmall,
	}
	_, err := Pack(req)
	require.ErrorIs(t, err, ErrMoralettiConfigRequired)
}

func TestPackEmptyWhenFullyCoveredByApertures(t *testing.T) {
	wall := rectWall(1000, 1000)
	req := PackRequest{
		Wall:      wall,
		Apertures: []Polygon{Box(0, 0, 1000, 1000)},
		Catalog:   DefaultCatalog(),
	}
	placement, err := Pack(req)
	require.NoError(t, err)
	require.True(t, placement.Empty)
}

// TestPackInvariantsNoOverlapAndInsideWall checks universal invariants 1
// (no overlap) and 2 (inside the wall).
func TestPackInvariantsNoOverlapAndInsideWall(t *testing.T) {
	k := NewKernel()
	wall := rectWall(5000, 2475)
	aperture := Box(2000, 0, 3000, 2100)
	req := PackRequest{Wall: wall, Apertures: []Polygon{aperture}, Catalog: DefaultCatalog()}
	placement, err := Pack(req)
	require.NoError(t, err)

	footprints := make([]Polygon, 0, len(placement.Standards)+len(placement.Customs))
	for _, b := range placement.Standards {
		footprints = append(footprints, Box(b.X, b.Y, b.X+b.WidthMM, b.Y+b.HeightMM))
	}
	for _, c := range placement.Customs {
		footprints = append(footprints, c.Geometry)
	}

	for i := range footprints {
		for j := i + 1; j < len(footprints); j++ {
			pieces, err := k.Intersect(footprints[i], footprints[j])
			require.NoError(t, err)
			for _, p := range pieces {
				area, err := k.Area(p)
				require.NoError(t, err)
				require.LessOrEqual(t, area, 1.0, "blocks %d and %d overlap by %v mm2", i, j, area)
			}
		}
		outside, err := k.Difference(footprints[i], wall)
		require.NoError(t, err)
		for _, o := range outside {
			area, err := k.Area(o)
			require.NoError(t, err)
			require.LessOrEqual(t, area, 1.0, "footprint %d extends outside the wall", i)
		}
	}
}

func filterByRow(blocks []StandardBlock, row int) []StandardBlock {
	var out []StandardBlock
	for _, b := range blocks {
		if b.RowIndex == row {
			out = append(out, b)
		}
	}
	return out
}

func minX(blocks []StandardBlock) float64 {
	m := math.Inf(1)
	for _, b := range blocks {
		if b.X < m {
			m = b.X
		}
	}
	return m
}

func maxX(blocks []StandardBlock) float64 {
	m := math.Inf(-1)
	for _, b := range blocks {
		if b.X+b.WidthMM > m {
			m = b.X + b.WidthMM
		}
	}
	return m
}

func widthAt(blocks []StandardBlock, x float64) float64 {
	for _, b := range blocks {
		if b.X == x {
			return b.WidthMM
		}
	}
	return -1
}

func overlapsInterval(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && bStart < aEnd
}
