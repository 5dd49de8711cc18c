// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"math"
	"testing"
)

// TestPackSmallGroundOffset is spec scenario S5.
func TestPackSmallGroundOffset(t *testing.T) {
	k := NewKernel()
	wall := rectWall(2478, 1700)
	catalog := DefaultCatalog()
	cfg := DefaultEngineConfig()

	standards, _, rowCount, err := PackSmall(k, wall, nil, catalog, DirectionLTR, 95, nil, cfg)
	if err != nil {
		t.Fatalf("PackSmall: %v", err)
	}
	if rowCount == 0 {
		t.Fatalf("no rows packed")
	}
	minY := math.Inf(1)
	for _, b := range standards {
		if b.Y < minY {
			minY = b.Y
		}
	}
	if math.Abs(minY-95) > 5 {
		t.Fatalf("minimum block y = %v, want ~95", minY)
	}
}

func TestPackSmallNoAlternation(t *testing.T) {
	k := NewKernel()
	wall := rectWall(5000, 2475)
	catalog := DefaultCatalog()
	cfg := DefaultEngineConfig()

	standards, _, _, err := PackSmall(k, wall, nil, catalog, DirectionLTR, 0, nil, cfg)
	if err != nil {
		t.Fatalf("PackSmall: %v", err)
	}
	// Every row must start at x=0 (no alternation), so at least one
	// standard per row must sit at x=0.
	rowsWithLeftAnchor := map[int]bool{}
	for _, b := range standards {
		if b.X == 0 {
			rowsWithLeftAnchor[b.RowIndex] = true
		}
	}
	if len(rowsWithLeftAnchor) < 5 {
		t.Fatalf("only %d rows anchored at x=0, want all 5", len(rowsWithLeftAnchor))
	}
}

func TestModuleStudsForWidth(t *testing.T) {
	catalog := DefaultCatalog()
	m := DefaultMoralettiConfig()

	got := ModuleStudsForWidth(1239, catalog, m)
	if got < 1 || got > m.MaxCountLarge {
		t.Fatalf("ModuleStudsForWidth(1239) = %d, out of [1,%d]", got, m.MaxCountLarge)
	}

	got = ModuleStudsForWidth(413, catalog, m)
	if got > m.MaxCountSmall {
		t.Fatalf("ModuleStudsForWidth(413) = %d, want <= %d", got, m.MaxCountSmall)
	}
}
