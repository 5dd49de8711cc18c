// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"math"
	"testing"
)

func TestClipToWallConvertsStandardCrossingEdge(t *testing.T) {
	k := NewKernel()
	// Trapezoidal wall (S3): top edge slants down from (0,2500) to (3000,2000).
	wall := Polygon{Rings: [][]Point{{
		{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 3000, Y: 2000}, {X: 0, Y: 2500}, {X: 0, Y: 0},
	}}}
	cfg := DefaultEngineConfig()

	// A top-row standard block whose right edge pokes above the slanted top.
	standard := StandardBlock{WidthMM: 1239, HeightMM: 495, X: 0, Y: 1980, RowIndex: 4}

	standards, customs, err := ClipToWall(k, wall, []StandardBlock{standard}, nil, cfg)
	if err != nil {
		t.Fatalf("ClipToWall: %v", err)
	}
	if len(standards) != 0 {
		t.Fatalf("got %d standards, want 0 (demoted to custom)", len(standards))
	}
	if len(customs) != 1 {
		t.Fatalf("got %d customs, want 1", len(customs))
	}
}

func TestClipToWallKeepsFullyContainedStandard(t *testing.T) {
	k := NewKernel()
	wall := rectWall(5000, 2475)
	cfg := DefaultEngineConfig()
	standard := StandardBlock{WidthMM: 1239, HeightMM: 495, X: 0, Y: 0, RowIndex: 0}

	standards, customs, err := ClipToWall(k, wall, []StandardBlock{standard}, nil, cfg)
	if err != nil {
		t.Fatalf("ClipToWall: %v", err)
	}
	if len(standards) != 1 || len(customs) != 0 {
		t.Fatalf("got %d standards / %d customs, want 1/0", len(standards), len(customs))
	}
}

func TestRowAwareMergeDoesNotCrossRows(t *testing.T) {
	k := NewKernel()
	cfg := DefaultEngineConfig()
	a := customFromGeometry(Box(0, 0, 100, 495), 0, 0, cfg.SnapMM)
	b := customFromGeometry(Box(100, 0, 200, 495), 0, 0, cfg.SnapMM)
	c := customFromGeometry(Box(0, 495, 100, 990), 495, 1, cfg.SnapMM)

	merged, err := RowAwareMerge(k, []CustomPiece{a, b, c}, cfg)
	if err != nil {
		t.Fatalf("RowAwareMerge: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("got %d merged customs, want 2 (row 0 merges, row 1 stays separate)", len(merged))
	}
	for _, m := range merged {
		if m.RowIndex == 0 && math.Abs(m.WidthMM-200) > 1e-6 {
			t.Fatalf("row 0 merged width = %v, want 200", m.WidthMM)
		}
	}
}

func TestSplitOutOfSpecSlicesWideCustom(t *testing.T) {
	k := NewKernel()
	cfg := DefaultEngineConfig()
	wide := customFromGeometry(Box(0, 0, 3000, 495), 0, 0, cfg.SnapMM)

	split, err := SplitOutOfSpec(k, []CustomPiece{wide}, 1239, 495, cfg)
	if err != nil {
		t.Fatalf("SplitOutOfSpec: %v", err)
	}
	for _, s := range split {
		if s.WidthMM > 1239+1e-6 {
			t.Fatalf("slice width %v exceeds max catalog width 1239", s.WidthMM)
		}
	}
	var total float64
	for _, s := range split {
		total += s.WidthMM
	}
	if math.Abs(total-3000) > 1e-6 {
		t.Fatalf("total sliced width = %v, want 3000", total)
	}
}

func TestTagTypesClassification(t *testing.T) {
	cfg := DefaultEngineConfig()
	flush := CustomPiece{WidthMM: 348, HeightMM: 495}
	flex := CustomPiece{WidthMM: 348, HeightMM: 300}
	outOfSpec := CustomPiece{WidthMM: 1300, HeightMM: 495}
	customs := []CustomPiece{flush, flex, outOfSpec}

	TagTypes(customs, 1239, 495, cfg)

	if customs[0].Ctype != CTypeFlush {
		t.Fatalf("flush case got %v", customs[0].Ctype)
	}
	if customs[1].Ctype != CTypeFlex {
		t.Fatalf("flex case got %v", customs[1].Ctype)
	}
	if customs[2].Ctype != CTypeOutOfSpec {
		t.Fatalf("out-of-spec case got %v", customs[2].Ctype)
	}
}

func TestChooseSourceBlocksSetsWaste(t *testing.T) {
	catalog := DefaultCatalog()
	customs := []CustomPiece{{WidthMM: 348}}
	ChooseSourceBlocks(customs, catalog)
	if customs[0].SourceBlockWidth != 413 {
		t.Fatalf("source block width = %d, want 413", customs[0].SourceBlockWidth)
	}
	if math.Abs(customs[0].WasteMM-65) > 1e-6 {
		t.Fatalf("waste = %v, want 65", customs[0].WasteMM)
	}
}
