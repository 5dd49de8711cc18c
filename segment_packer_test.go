// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"math"
	"testing"
)

func TestDirectionForRow(t *testing.T) {
	if got := DirectionForRow(0, ""); got != DirectionLTR {
		t.Fatalf("row 0 direction = %v, want ltr", got)
	}
	if got := DirectionForRow(1, ""); got != DirectionRTL {
		t.Fatalf("row 1 direction = %v, want rtl", got)
	}
	if got := DirectionForRow(1, DirectionLTR); got != DirectionLTR {
		t.Fatalf("pinned direction not honored: got %v", got)
	}
}

// TestPackSegmentS6 is spec scenario S6: a 2000mm-wide, 495mm-tall segment
// packs 1239 (A1) then 413 (C1) — 826 doesn't fit (1239+826=2065>2000) —
// leaving a 348mm trailing custom.
func TestPackSegmentS6(t *testing.T) {
	k := NewKernel()
	component := Box(0, 0, 2000, 495)
	cfg := DefaultEngineConfig()
	widths := []int{1239, 826, 413}

	standards, customs, err := PackSegment(k, component, 0, 495, widths, DirectionLTR, 0, cfg)
	if err != nil {
		t.Fatalf("PackSegment: %v", err)
	}

	if len(standards) != 2 {
		t.Fatalf("got %d standards, want 2", len(standards))
	}
	if standards[0].WidthMM != 1239 || standards[0].X != 0 {
		t.Fatalf("first standard = %+v, want width 1239 at x=0", standards[0])
	}
	if standards[1].WidthMM != 413 || standards[1].X != 1239 {
		t.Fatalf("second standard = %+v, want width 413 at x=1239", standards[1])
	}

	if len(customs) != 1 {
		t.Fatalf("got %d customs, want 1", len(customs))
	}
	if math.Abs(customs[0].WidthMM-348) > 1e-6 {
		t.Fatalf("trailing custom width = %v, want 348", customs[0].WidthMM)
	}
}

func TestPackSegmentExactTiling(t *testing.T) {
	k := NewKernel()
	component := Box(0, 0, 5000, 495) // S1 row: four 1239s (4956mm) plus a 44mm trailing custom
	cfg := DefaultEngineConfig()
	widths := []int{1239, 826, 413}

	standards, customs, err := PackSegment(k, component, 0, 495, widths, DirectionLTR, 0, cfg)
	if err != nil {
		t.Fatalf("PackSegment: %v", err)
	}
	var covered float64
	for _, s := range standards {
		covered += s.WidthMM
	}
	for _, c := range customs {
		covered += c.WidthMM
	}
	if math.Abs(covered-5000) > 1 {
		t.Fatalf("total covered width = %v, want ~5000", covered)
	}
}

func TestPackSegmentRTLMirrorsLTR(t *testing.T) {
	k := NewKernel()
	component := Box(0, 0, 2000, 495)
	cfg := DefaultEngineConfig()
	widths := []int{1239, 826, 413}

	standards, _, err := PackSegment(k, component, 0, 495, widths, DirectionRTL, 1, cfg)
	if err != nil {
		t.Fatalf("PackSegment: %v", err)
	}
	if len(standards) != 2 {
		t.Fatalf("got %d standards, want 2", len(standards))
	}
	// rtl cursor starts at ex=2000: first block is [2000-1239, 2000] = [761,2000].
	if math.Abs(standards[0].X-761) > 1e-6 {
		t.Fatalf("first rtl standard x = %v, want 761", standards[0].X)
	}
}
