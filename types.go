// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "strconv"

// Point is an X, Y pair in millimetres.
type Point struct {
	X float64
	Y float64
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Polygon is a simple polygon in millimetre coordinates, exterior ring
// first followed by zero or more interior rings (holes). It is the only
// polygon representation that crosses component boundaries inside the
// core; the geometry kernel's underlying library never escapes geometry.go.
type Polygon struct {
	Rings [][]Point
}

// Exterior returns the outer ring, or nil if the polygon is empty.
func (p Polygon) Exterior() []Point {
	if len(p.Rings) == 0 {
		return nil
	}
	return p.Rings[0]
}

// Holes returns the interior rings.
func (p Polygon) Holes() [][]Point {
	if len(p.Rings) <= 1 {
		return nil
	}
	return p.Rings[1:]
}

// CType tags the kind of cut a CustomPiece required.
type CType int

const (
	// CTypeFlush means only the width was cut; height equals block height.
	CTypeFlush CType = iota
	// CTypeFlex means height was cut too (not a full block-height slice).
	CTypeFlex
	// CTypeOutOfSpec means the piece exceeds catalog bounds even after splitting.
	CTypeOutOfSpec
)

func (c CType) String() string {
	switch c {
	case CTypeFlush:
		return "flush"
	case CTypeFlex:
		return "flex"
	case CTypeOutOfSpec:
		return "out_of_spec"
	default:
		return "unknown"
	}
}

// StandardBlock is a prefabricated rectangular block of one of the
// catalog's standard widths.
type StandardBlock struct {
	WidthMM  float64
	HeightMM float64
	X        float64
	Y        float64
	RowIndex int

	Category string
	Number   int
}

// Label returns the full "{letter}{number}" label, empty until grouping runs.
func (b StandardBlock) Label() string {
	return labelOf(b.Category, b.Number)
}

// Footprint returns the axis-aligned rectangle occupied by the block.
func (b StandardBlock) Footprint() Bounds {
	return Bounds{b.X, b.Y, b.X + b.WidthMM, b.Y + b.HeightMM}
}

// CustomPiece is a cut-to-fit piece filling whatever a standard block could
// not cover exactly.
type CustomPiece struct {
	WidthMM  float64
	HeightMM float64
	X        float64
	Y        float64
	RowIndex int

	Geometry Polygon
	Ctype    CType

	SourceBlockWidth int
	WasteMM          float64

	Category string
	Number   int
}

// Label returns the full "{letter}{number}" label, empty until grouping runs.
func (c CustomPiece) Label() string {
	return labelOf(c.Category, c.Number)
}

func labelOf(category string, number int) string {
	if category == "" || number == 0 {
		return ""
	}
	return category + strconv.Itoa(number)
}

// Metrics summarizes a Placement for downstream consumers.
type Metrics struct {
	StandardCount    int
	CustomCount      int
	RowCount         int
	ApertureCount    int
	EfficiencyRatio  float64
	WasteRatio       float64
}

// Placement is the orchestrator's output: standard and custom blocks tiling
// a wall, plus summary metrics.
type Placement struct {
	Standards []StandardBlock
	Customs   []CustomPiece

	WallBounds  Bounds
	WallAreaMM2 float64
	Metrics     Metrics

	// Empty is set when the wall had no placeable area (fully covered by
	// apertures, or degenerate after repair). Standards/Customs are then
	// both empty but this is not treated as an error (§7, EmptyPlacement).
	Empty bool

	// CoverageOverflow is set when invariant 4 (coverage) is violated by
	// more than one smallest-width slice; a data-quality signal, not fatal.
	CoverageOverflow bool

	// ModuleStuds maps a standard block's label to its computed moraletti
	// (internal stud) count; populated only when the small/residential
	// variant ran. Customs have no entry.
	ModuleStuds map[string]int
}
