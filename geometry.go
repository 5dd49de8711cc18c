// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geos"
)

// Kernel is the geometry kernel (spec §4.1): the only place in the module
// that sees the underlying polygon library. It is a thin adapter over
// go-geos, the Go binding to GEOS — the same engine the original Python
// implementation used via shapely. All exported methods are pure: they
// never mutate their arguments and always return new Polygon values.
//
// go-geos contexts are not safe for concurrent use, so a Kernel must not be
// shared across goroutines; Pack constructs one Kernel per invocation,
// which satisfies the "reentrant, no shared mutable state" requirement of
// spec §5 without needing a lock.
type Kernel struct {
	ctx *geos.Context
}

// NewKernel creates a geometry kernel bound to a fresh GEOS context.
func NewKernel() *Kernel {
	return &Kernel{ctx: geos.NewContext()}
}

// Snap rounds every coordinate of p to the nearest multiple of grid
// (default SNAP_MM = 1mm per spec §9). Pure arithmetic; does not touch GEOS.
func Snap(p Polygon, grid float64) Polygon {
	if grid <= 0 {
		return p
	}
	out := Polygon{Rings: make([][]Point, len(p.Rings))}
	for i, ring := range p.Rings {
		snapped := make([]Point, len(ring))
		for j, pt := range ring {
			snapped[j] = Point{X: snapCoord(pt.X, grid), Y: snapCoord(pt.Y, grid)}
		}
		out.Rings[i] = snapped
	}
	return out
}

func snapCoord(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}

// Box builds the axis-aligned rectangle [minx,maxx] x [miny,maxy] as a
// Polygon with a single exterior ring, wound counter-clockwise.
func Box(minx, miny, maxx, maxy float64) Polygon {
	return Polygon{Rings: [][]Point{{
		{X: minx, Y: miny},
		{X: maxx, Y: miny},
		{X: maxx, Y: maxy},
		{X: minx, Y: maxy},
		{X: minx, Y: miny},
	}}}
}

// BoundsOf returns the axis-aligned bounding box of p's exterior ring.
func BoundsOf(p Polygon) Bounds {
	ext := p.Exterior()
	if len(ext) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: ext[0].X, MinY: ext[0].Y, MaxX: ext[0].X, MaxY: ext[0].Y}
	for _, pt := range ext {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	return b
}

// Repair attempts to turn an invalid polygon into a valid one via
// MakeValid, falling back to a zero-width buffer, mirroring
// utils/geometry_utils.py:sanitize_polygon. Returns ErrInvalidWall if
// neither produces a valid result.
func (k *Kernel) Repair(p Polygon) (Polygon, error) {
	g, err := k.toGeos(p)
	if err != nil {
		return Polygon{}, wrapFatal("repair polygon", fmt.Errorf("%w: %v", ErrInvalidWall, err))
	}
	if g.IsValid() {
		return p, nil
	}
	fixed := g.MakeValid()
	if fixed == nil || !fixed.IsValid() {
		fixed = g.Buffer(0, 8)
	}
	if fixed == nil || !fixed.IsValid() {
		return Polygon{}, wrapFatal("repair polygon", ErrInvalidWall)
	}
	polys := k.fromGeos(fixed)
	if len(polys) == 0 {
		return Polygon{}, wrapFatal("repair polygon", ErrInvalidWall)
	}
	return polys[0], nil
}

// Area returns the area of p in mm², including hole deductions.
func (k *Kernel) Area(p Polygon) (float64, error) {
	g, err := k.toGeos(p)
	if err != nil {
		return 0, err
	}
	return g.Area(), nil
}

// Intersect returns the polygonal components of a ∩ b, splitting any
// multipolygon result (spec: ensure_polygons).
func (k *Kernel) Intersect(a, b Polygon) ([]Polygon, error) {
	return k.binaryOp(a, b, (*geos.Geom).Intersection)
}

// Difference returns the polygonal components of a \ b.
func (k *Kernel) Difference(a, b Polygon) ([]Polygon, error) {
	return k.binaryOp(a, b, (*geos.Geom).Difference)
}

// Union returns the polygonal components of the union of all polys.
func (k *Kernel) Union(polys []Polygon) ([]Polygon, error) {
	if len(polys) == 0 {
		return nil, nil
	}
	acc, err := k.toGeos(polys[0])
	if err != nil {
		return nil, err
	}
	for _, p := range polys[1:] {
		g, err := k.toGeos(p)
		if err != nil {
			return nil, err
		}
		acc = acc.Union(g)
	}
	return k.fromGeos(acc), nil
}

// Offset buffers p by d millimetres (negative for inward/erosion) using
// mitre joins with the given limit, mirroring
// utils/geometry_utils.py:create_inner_offset_polygon.
func (k *Kernel) Offset(p Polygon, d, mitreLimit float64) (Polygon, error) {
	g, err := k.toGeos(p)
	if err != nil {
		return Polygon{}, err
	}
	buffered := g.BufferWithParams(geos.NewBufferParams().
		SetJoinStyle(geos.BufferJoinStyleMitre).
		SetMitreLimit(mitreLimit), d)
	if buffered == nil || buffered.IsEmpty() {
		return Polygon{}, wrapRecoverable("offset polygon", fmt.Errorf("offset %.2fmm collapses polygon", d))
	}
	polys := k.fromGeos(buffered)
	if len(polys) == 0 {
		return Polygon{}, wrapRecoverable("offset polygon", fmt.Errorf("offset %.2fmm produced no polygon", d))
	}
	// A negative buffer on a concave wall can split into several islands;
	// keep the largest, matching the original's MultiPolygon fallback.
	largest := polys[0]
	largestArea, _ := k.Area(largest)
	for _, cand := range polys[1:] {
		a, _ := k.Area(cand)
		if a > largestArea {
			largest, largestArea = cand, a
		}
	}
	return largest, nil
}

// DifferenceMany subtracts every polygon in bs from a, folding left: each
// subtraction can split a into several pieces, and every later subtrahend
// is applied to all pieces produced so far. Used to carve a stripe of wall
// by the union of apertures plus wall holes, which together rarely form a
// single polygon.
func (k *Kernel) DifferenceMany(a Polygon, bs []Polygon) ([]Polygon, error) {
	remaining := []Polygon{a}
	for _, b := range bs {
		var next []Polygon
		for _, piece := range remaining {
			diffed, err := k.Difference(piece, b)
			if err != nil {
				return nil, err
			}
			next = append(next, diffed...)
		}
		remaining = next
		if len(remaining) == 0 {
			break
		}
	}
	return remaining, nil
}

// binaryOp runs a two-argument GEOS operation and decomposes the result
// into simple polygons.
func (k *Kernel) binaryOp(a, b Polygon, op func(*geos.Geom, *geos.Geom) *geos.Geom) ([]Polygon, error) {
	ga, err := k.toGeos(a)
	if err != nil {
		return nil, err
	}
	gb, err := k.toGeos(b)
	if err != nil {
		return nil, err
	}
	result := op(ga, gb)
	if result == nil || result.IsEmpty() {
		return nil, nil
	}
	return k.fromGeos(result), nil
}

// toGeos builds a GEOS geometry from a Polygon via WKT, the one text
// format both sides of the adapter agree on.
func (k *Kernel) toGeos(p Polygon) (*geos.Geom, error) {
	wkt := polygonToWKT(p)
	g, err := k.ctx.NewGeomFromWKT(wkt)
	if err != nil {
		return nil, fmt.Errorf("parse polygon: %w", err)
	}
	return g, nil
}

// fromGeos decomposes a GEOS geometry (Polygon, MultiPolygon, or a mixed
// GeometryCollection produced by an intersection) into simple Polygons,
// discarding any non-areal component (points/lines from degenerate
// intersections carry zero area and no packing meaning).
func (k *Kernel) fromGeos(g *geos.Geom) []Polygon {
	if g == nil || g.IsEmpty() {
		return nil
	}
	switch g.TypeID() {
	case geos.TypeIDPolygon:
		if p, ok := parseWKTPolygon(g.ToWKT()); ok {
			return []Polygon{p}
		}
		return nil
	case geos.TypeIDMultiPolygon, geos.TypeIDGeometryCollection:
		n := g.NumGeometries()
		out := make([]Polygon, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, k.fromGeos(g.Geometry(i))...)
		}
		return out
	default:
		return nil
	}
}

// polygonToWKT renders a Polygon as a WKT "POLYGON (...)" literal.
func polygonToWKT(p Polygon) string {
	var b strings.Builder
	b.WriteString("POLYGON (")
	for i, ring := range p.Rings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, pt := range ring {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(pt.X, 'f', -1, 64))
			b.WriteString(" ")
			b.WriteString(strconv.FormatFloat(pt.Y, 'f', -1, 64))
		}
		b.WriteString(")")
	}
	b.WriteString(")")
	return b.String()
}

// parseWKTPolygon parses a "POLYGON ((...), (...))" literal back into
// rings. It deliberately handles only the single geometry type this
// adapter ever round-trips through WKT.
func parseWKTPolygon(wkt string) (Polygon, bool) {
	wkt = strings.TrimSpace(wkt)
	prefix := "POLYGON "
	if !strings.HasPrefix(wkt, prefix) {
		return Polygon{}, false
	}
	body := strings.TrimSpace(strings.TrimPrefix(wkt, prefix))
	body = strings.TrimSuffix(strings.TrimPrefix(body, "("), ")")

	var rings [][]Point
	depth := 0
	start := -1
	for i, r := range body {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				ring, ok := parseWKTRing(body[start:i])
				if !ok {
					return Polygon{}, false
				}
				rings = append(rings, ring)
				start = -1
			}
		}
	}
	if len(rings) == 0 {
		return Polygon{}, false
	}
	return Polygon{Rings: rings}, true
}

func parseWKTRing(s string) ([]Point, bool) {
	parts := strings.Split(s, ",")
	ring := make([]Point, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) < 2 {
			return nil, false
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, false
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, false
		}
		ring = append(ring, Point{X: x, Y: y})
	}
	return ring, true
}
