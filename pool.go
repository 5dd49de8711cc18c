// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "sync"

// Object pools for the slice buffers the orchestrator allocates once per
// row while packing. A Pack invocation processes rows sequentially, so a
// pooled buffer is always returned before the next row needs one.

var polygonSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]Polygon, 0, 8)
		return &s
	},
}

// getPolygonSlice retrieves a zero-length []Polygon buffer from the pool.
func getPolygonSlice() *[]Polygon {
	return polygonSlicePool.Get().(*[]Polygon)
}

// putPolygonSlice resets and returns a buffer to the pool.
func putPolygonSlice(s *[]Polygon) {
	*s = (*s)[:0]
	polygonSlicePool.Put(s)
}

var customPieceSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]CustomPiece, 0, 8)
		return &s
	},
}

// getCustomPieceSlice retrieves a zero-length []CustomPiece buffer from the pool.
func getCustomPieceSlice() *[]CustomPiece {
	return customPieceSlicePool.Get().(*[]CustomPiece)
}

// putCustomPieceSlice resets and returns a buffer to the pool.
func putCustomPieceSlice(s *[]CustomPiece) {
	*s = (*s)[:0]
	customPieceSlicePool.Put(s)
}
