// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import "sort"

// BlockOrderer produces the final (row-major, left-to-right) ordering of a
// Placement's blocks, adapted from AdaptiveSorter: small slices (one or two
// rows worth of blocks) use insertion sort to avoid sort.Slice's closure
// overhead, larger ones fall back to the standard library.
type BlockOrderer struct {
	insertionThreshold int
}

// NewBlockOrderer creates an orderer with the historical threshold.
func NewBlockOrderer() *BlockOrderer {
	return &BlockOrderer{insertionThreshold: 20}
}

// OrderStandards sorts standards by (y, x), stable.
func (bo *BlockOrderer) OrderStandards(blocks []StandardBlock) {
	n := len(blocks)
	if n <= 1 {
		return
	}
	less := func(i, j int) bool {
		if blocks[i].Y != blocks[j].Y {
			return blocks[i].Y < blocks[j].Y
		}
		return blocks[i].X < blocks[j].X
	}
	if n < bo.insertionThreshold {
		insertionSortStandards(blocks, less)
		return
	}
	sort.SliceStable(blocks, less)
}

// OrderCustoms sorts customs by (y, x), stable. Customs are ordered
// separately from standards: Placement keeps the two in distinct lists and
// nothing merges them into one sequence.
func (bo *BlockOrderer) OrderCustoms(customs []CustomPiece) {
	n := len(customs)
	if n <= 1 {
		return
	}
	less := func(i, j int) bool {
		if customs[i].Y != customs[j].Y {
			return customs[i].Y < customs[j].Y
		}
		return customs[i].X < customs[j].X
	}
	if n < bo.insertionThreshold {
		insertionSortCustoms(customs, less)
		return
	}
	sort.SliceStable(customs, less)
}

func insertionSortStandards(blocks []StandardBlock, less func(i, j int) bool) {
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			blocks[j-1], blocks[j] = blocks[j], blocks[j-1]
		}
	}
}

func insertionSortCustoms(customs []CustomPiece, less func(i, j int) bool) {
	for i := 1; i < len(customs); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			customs[j-1], customs[j] = customs[j], customs[j-1]
		}
	}
}
