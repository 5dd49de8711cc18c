// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"sort"

	"github.com/samber/lo"
)

// customCluster groups customs sharing a dimension class within the
// catalog's clustering tolerance (spec §4.8: |w1-w2| <= tol AND
// |h1-h2| <= tol). The representative is the first member seen, matching
// block_grouping.py's insertion-order clustering.
type customCluster struct {
	repWidth, repHeight float64
	members             []int // indices into the customs slice
}

// AssignLabels is the grouping & labeling engine (spec §4.8). It mutates
// standards and customs in place, setting Category and Number on every
// block. Standards take their letter directly from the catalog; customs
// are clustered by dimension and lettered starting at the letter after the
// last standard letter, in decreasing-population order.
func AssignLabels(standards []StandardBlock, customs []CustomPiece, catalog Catalog, cfg EngineConfig) {
	assignStandardLetters(standards, catalog)
	lastStandardIndex := lastStandardLetterIndex(catalog)
	assignCustomLetters(customs, lastStandardIndex+1, cfg.ScartoCustomMM)
	assignNumbers(standards, customs)
}

func assignStandardLetters(standards []StandardBlock, catalog Catalog) {
	for i := range standards {
		standards[i].Category = catalog.LetterForWidth(int(standards[i].WidthMM + 0.5))
	}
}

func lastStandardLetterIndex(catalog Catalog) int {
	max := -1
	for _, letter := range catalog.SizeToLetter {
		if idx := letterIndex(letter); idx > max {
			max = idx
		}
	}
	return max
}

func assignCustomLetters(customs []CustomPiece, startIndex int, tolerance float64) {
	if len(customs) == 0 {
		return
	}

	var clusters []customCluster
	for i, c := range customs {
		placed := false
		for ci := range clusters {
			cl := &clusters[ci]
			if abs64(c.WidthMM-cl.repWidth) <= tolerance && abs64(c.HeightMM-cl.repHeight) <= tolerance {
				cl.members = append(cl.members, i)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, customCluster{repWidth: c.WidthMM, repHeight: c.HeightMM, members: []int{i}})
		}
	}

	order := lo.Range(len(clusters))
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := clusters[order[a]], clusters[order[b]]
		if len(ca.members) != len(cb.members) {
			return len(ca.members) > len(cb.members)
		}
		if ca.repWidth != cb.repWidth {
			return ca.repWidth > cb.repWidth
		}
		if ca.repHeight != cb.repHeight {
			return ca.repHeight > cb.repHeight
		}
		return order[a] < order[b]
	})

	for rank, clusterIdx := range order {
		letter := letterAtIndex(startIndex + rank)
		for _, memberIdx := range clusters[clusterIdx].members {
			customs[memberIdx].Category = letter
		}
	}
}

// assignNumbers sorts every block into its category and assigns a
// contiguous 1..N progressive number in placement order (stable sort by y
// then x), per spec §4.8.
func assignNumbers(standards []StandardBlock, customs []CustomPiece) {
	type placed struct {
		standardIdx int
		customIdx   int
		isCustom    bool
		x, y        float64
	}

	byCategory := map[string][]placed{}
	for i, b := range standards {
		byCategory[b.Category] = append(byCategory[b.Category], placed{standardIdx: i, x: b.X, y: b.Y})
	}
	for i, c := range customs {
		byCategory[c.Category] = append(byCategory[c.Category], placed{customIdx: i, isCustom: true, x: c.X, y: c.Y})
	}

	for category, items := range byCategory {
		sort.SliceStable(items, func(a, b int) bool {
			if items[a].y != items[b].y {
				return items[a].y < items[b].y
			}
			return items[a].x < items[b].x
		})
		for n, item := range items {
			number := n + 1
			if item.isCustom {
				customs[item.customIdx].Number = number
				customs[item.customIdx].Category = category
			} else {
				standards[item.standardIdx].Number = number
				standards[item.standardIdx].Category = category
			}
		}
	}
}

// letterAtIndex converts a 0-based index into spreadsheet-style letters:
// 0->"A", 25->"Z", 26->"AA", 27->"AB", ...
func letterAtIndex(idx int) string {
	idx++ // switch to 1-based for the base-26 "bijective numeration" below
	var out []byte
	for idx > 0 {
		idx--
		out = append([]byte{byte('A' + idx%26)}, out...)
		idx /= 26
	}
	return string(out)
}

// letterIndex is the inverse of letterAtIndex.
func letterIndex(letter string) int {
	idx := 0
	for _, r := range letter {
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
