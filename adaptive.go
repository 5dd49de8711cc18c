// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

// PackAdaptiveRow packs the final, reduced-height band emitted by
// RowIterator when the wall height is not a multiple of block height
// (spec §4.5). It reuses PackSegment verbatim with height replaced by the
// band's own height and no direction alternation: the band takes the same
// direction as the last full row that was packed.
func PackAdaptiveRow(k *Kernel, row Row, widths []int, lastDirection Direction, cfg EngineConfig) ([]StandardBlock, []CustomPiece, error) {
	var standards []StandardBlock
	var customs []CustomPiece

	for _, component := range row.Components {
		s, c, err := PackSegment(k, component, row.YBottom, row.Height(), widths, lastDirection, row.Index, cfg)
		if err != nil {
			return nil, nil, err
		}
		standards = append(standards, s...)
		customs = append(customs, c...)
	}

	return standards, customs, nil
}
