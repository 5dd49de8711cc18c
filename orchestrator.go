// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"github.com/rs/zerolog/log"
)

// StartingDirection pins or alternates the segment packer's starting side.
type StartingDirection string

const (
	StartLeft      StartingDirection = "left"
	StartRight     StartingDirection = "right"
	StartAlternate StartingDirection = "alternate"
)

// Algorithm selects the placer variant (spec §4.7).
type Algorithm string

const (
	AlgorithmBidirectional Algorithm = "bidirectional"
	AlgorithmSmall         Algorithm = "small"
)

// PackRequest is the orchestrator's public input (spec §6).
type PackRequest struct {
	Wall      Polygon
	Apertures []Polygon
	Catalog   Catalog

	StartingDirection StartingDirection
	Algorithm         Algorithm
	Moraletti         *MoralettiConfig
	GroundOffsetMM    float64

	// Config carries the engine's tolerances; the zero value is replaced
	// with DefaultEngineConfig().
	Config EngineConfig
	// Debug is an optional tracing sink; nil is treated as a no-op sink.
	Debug DebugSink
}

// Pack is the public entry point (spec §4.9): one invocation produces one
// Placement. It is single-threaded, performs no I/O apart from the
// coverage-overflow warning written through zerolog's global logger, and
// allocates its own Kernel so that concurrent invocations never share
// geometry-library state.
func Pack(req PackRequest) (*Placement, error) {
	cfg := req.Config
	if cfg == (EngineConfig{}) {
		cfg = DefaultEngineConfig()
	}
	catalog := req.Catalog
	if len(catalog.Widths) == 0 && catalog.Height == 0 {
		catalog = DefaultCatalog()
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if req.Algorithm == AlgorithmSmall && req.Moraletti == nil {
		return nil, wrapFatal("pack", ErrMoralettiConfigRequired)
	}

	debug := req.Debug
	if debug == nil {
		debug = NewNoopSink()
	}

	kernel := NewKernel()

	wall, err := kernel.Repair(req.Wall)
	if err != nil {
		return nil, err
	}
	wallArea, err := kernel.Area(wall)
	if err != nil {
		return nil, wrapFatal("pack: wall area", err)
	}
	if wallArea < cfg.AreaEPS {
		return &Placement{WallBounds: BoundsOf(wall), WallAreaMM2: wallArea, Empty: true}, nil
	}

	apertures, apertureArea, err := filterApertures(kernel, req.Apertures, wallArea, cfg)
	if err != nil {
		return nil, err
	}
	if wallArea-apertureArea < cfg.AreaEPS {
		return &Placement{WallBounds: BoundsOf(wall), WallAreaMM2: wallArea, Metrics: Metrics{ApertureCount: len(apertures)}, Empty: true}, nil
	}

	var standards []StandardBlock
	var customs []CustomPiece
	var rowCount int

	if req.Algorithm == AlgorithmSmall {
		pinned := DirectionLTR
		if req.StartingDirection == StartRight {
			pinned = DirectionRTL
		}
		standards, customs, rowCount, err = PackSmall(kernel, wall, apertures, catalog, pinned, req.GroundOffsetMM, debug, cfg)
	} else {
		standards, customs, rowCount, err = packBidirectional(kernel, wall, apertures, catalog, req.StartingDirection, debug, cfg)
	}
	if err != nil {
		return nil, err
	}

	standards, customs, err = runPostProcessing(kernel, wall, catalog, standards, customs, cfg, debug)
	if err != nil {
		return nil, err
	}

	AssignLabels(standards, customs, catalog, cfg)

	orderer := NewBlockOrderer()
	orderer.OrderStandards(standards)
	orderer.OrderCustoms(customs)

	metrics, coverageOverflow, err := computeMetrics(kernel, standards, customs, wallArea, apertureArea, catalog, rowCount, len(apertures))
	if err != nil {
		return nil, err
	}

	var moduleStuds map[string]int
	if req.Algorithm == AlgorithmSmall {
		moduleStuds = make(map[string]int, len(standards))
		for _, b := range standards {
			moduleStuds[b.Label()] = ModuleStudsForWidth(b.WidthMM, catalog, *req.Moraletti)
		}
	}

	placement := &Placement{
		Standards:        standards,
		Customs:          customs,
		WallBounds:       BoundsOf(wall),
		WallAreaMM2:      wallArea,
		Metrics:          metrics,
		CoverageOverflow: coverageOverflow,
		ModuleStuds:      moduleStuds,
	}

	debug.Finished(metrics)
	return placement, nil
}

// filterApertures drops duplicate-outline apertures (area > 80% of wall)
// and noise apertures (area < 1000 mm²), per spec §3, and returns the
// total kept aperture area (as the union, so overlapping apertures are not
// double-counted).
func filterApertures(k *Kernel, apertures []Polygon, wallArea float64, cfg EngineConfig) ([]Polygon, float64, error) {
	var kept []Polygon
	for _, a := range apertures {
		area, err := k.Area(a)
		if err != nil {
			continue // DegenerateGeometry: not a valid polygon, skip silently
		}
		if area < cfg.ApertureMinAreaMM2 {
			continue
		}
		if area > cfg.ApertureMaxAreaRatio*wallArea {
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return kept, 0, nil
	}
	merged, err := k.Union(kept)
	if err != nil {
		return nil, 0, wrapFatal("pack: union apertures", err)
	}
	var total float64
	for _, m := range merged {
		a, err := k.Area(m)
		if err != nil {
			return nil, 0, err
		}
		total += a
	}
	return kept, total, nil
}

// packBidirectional runs the row iterator end to end, alternating direction
// per row unless req pins one uniformly (spec §4.4), and hands the final
// adaptive band (if any) to PackAdaptiveRow with the last full row's
// direction.
func packBidirectional(k *Kernel, wall Polygon, apertures []Polygon, catalog Catalog, starting StartingDirection, debug DebugSink, cfg EngineConfig) ([]StandardBlock, []CustomPiece, int, error) {
	var pinned Direction
	switch starting {
	case StartLeft:
		pinned = DirectionLTR
	case StartRight:
		pinned = DirectionRTL
	}

	widths := sortedWidthsDescending(catalog.Widths)
	it := NewRowIterator(k, wall, apertures, float64(catalog.Height), cfg)

	var standards []StandardBlock
	var customs []CustomPiece
	rowCount := 0
	lastDirection := DirectionLTR

	for {
		row, ok, err := it.Next()
		if err != nil {
			return nil, nil, 0, err
		}
		if !ok {
			break
		}
		rowCount++

		direction := DirectionForRow(row.Index, pinned)

		if row.Adaptive {
			s, c, err := PackAdaptiveRow(k, row, widths, lastDirection, cfg)
			if err != nil {
				return nil, nil, 0, err
			}
			standards = append(standards, s...)
			customs = append(customs, c...)
			debug.RowDecision(row.Index, row.YBottom, row.YTop, lastDirection == DirectionLTR, true)
			continue
		}

		rowCustoms := getCustomPieceSlice()
		for _, component := range row.Components {
			s, c, err := PackSegment(k, component, row.YBottom, row.Height(), widths, direction, row.Index, cfg)
			if err != nil {
				putCustomPieceSlice(rowCustoms)
				return nil, nil, 0, err
			}
			standards = append(standards, s...)
			*rowCustoms = append(*rowCustoms, c...)
			debug.SegmentPacking(row.Index, len(s), len(c))
		}
		customs = append(customs, (*rowCustoms)...)
		putCustomPieceSlice(rowCustoms)

		debug.RowDecision(row.Index, row.YBottom, row.YTop, direction == DirectionLTR, false)
		lastDirection = direction
	}

	return standards, customs, rowCount, nil
}

// runPostProcessing applies the five ordered passes of spec §4.6.
func runPostProcessing(k *Kernel, wall Polygon, catalog Catalog, standards []StandardBlock, customs []CustomPiece, cfg EngineConfig, debug DebugSink) ([]StandardBlock, []CustomPiece, error) {
	before := len(customs)
	standards, customs, err := ClipToWall(k, wall, standards, customs, cfg)
	if err != nil {
		return nil, nil, err
	}
	debug.PostProcessStep("clip_to_wall", before, len(customs))

	before = len(customs)
	customs, err = RowAwareMerge(k, customs, cfg)
	if err != nil {
		return nil, nil, err
	}
	debug.PostProcessStep("row_aware_merge", before, len(customs))

	before = len(customs)
	customs, err = SplitOutOfSpec(k, customs, catalog.maxWidth(), float64(catalog.Height), cfg)
	if err != nil {
		return nil, nil, err
	}
	debug.PostProcessStep("split_out_of_spec", before, len(customs))

	TagTypes(customs, catalog.maxWidth(), float64(catalog.Height), cfg)
	debug.PostProcessStep("tag_types", len(customs), len(customs))

	ChooseSourceBlocks(customs, catalog)
	debug.PostProcessStep("choose_source_blocks", len(customs), len(customs))

	return standards, customs, nil
}

// computeMetrics derives the summary metrics of spec §6 and the
// CoverageOverflow recoverable condition of spec §7: more than one
// smallest-catalog-width slice's worth of the wall (minus apertures) left
// uncovered.
func computeMetrics(k *Kernel, standards []StandardBlock, customs []CustomPiece, wallArea, apertureArea float64, catalog Catalog, rowCount, apertureCount int) (Metrics, bool, error) {
	var standardArea, customArea float64
	for _, b := range standards {
		standardArea += b.WidthMM * b.HeightMM
	}
	for _, c := range customs {
		a, err := k.Area(c.Geometry)
		if err != nil {
			return Metrics{}, false, err
		}
		customArea += a
	}

	packableArea := wallArea - apertureArea
	coveredArea := standardArea + customArea
	uncovered := packableArea - coveredArea

	widths := sortedWidthsDescending(catalog.Widths)
	smallestSliceArea := float64(widths[len(widths)-1]) * float64(catalog.Height)
	coverageOverflow := uncovered > smallestSliceArea
	if coverageOverflow {
		log.Warn().
			Float64("uncovered_mm2", uncovered).
			Float64("smallest_slice_mm2", smallestSliceArea).
			Msg("wallbuild: coverage overflow, packable area left uncovered beyond one smallest slice")
	}

	var efficiencyRatio float64
	if standardArea+customArea > 0 {
		efficiencyRatio = standardArea / (standardArea + customArea)
	}
	var wasteRatio float64
	if wallArea > 0 {
		wasteRatio = 1 - coveredArea/wallArea
	}

	return Metrics{
		StandardCount:   len(standards),
		CustomCount:     len(customs),
		RowCount:        rowCount,
		ApertureCount:   apertureCount,
		EfficiencyRatio: efficiencyRatio,
		WasteRatio:      wasteRatio,
	}, coverageOverflow, nil
}
