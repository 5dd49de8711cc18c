package wallbuild

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// EngineConfig collects the tolerances that were module-level constants in
// the historical implementation (AREA_EPS, MICRO_REST_MM, SCARTO_CUSTOM_MM,
// SNAP_MM) so that two concurrent Pack invocations never share mutable
// global state (spec §9, "Global state").
type EngineConfig struct {
	// AreaEPS is the minimum polygon area (mm²) treated as non-degenerate.
	AreaEPS float64 `yaml:"area_eps_mm2"`
	// CoordEPS is the coordinate-comparison tolerance (mm).
	CoordEPS float64 `yaml:"coord_eps_mm"`
	// MicroRestMM is the minimum leftover span (mm) worth emitting as a
	// trailing custom piece instead of being dropped.
	MicroRestMM float64 `yaml:"micro_rest_mm"`
	// ScartoCustomMM is the clustering/out-of-spec tolerance (mm) used by
	// the post-processors and grouping engine.
	ScartoCustomMM float64 `yaml:"scarto_custom_mm"`
	// SnapMM is the coordinate snap grid (mm).
	SnapMM float64 `yaml:"snap_mm"`
	// MitreLimit bounds the offset kernel's mitre joins.
	MitreLimit float64 `yaml:"mitre_limit"`
	// ApertureMinAreaMM2 / ApertureMaxAreaRatio filter out noise/duplicate
	// apertures, per spec §3.
	ApertureMinAreaMM2   float64 `yaml:"aperture_min_area_mm2"`
	ApertureMaxAreaRatio float64 `yaml:"aperture_max_area_ratio"`
	// FullBlockCoverageRatio is the 0.95 threshold used by the segment
	// packer to decide standard-vs-custom (spec §4.4 step 4).
	FullBlockCoverageRatio float64 `yaml:"full_block_coverage_ratio"`
	// AdaptiveBandMinMM is the minimum leftover band height that still
	// earns an adaptive row (spec §4.3).
	AdaptiveBandMinMM float64 `yaml:"adaptive_band_min_mm"`
}

// DefaultEngineConfig returns the historical defaults named in spec §9.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		AreaEPS:                1e-2,
		CoordEPS:               1e-3,
		MicroRestMM:            5,
		ScartoCustomMM:         5,
		SnapMM:                 1,
		MitreLimit:             3.0,
		ApertureMinAreaMM2:     1000,
		ApertureMaxAreaRatio:   0.8,
		FullBlockCoverageRatio: 0.95,
		AdaptiveBandMinMM:      150,
	}
}

// Catalog describes the standard block sizes available to the packer:
// widths strictly decreasing and positive, a single height, and a
// width→letter mapping for grouping.
type Catalog struct {
	Widths       []int          `yaml:"widths"`
	Height       int            `yaml:"height"`
	SizeToLetter map[int]string `yaml:"size_to_letter"`
}

// DefaultCatalog returns the historical three-width catalog
// ({1239, 826, 413} mm, height 495mm).
func DefaultCatalog() Catalog {
	return Catalog{
		Widths: []int{1239, 826, 413},
		Height: 495,
		SizeToLetter: map[int]string{
			1239: "A",
			826:  "B",
			413:  "C",
		},
	}
}

// Validate checks the catalog constraints from spec §6: widths strictly
// decreasing and positive, height positive. Returns ErrInvalidCatalog
// wrapped with the offending detail on failure.
func (c Catalog) Validate() error {
	if c.Height <= 0 {
		return wrapFatal("validate catalog", fmt.Errorf("%w: height %d must be positive", ErrInvalidCatalog, c.Height))
	}
	if len(c.Widths) == 0 {
		return wrapFatal("validate catalog", fmt.Errorf("%w: no widths configured", ErrInvalidCatalog))
	}
	for i, w := range c.Widths {
		if w <= 0 {
			return wrapFatal("validate catalog", fmt.Errorf("%w: width %d must be positive", ErrInvalidCatalog, w))
		}
		if i > 0 && w >= c.Widths[i-1] {
			return wrapFatal("validate catalog", fmt.Errorf("%w: widths must be strictly decreasing, got %v", ErrInvalidCatalog, c.Widths))
		}
	}
	return nil
}

// sortedDescending returns a copy of Widths sorted largest-first (the
// catalog is documented as already-sorted, but callers that build a
// Catalog by hand should not have to remember the order).
func (c Catalog) sortedDescending() []int {
	out := append([]int(nil), c.Widths...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// maxWidth returns the largest catalog width.
func (c Catalog) maxWidth() int {
	widths := c.sortedDescending()
	return widths[0]
}

// MoralettiConfig constrains block widths by internal-stud spacing for the
// small/residential variant (spec §4.7, glossary "Moraletti"). It is
// required iff PackRequest.Algorithm == AlgorithmSmall.
type MoralettiConfig struct {
	ThicknessMM    float64 `yaml:"thickness_mm"`
	HeightMM       float64 `yaml:"height_mm"`
	SpacingMM      float64 `yaml:"spacing_mm"`
	MaxCountLarge  int     `yaml:"max_count_large"`
	MaxCountMedium int     `yaml:"max_count_medium"`
	MaxCountSmall  int     `yaml:"max_count_small"`
}

// DefaultMoralettiConfig returns the historical defaults from
// test_moraletti_logic.py.
func DefaultMoralettiConfig() MoralettiConfig {
	return MoralettiConfig{
		ThicknessMM:    58,
		HeightMM:       495,
		SpacingMM:      420,
		MaxCountLarge:  3,
		MaxCountMedium: 2,
		MaxCountSmall:  1,
	}
}

// LoadEngineConfig reads an EngineConfig from a YAML file, starting from
// DefaultEngineConfig so unspecified fields keep their historical values.
func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load engine config: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("load engine config: parse yaml: %w", err)
	}
	return cfg, nil
}

// LoadCatalog reads a Catalog from a YAML file, starting from DefaultCatalog.
func LoadCatalog(path string) (Catalog, error) {
	cat := DefaultCatalog()
	bs, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("load catalog: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cat); err != nil {
		return cat, fmt.Errorf("load catalog: parse yaml: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return cat, err
	}
	return cat, nil
}
