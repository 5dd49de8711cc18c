package main

import (
	"encoding/json"
	"os"

	"github.com/Nic0Byte/wallbuild"
)

// wireDoc is the CLI-only JSON envelope standing in for the out-of-scope
// DWG/DXF/SVG parser (spec §1, §6): a wall ring plus aperture rings, each
// a flat [x, y] coordinate list.
type wireDoc struct {
	Wall      [][2]float64   `json:"wall"`
	Holes     [][][2]float64 `json:"holes,omitempty"`
	Apertures [][][2]float64 `json:"apertures,omitempty"`
}

func loadWireDoc(path string) (*wireDoc, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc wireDoc
	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *wireDoc) wall() wallbuild.Polygon {
	rings := [][]wallbuild.Point{ringOf(d.Wall)}
	for _, hole := range d.Holes {
		rings = append(rings, ringOf(hole))
	}
	return wallbuild.Polygon{Rings: rings}
}

func (d *wireDoc) apertureList() []wallbuild.Polygon {
	out := make([]wallbuild.Polygon, len(d.Apertures))
	for i, ring := range d.Apertures {
		out[i] = wallbuild.Polygon{Rings: [][]wallbuild.Point{ringOf(ring)}}
	}
	return out
}

func ringOf(coords [][2]float64) []wallbuild.Point {
	pts := make([]wallbuild.Point, len(coords))
	for i, c := range coords {
		pts[i] = wallbuild.Point{X: c[0], Y: c[1]}
	}
	return pts
}

// wireGeometry renders a Polygon as GeoJSON, per spec §6's wire format.
type wireGeometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

func toWireGeometry(p wallbuild.Polygon) wireGeometry {
	coords := make([][][2]float64, len(p.Rings))
	for i, ring := range p.Rings {
		coords[i] = make([][2]float64, len(ring))
		for j, pt := range ring {
			coords[i][j] = [2]float64{pt.X, pt.Y}
		}
	}
	return wireGeometry{Type: "Polygon", Coordinates: coords}
}

type wireStandard struct {
	Kind     string  `json:"kind"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Category string  `json:"category"`
	Number   int     `json:"number"`
}

type wireCustom struct {
	Kind             string       `json:"kind"`
	WidthMM          float64      `json:"width_mm"`
	HeightMM         float64      `json:"height_mm"`
	X                float64      `json:"x"`
	Y                float64      `json:"y"`
	Geometry         wireGeometry `json:"geometry"`
	Ctype            string       `json:"ctype"`
	SourceBlockWidth int          `json:"source_block_width"`
	WasteMM          float64      `json:"waste_mm"`
	Category         string       `json:"category"`
	Number           int          `json:"number"`
}

type wireMetrics struct {
	StandardCount   int     `json:"standard_count"`
	CustomCount     int     `json:"custom_count"`
	EfficiencyRatio float64 `json:"efficiency_ratio"`
	WasteRatio      float64 `json:"waste_ratio"`
}

type wirePlacement struct {
	Standards        []wireStandard `json:"standards"`
	Customs          []wireCustom   `json:"customs"`
	WallBounds       [4]float64     `json:"wall_bounds"`
	WallAreaMM2      float64        `json:"wall_area_mm2"`
	Metrics          wireMetrics    `json:"metrics"`
	Empty            bool           `json:"empty,omitempty"`
	CoverageOverflow bool           `json:"coverage_overflow,omitempty"`
}

func toWirePlacement(p *wallbuild.Placement) wirePlacement {
	standards := make([]wireStandard, len(p.Standards))
	for i, b := range p.Standards {
		standards[i] = wireStandard{
			Kind: "std", WidthMM: b.WidthMM, HeightMM: b.HeightMM,
			X: b.X, Y: b.Y, Category: b.Category, Number: b.Number,
		}
	}
	customs := make([]wireCustom, len(p.Customs))
	for i, c := range p.Customs {
		customs[i] = wireCustom{
			Kind: "custom", WidthMM: c.WidthMM, HeightMM: c.HeightMM,
			X: c.X, Y: c.Y, Geometry: toWireGeometry(c.Geometry),
			Ctype: c.Ctype.String(), SourceBlockWidth: c.SourceBlockWidth,
			WasteMM: c.WasteMM, Category: c.Category, Number: c.Number,
		}
	}
	return wirePlacement{
		Standards:   standards,
		Customs:     customs,
		WallBounds:  [4]float64{p.WallBounds.MinX, p.WallBounds.MinY, p.WallBounds.MaxX, p.WallBounds.MaxY},
		WallAreaMM2: p.WallAreaMM2,
		Metrics: wireMetrics{
			StandardCount:   p.Metrics.StandardCount,
			CustomCount:     p.Metrics.CustomCount,
			EfficiencyRatio: p.Metrics.EfficiencyRatio,
			WasteRatio:      p.Metrics.WasteRatio,
		},
		Empty:            p.Empty,
		CoverageOverflow: p.CoverageOverflow,
	}
}
