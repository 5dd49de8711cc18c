// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallbuild

import (
	"io"

	"github.com/rs/zerolog"
)

// DebugSink receives structured tracing events from a Pack invocation
// (spec §9, "Debug tracing"). It is invoked synchronously and must be
// cheap when disabled; the zero value of any implementation backing a
// no-op sink is the default when the caller passes nil.
type DebugSink interface {
	// RowDecision reports one row iterator step.
	RowDecision(rowIndex int, yBottom, yTop float64, ltr, adaptive bool)
	// SegmentPacking reports one segment packer run over a single component.
	SegmentPacking(rowIndex, standardCount, customCount int)
	// PostProcessStep reports entry/exit counts for one of the five
	// ordered post-processing passes (§4.6).
	PostProcessStep(name string, customsBefore, customsAfter int)
	// Finished reports the final metrics of a completed Pack invocation.
	Finished(m Metrics)
}

// noopSink discards every event; used whenever the caller passes no sink.
type noopSink struct{}

func (noopSink) RowDecision(int, float64, float64, bool, bool) {}
func (noopSink) SegmentPacking(int, int, int)                  {}
func (noopSink) PostProcessStep(string, int, int)              {}
func (noopSink) Finished(Metrics)                              {}

// NewNoopSink returns a DebugSink that does nothing, for callers that want
// to pass a non-nil sink unconditionally.
func NewNoopSink() DebugSink { return noopSink{} }

// zerologSink backs DebugSink with structured, leveled logging, replacing
// the historical AlgorithmDebugger's print() calls with field-structured
// events (row_decision, segment_packing, post_process_step, finished).
type zerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink builds a DebugSink that writes to w at the given level.
func NewZerologSink(w io.Writer, level zerolog.Level) DebugSink {
	return zerologSink{logger: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func (s zerologSink) RowDecision(rowIndex int, yBottom, yTop float64, ltr, adaptive bool) {
	s.logger.Debug().
		Str("event", "row_decision").
		Int("row", rowIndex).
		Float64("y_bottom", yBottom).
		Float64("y_top", yTop).
		Bool("ltr", ltr).
		Bool("adaptive", adaptive).
		Msg("row packed")
}

func (s zerologSink) SegmentPacking(rowIndex, standardCount, customCount int) {
	s.logger.Debug().
		Str("event", "segment_packing").
		Int("row", rowIndex).
		Int("standards", standardCount).
		Int("customs", customCount).
		Msg("segment packed")
}

func (s zerologSink) PostProcessStep(name string, customsBefore, customsAfter int) {
	s.logger.Debug().
		Str("event", "post_process_step").
		Str("step", name).
		Int("customs_before", customsBefore).
		Int("customs_after", customsAfter).
		Msg("post-process step ran")
}

func (s zerologSink) Finished(m Metrics) {
	s.logger.Info().
		Str("event", "finished").
		Int("standard_count", m.StandardCount).
		Int("custom_count", m.CustomCount).
		Int("row_count", m.RowCount).
		Float64("efficiency_ratio", m.EfficiencyRatio).
		Float64("waste_ratio", m.WasteRatio).
		Msg("pack finished")
}
