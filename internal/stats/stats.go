// Package stats summarizes displayed particle positions per axis for the
// info and stats views: range, moments and a fixed-bin histogram.
package stats

import (
	"sort"

	"github.com/san-kum/cgview/internal/pbc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// AxisSummary describes the spread of positions along one axis.
type AxisSummary struct {
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// Component extracts one coordinate from each position.
func Component(positions []r3.Vec, axis pbc.Axis) []float64 {
	vals := make([]float64, len(positions))
	for i, p := range positions {
		switch axis {
		case pbc.AxisX:
			vals[i] = p.X
		case pbc.AxisY:
			vals[i] = p.Y
		case pbc.AxisZ:
			vals[i] = p.Z
		}
	}
	return vals
}

// Summarize computes min/max/mean/stddev. Empty input yields a zero value.
func Summarize(vals []float64) AxisSummary {
	if len(vals) == 0 {
		return AxisSummary{}
	}
	s := AxisSummary{
		Min:  floats.Min(vals),
		Max:  floats.Max(vals),
		Mean: stat.Mean(vals, nil),
	}
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	return s
}

// Histogram bins vals into bins equal-width buckets spanning [lo, hi] and
// returns the per-bucket counts. A degenerate span puts everything in the
// first bucket.
func Histogram(vals []float64, lo, hi float64, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	counts := make([]float64, bins)
	if len(vals) == 0 {
		return counts
	}
	if hi <= lo {
		counts[0] = float64(len(vals))
		return counts
	}

	// stat.Histogram requires sorted input inside the divider range, so
	// out-of-range values are excluded here rather than panicking there.
	sorted := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v >= lo && v <= hi {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// Values landing exactly on the last divider would fall out; nudge it
	// so the upper bound is inclusive.
	dividers[bins] = hi + (hi-lo)*1e-12

	return stat.Histogram(counts, dividers, sorted, nil)
}
