// Package stats computes grouped statistics over text-typed dataset
// columns.
//
// Every column in a materialized dataset is stored as text, so each
// function here starts from raw string values and performs its own numeric
// coercion. Coercion failures are per-value: they increment a skipped
// counter or exclude the single cell, and never fail the whole request
// unless nothing at all parses. All outputs are deterministic: group keys
// ascend (numerically when they parse as numbers) and category labels
// follow the classifier's declared taxonomy order.
package stats

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNoValidValues is returned when a column contains no parseable numbers.
var ErrNoValidValues = errors.New("no numeric values in column")

// PreviewLimit caps the raw-value preview returned with column statistics.
const PreviewLimit = 100

// ColumnStats describes the numeric distribution of a single column.
type ColumnStats struct {
	Count   int      `json:"count"`
	Skipped int      `json:"skipped"`
	Mean    float64  `json:"mean"`
	Std     float64  `json:"std"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Preview []string `json:"preview"`
}

// ParseNumber coerces a cell to a float. It strips ASCII and full-width
// thousands separators and rejects empty cells, textual NaN, and
// non-finite results.
func ParseNumber(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	v = strings.ReplaceAll(v, "，", "")
	v = strings.ReplaceAll(v, ",", "")
	if v == "" || strings.EqualFold(v, "nan") {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Describe computes count, mean, sample standard deviation (ddof=1, zero
// when count <= 1), min and max over the parseable values, counting the
// rest as skipped. Empty cells are not column data (the materializer pads
// ragged rows with empty strings) and are neither skipped nor previewed.
// The preview holds the first PreviewLimit non-empty raw values. Returns
// ErrNoValidValues when nothing parses.
func Describe(values []string) (*ColumnStats, error) {
	var present []string
	for _, v := range values {
		if v != "" {
			present = append(present, v)
		}
	}

	var nums []float64
	skipped := 0
	for _, v := range present {
		f, ok := ParseNumber(v)
		if !ok {
			skipped++
			continue
		}
		nums = append(nums, f)
	}

	if len(nums) == 0 {
		return nil, ErrNoValidValues
	}

	sum := 0.0
	min, max := nums[0], nums[0]
	for _, f := range nums {
		sum += f
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	mean := sum / float64(len(nums))

	std := 0.0
	if len(nums) > 1 {
		var ss float64
		for _, f := range nums {
			d := f - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(len(nums)-1))
	}

	preview := present
	if len(preview) > PreviewLimit {
		preview = preview[:PreviewLimit]
	}

	return &ColumnStats{
		Count:   len(nums),
		Skipped: skipped,
		Mean:    mean,
		Std:     std,
		Min:     min,
		Max:     max,
		Preview: preview,
	}, nil
}

// round1 rounds to one decimal place; percentages in cross-tabulations use
// this fixed precision.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// round2 rounds to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
