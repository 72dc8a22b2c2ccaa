package stats

import (
	"sort"
	"strconv"

	"sheetsight/internal/classify"
)

// Pair is one row's (group key, category value) extraction, typically an
// enrollment year and a free-text categorical cell.
type Pair struct {
	Key   string
	Value string
}

// CategorySeries holds one taxonomy label's per-year counts and
// percentages, index-aligned with CrossTab.Years.
type CategorySeries struct {
	Counts      []int     `json:"counts"`
	Percentages []float64 `json:"percentages"`
}

// Summary names the group with the highest and lowest total. Ties go to
// the first occurrence in ascending year order.
type Summary struct {
	PeakYear  string `json:"peak_year"`
	PeakCount int    `json:"peak_count"`
	LowYear   string `json:"low_year"`
	LowCount  int    `json:"low_count"`
}

// CrossTab is a year x category count table with per-cell percentages of
// the year total.
type CrossTab struct {
	Years      []string                   `json:"years"`
	Categories []string                   `json:"categories"`
	Data       map[string]*CategorySeries `json:"data"`
	YearTotals []int                      `json:"year_totals"`
	TotalRows  int                        `json:"total_rows"`
	Summary    Summary                    `json:"summary"`
}

// Tabulate groups pairs by numeric-coerced key and by the classifier's
// output label. Rows whose key does not parse as a number are dropped.
//
// Every label in the classifier's declared taxonomy appears for every
// year, zero-filled where nothing matched, and label order follows the
// taxonomy declaration. Percentages are of the year's total, rounded to
// one decimal place, 0.0 when the year total is zero.
func Tabulate(pairs []Pair, labeler classify.Labeler) *CrossTab {
	counts := make(map[int]map[string]int)
	total := 0
	for _, p := range pairs {
		f, ok := ParseNumber(p.Key)
		if !ok {
			continue
		}
		year := int(f)
		cell := counts[year]
		if cell == nil {
			cell = make(map[string]int)
			counts[year] = cell
		}
		cell[labeler.Classify(p.Value)]++
		total++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	taxonomy := labeler.Taxonomy()
	ct := &CrossTab{
		Years:      make([]string, len(years)),
		Categories: taxonomy,
		Data:       make(map[string]*CategorySeries, len(taxonomy)),
		YearTotals: make([]int, len(years)),
		TotalRows:  total,
	}
	for _, label := range taxonomy {
		ct.Data[label] = &CategorySeries{
			Counts:      make([]int, len(years)),
			Percentages: make([]float64, len(years)),
		}
	}

	for i, y := range years {
		ct.Years[i] = strconv.Itoa(y)
		yearTotal := 0
		for _, n := range counts[y] {
			yearTotal += n
		}
		ct.YearTotals[i] = yearTotal

		for _, label := range taxonomy {
			n := counts[y][label]
			series := ct.Data[label]
			series.Counts[i] = n
			if yearTotal > 0 {
				series.Percentages[i] = round1(float64(n) / float64(yearTotal) * 100)
			}
		}
	}

	ct.Summary = summarize(ct.Years, ct.YearTotals)
	return ct
}

// summarize finds the peak and low totals, first occurrence winning ties.
func summarize(years []string, totals []int) Summary {
	var s Summary
	for i, total := range totals {
		if i == 0 || total > s.PeakCount {
			s.PeakYear = years[i]
			s.PeakCount = total
		}
		if i == 0 || total < s.LowCount {
			s.LowYear = years[i]
			s.LowCount = total
		}
	}
	return s
}
