package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonical gender labels used in yearly counts.
const (
	GenderMale   = "男"
	GenderFemale = "女"
)

// genderAliases folds the representations seen in source sheets into the
// two canonical labels. Input is upper-cased and trimmed before lookup.
var genderAliases = map[string]string{
	"M": GenderMale, "MALE": GenderMale, "男性": GenderMale, "1": GenderMale,
	"F": GenderFemale, "FEMALE": GenderFemale, "女性": GenderFemale, "2": GenderFemale,
}

// YearlyCounts holds per-year enrollment counts, optionally split by
// gender. All slices are index-aligned with Years (ascending).
type YearlyCounts struct {
	Years             []int     `json:"years"`
	TotalCounts       []int     `json:"total_counts"`
	MaleCounts        []int     `json:"male_counts,omitempty"`
	FemaleCounts      []int     `json:"female_counts,omitempty"`
	MalePercentages   []float64 `json:"male_percentages,omitempty"`
	FemalePercentages []float64 `json:"female_percentages,omitempty"`
	TotalStudents     int       `json:"total_students"`
	YearRange         string    `json:"year_range"`
	HasGender         bool      `json:"has_gender"`
}

// NormalizeGender maps a raw gender cell to 男 or 女, or returns the
// trimmed upper-cased input unchanged when it matches neither.
func NormalizeGender(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := genderAliases[v]; ok {
		return canonical
	}
	return v
}

// CountByYear tallies rows per numeric-coerced year. When genders is
// non-nil it must be index-aligned with years, and per-gender counts and
// percentages of each year's male+female total are included; values that
// normalize to neither canonical label count toward the year total only
// through that sum, matching the gendered tally.
func CountByYear(years []string, genders []string) *YearlyCounts {
	type tally struct{ male, female, total int }
	byYear := make(map[int]*tally)
	hasGender := genders != nil

	for i, raw := range years {
		f, ok := ParseNumber(raw)
		if !ok {
			continue
		}
		y := int(f)
		t := byYear[y]
		if t == nil {
			t = &tally{}
			byYear[y] = t
		}
		t.total++
		if hasGender && i < len(genders) {
			switch NormalizeGender(genders[i]) {
			case GenderMale:
				t.male++
			case GenderFemale:
				t.female++
			}
		}
	}

	sorted := make([]int, 0, len(byYear))
	for y := range byYear {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	out := &YearlyCounts{
		Years:     sorted,
		HasGender: hasGender,
	}
	if len(sorted) > 0 {
		out.YearRange = fmt.Sprintf("%d - %d", sorted[0], sorted[len(sorted)-1])
	}

	for _, y := range sorted {
		t := byYear[y]
		if hasGender {
			total := t.male + t.female
			out.MaleCounts = append(out.MaleCounts, t.male)
			out.FemaleCounts = append(out.FemaleCounts, t.female)
			out.TotalCounts = append(out.TotalCounts, total)
			if total > 0 {
				out.MalePercentages = append(out.MalePercentages, round1(float64(t.male)/float64(total)*100))
				out.FemalePercentages = append(out.FemalePercentages, round1(float64(t.female)/float64(total)*100))
			} else {
				out.MalePercentages = append(out.MalePercentages, 0)
				out.FemalePercentages = append(out.FemalePercentages, 0)
			}
			out.TotalStudents += total
		} else {
			out.TotalCounts = append(out.TotalCounts, t.total)
			out.TotalStudents += t.total
		}
	}
	return out
}

// itoaYears renders years for JSON payloads that expect string keys.
func itoaYears(years []int) []string {
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}
