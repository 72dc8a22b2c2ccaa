package stats

import (
	"sort"
	"strings"
)

// TopSchoolsLimit is how many schools a ranking returns at most.
const TopSchoolsLimit = 20

// SchoolCount is one ranked school with its share of all counted rows.
type SchoolCount struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	ByYear     []int   `json:"by_year,omitempty"`
}

// SchoolRanking lists the most frequent school names, optionally broken
// down per year when year keys were supplied.
type SchoolRanking struct {
	Schools      []SchoolCount `json:"schools"`
	Years        []string      `json:"years,omitempty"`
	TotalRows    int           `json:"total_rows"`
	TotalSchools int           `json:"total_schools"`
}

// placeholderSchool reports names that carry no information and are
// dropped before counting.
func placeholderSchool(name string) bool {
	switch name {
	case "", "未知", "nan", "NaN":
		return true
	}
	return false
}

// RankSchools counts occurrences of each trimmed school name and returns
// the top TopSchoolsLimit by count, name ascending on ties so equal counts
// rank deterministically. Percentages are of all counted rows, rounded to
// two decimal places. When years is index-aligned and non-nil, each ranked
// school also carries per-year counts for the numerically ascending set of
// parseable years.
func RankSchools(names []string, years []string) *SchoolRanking {
	counts := make(map[string]int)
	perYear := make(map[string]map[int]int)
	yearSet := make(map[int]bool)
	withYears := years != nil
	total := 0

	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if placeholderSchool(name) {
			continue
		}
		counts[name]++
		total++
		if withYears && i < len(years) {
			if f, ok := ParseNumber(years[i]); ok {
				y := int(f)
				yearSet[y] = true
				cell := perYear[name]
				if cell == nil {
					cell = make(map[int]int)
					perYear[name] = cell
				}
				cell[y]++
			}
		}
	}

	ranked := make([]SchoolCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, SchoolCount{Name: name, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	out := &SchoolRanking{
		TotalRows:    total,
		TotalSchools: len(counts),
	}
	if len(ranked) > TopSchoolsLimit {
		ranked = ranked[:TopSchoolsLimit]
	}

	var sortedYears []int
	if withYears {
		for y := range yearSet {
			sortedYears = append(sortedYears, y)
		}
		sort.Ints(sortedYears)
		out.Years = itoaYears(sortedYears)
	}

	for _, sc := range ranked {
		if total > 0 {
			sc.Percentage = round2(float64(sc.Count) / float64(total) * 100)
		}
		if withYears {
			sc.ByYear = make([]int, len(sortedYears))
			for i, y := range sortedYears {
				sc.ByYear[i] = perYear[sc.Name][y]
			}
		}
		out.Schools = append(out.Schools, sc)
	}
	return out
}
