package stats

import "sort"

// SubjectAverages holds per-year mean scores for a set of subject columns,
// index-aligned with Years (ascending). A nil entry means the year had no
// parseable value for that subject.
type SubjectAverages struct {
	Years    []int                 `json:"years"`
	Subjects []string              `json:"subjects"`
	Averages map[string][]*float64 `json:"data"`
}

// SubjectYearlyAverages computes each subject's mean score per year.
//
// rows carry the raw year in rows[i][0] followed by one cell per subject.
// Rows with a non-numeric year are dropped entirely; a non-numeric subject
// cell excludes only that cell from that subject's mean, not the row.
func SubjectYearlyAverages(subjects []string, rows [][]string) *SubjectAverages {
	type acc struct {
		sum   []float64
		count []int
	}
	byYear := make(map[int]*acc)

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		yf, ok := ParseNumber(row[0])
		if !ok {
			continue
		}
		year := int(yf)
		a := byYear[year]
		if a == nil {
			a = &acc{sum: make([]float64, len(subjects)), count: make([]int, len(subjects))}
			byYear[year] = a
		}
		for i := range subjects {
			if i+1 >= len(row) {
				break
			}
			if v, ok := ParseNumber(row[i+1]); ok {
				a.sum[i] += v
				a.count[i]++
			}
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := &SubjectAverages{
		Years:    years,
		Subjects: subjects,
		Averages: make(map[string][]*float64, len(subjects)),
	}
	for i, subject := range subjects {
		series := make([]*float64, len(years))
		for j, y := range years {
			a := byYear[y]
			if a.count[i] > 0 {
				mean := a.sum[i] / float64(a.count[i])
				series[j] = &mean
			}
		}
		out.Averages[subject] = series
	}
	return out
}
