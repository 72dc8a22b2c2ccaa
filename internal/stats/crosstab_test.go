package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsight/internal/classify"
)

func TestTabulate(t *testing.T) {
	pairs := []Pair{
		{"110", "申請入學"},
		{"110", "申請入學"},
		{"110", "繁星推薦"},
		{"111", "申請入學"},
		{"111", "特殊選才"},
		{"not a year", "申請入學"},
	}

	ct := Tabulate(pairs, classify.Admission)

	assert.Equal(t, []string{"110", "111"}, ct.Years)
	assert.Equal(t, classify.Admission.Taxonomy(), ct.Categories)
	assert.Equal(t, []int{3, 2}, ct.YearTotals)
	assert.Equal(t, 5, ct.TotalRows, "non-numeric year keys are dropped")

	require.Contains(t, ct.Data, "申請入學")
	assert.Equal(t, []int{2, 1}, ct.Data["申請入學"].Counts)
	assert.Equal(t, []float64{66.7, 50.0}, ct.Data["申請入學"].Percentages)

	assert.Equal(t, []int{0, 1}, ct.Data[classify.FallbackLabel].Counts)

	for _, label := range ct.Categories {
		require.Contains(t, ct.Data, label, "every taxonomy label is zero-filled")
		assert.Len(t, ct.Data[label].Counts, len(ct.Years))
	}
}

func TestTabulateYearTotalsMatchCellSums(t *testing.T) {
	pairs := []Pair{
		{"109", "國立新竹高級中學"},
		{"109", "私立薇閣高級中學"},
		{"110", "台北市立建國高級中學"},
		{"110", "不明來源"},
		{"110", "海外聯招"},
	}

	ct := Tabulate(pairs, classify.SchoolType)

	for i := range ct.Years {
		sum := 0
		for _, label := range ct.Categories {
			sum += ct.Data[label].Counts[i]
		}
		assert.Equal(t, ct.YearTotals[i], sum, "year %s", ct.Years[i])
	}

	grand := 0
	for _, n := range ct.YearTotals {
		grand += n
	}
	assert.Equal(t, ct.TotalRows, grand)
}

func TestTabulatePercentagesSumToHundred(t *testing.T) {
	pairs := []Pair{
		{"110", "台北市"},
		{"110", "台中市"},
		{"110", "高雄市"},
		{"110", "花蓮縣"},
	}

	ct := Tabulate(pairs, classify.Region)

	sum := 0.0
	for _, label := range ct.Categories {
		sum += ct.Data[label].Percentages[0]
	}
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestTabulateYearsAscendNumerically(t *testing.T) {
	pairs := []Pair{
		{"111", "申請入學"},
		{"99", "申請入學"},
		{"110", "申請入學"},
	}

	ct := Tabulate(pairs, classify.Admission)
	assert.Equal(t, []string{"99", "110", "111"}, ct.Years, "numeric order, not lexicographic")
}

func TestTabulateSummary(t *testing.T) {
	pairs := []Pair{
		{"109", "申請入學"},
		{"110", "申請入學"},
		{"110", "繁星推薦"},
		{"111", "申請入學"},
	}

	ct := Tabulate(pairs, classify.Admission)
	assert.Equal(t, "110", ct.Summary.PeakYear)
	assert.Equal(t, 2, ct.Summary.PeakCount)
	assert.Equal(t, "109", ct.Summary.LowYear, "tie between 109 and 111 goes to the earlier year")
	assert.Equal(t, 1, ct.Summary.LowCount)
}

func TestTabulateEmpty(t *testing.T) {
	ct := Tabulate(nil, classify.Admission)
	assert.Empty(t, ct.Years)
	assert.Zero(t, ct.TotalRows)
	assert.Equal(t, classify.Admission.Taxonomy(), ct.Categories)
}
