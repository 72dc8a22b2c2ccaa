package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankSchools(t *testing.T) {
	names := []string{
		"建國中學", "建國中學", "建國中學",
		"北一女中", "北一女中",
		"師大附中",
		"", "未知", "nan",
	}

	got := RankSchools(names, nil)

	assert.Equal(t, 6, got.TotalRows, "placeholders are dropped")
	assert.Equal(t, 3, got.TotalSchools)
	require.Len(t, got.Schools, 3)

	assert.Equal(t, "建國中學", got.Schools[0].Name)
	assert.Equal(t, 3, got.Schools[0].Count)
	assert.Equal(t, 50.0, got.Schools[0].Percentage)

	assert.Equal(t, "北一女中", got.Schools[1].Name)
	assert.Equal(t, 33.33, got.Schools[1].Percentage)

	assert.Equal(t, "師大附中", got.Schools[2].Name)
}

func TestRankSchoolsLimit(t *testing.T) {
	var names []string
	for i := 0; i < TopSchoolsLimit+10; i++ {
		// Repeat each name i+1 times so counts are distinct.
		for j := 0; j <= i; j++ {
			names = append(names, fmt.Sprintf("學校%02d", i))
		}
	}

	got := RankSchools(names, nil)

	assert.Len(t, got.Schools, TopSchoolsLimit)
	assert.Equal(t, TopSchoolsLimit+10, got.TotalSchools)
	assert.Equal(t, fmt.Sprintf("學校%02d", TopSchoolsLimit+9), got.Schools[0].Name)
}

func TestRankSchoolsTiesBreakByName(t *testing.T) {
	got := RankSchools([]string{"乙校", "甲校", "乙校", "甲校"}, nil)

	require.Len(t, got.Schools, 2)
	assert.Equal(t, got.Schools[0].Count, got.Schools[1].Count)
	assert.True(t, got.Schools[0].Name < got.Schools[1].Name)
}

func TestRankSchoolsPerYear(t *testing.T) {
	names := []string{"建國中學", "建國中學", "北一女中", "建國中學"}
	years := []string{"110", "111", "110", "年度不明"}

	got := RankSchools(names, years)

	assert.Equal(t, []string{"110", "111"}, got.Years)
	require.Len(t, got.Schools, 2)
	assert.Equal(t, "建國中學", got.Schools[0].Name)
	assert.Equal(t, []int{1, 1}, got.Schools[0].ByYear, "rows with unparseable years count overall but not per year")
	assert.Equal(t, []int{1, 0}, got.Schools[1].ByYear)
}

func TestRankSchoolsEmpty(t *testing.T) {
	got := RankSchools(nil, nil)
	assert.Empty(t, got.Schools)
	assert.Zero(t, got.TotalRows)
}
