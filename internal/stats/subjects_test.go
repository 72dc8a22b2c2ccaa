package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectYearlyAverages(t *testing.T) {
	subjects := []string{"國文", "數學"}
	rows := [][]string{
		{"110", "60", "80"},
		{"110", "70", "90"},
		{"111", "50", "abc"},
		{"111", "", "100"},
	}

	got := SubjectYearlyAverages(subjects, rows)

	assert.Equal(t, []int{110, 111}, got.Years)
	assert.Equal(t, subjects, got.Subjects)

	chinese := got.Averages["國文"]
	require.Len(t, chinese, 2)
	require.NotNil(t, chinese[0])
	assert.Equal(t, 65.0, *chinese[0])
	require.NotNil(t, chinese[1], "one valid value still yields a mean")
	assert.Equal(t, 50.0, *chinese[1])

	math := got.Averages["數學"]
	require.NotNil(t, math[0])
	assert.Equal(t, 85.0, *math[0])
	require.NotNil(t, math[1])
	assert.Equal(t, 100.0, *math[1])
}

func TestSubjectYearlyAveragesNilWhenNoValues(t *testing.T) {
	got := SubjectYearlyAverages([]string{"英文"}, [][]string{
		{"110", "abc"},
		{"110", ""},
		{"111", "88"},
	})

	require.Len(t, got.Averages["英文"], 2)
	assert.Nil(t, got.Averages["英文"][0], "year with no parseable values stays nil")
	require.NotNil(t, got.Averages["英文"][1])
	assert.Equal(t, 88.0, *got.Averages["英文"][1])
}

func TestSubjectYearlyAveragesDropsNonNumericYears(t *testing.T) {
	got := SubjectYearlyAverages([]string{"國文"}, [][]string{
		{"110", "60"},
		{"年度", "99"},
		{"", "99"},
	})

	assert.Equal(t, []int{110}, got.Years)
	require.NotNil(t, got.Averages["國文"][0])
	assert.Equal(t, 60.0, *got.Averages["國文"][0])
}

func TestSubjectYearlyAveragesShortRows(t *testing.T) {
	got := SubjectYearlyAverages([]string{"國文", "數學"}, [][]string{
		{"110", "60"},
	})

	require.NotNil(t, got.Averages["國文"][0])
	assert.Nil(t, got.Averages["數學"][0], "missing trailing cells are not values")
}
