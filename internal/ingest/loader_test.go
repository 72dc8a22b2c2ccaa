package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateAtBlankRow(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{"no blank row", [][]string{{"a"}, {"b"}}, 2},
		{"blank in middle", [][]string{{"a"}, {"", ""}, {"b"}}, 1},
		{"whitespace counts as blank", [][]string{{"a"}, {"  ", "\t"}}, 1},
		{"partially blank survives", [][]string{{"a", ""}, {"", "b"}}, 2},
		{"blank first row", [][]string{{""}, {"a"}}, 0},
		{"empty input", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, TruncateAtBlankRow(tt.rows), tt.want)
		})
	}
}

func TestNewSource(t *testing.T) {
	src := NewSource(
		[]string{"姓名", "", " 分數 "},
		[][]string{
			{"甲", "x", "90", "overflow"},
			{"乙"},
			{"", "", ""},
			{"footer", "should", "vanish"},
		},
	)

	assert.Equal(t, []string{"姓名", "column_2", "分數"}, src.Columns)
	require.Len(t, src.Rows, 2, "truncated at the blank row")
	assert.Equal(t, []string{"甲", "x", "90"}, src.Rows[0], "overlong rows are clipped")
	assert.Equal(t, []string{"乙", "", ""}, src.Rows[1], "short rows are padded")
}

func TestNewSourceEmptyData(t *testing.T) {
	src := NewSource([]string{"a", "b"}, nil)
	assert.Equal(t, []string{"a", "b"}, src.Columns)
	assert.Empty(t, src.Rows)
}
