package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "42", 42, true},
		{"decimal", "3.5", 3.5, true},
		{"padded", "  7 ", 7, true},
		{"ascii thousands separator", "1,234", 1234, true},
		{"fullwidth thousands separator", "1，234", 1234, true},
		{"negative", "-12.5", -12.5, true},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"textual nan", "NaN", 0, false},
		{"lowercase nan", "nan", 0, false},
		{"infinity", "Inf", 0, false},
		{"text", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	got, err := Describe([]string{"1", "2", "3", "4"})
	require.NoError(t, err)

	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 0, got.Skipped)
	assert.Equal(t, 2.5, got.Mean)
	assert.Equal(t, 1.2909944487358056, got.Std)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 4.0, got.Max)
	assert.Equal(t, []string{"1", "2", "3", "4"}, got.Preview)
}

func TestDescribeSkipsUnparseable(t *testing.T) {
	got, err := Describe([]string{"1", "abc", "3", "", "NaN"})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 2, got.Skipped, "only non-empty unparseable cells count")
	assert.Equal(t, 2.0, got.Mean)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 3.0, got.Max)
	assert.Equal(t, []string{"1", "abc", "3", "NaN"}, got.Preview,
		"preview keeps raw non-empty values, skipped included")
}

func TestDescribeIgnoresEmptyCells(t *testing.T) {
	// Ragged sheets are padded with empty cells at materialization; those
	// cells are not column data.
	got, err := Describe([]string{"1", "2", "3", "", "", ""})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 0, got.Skipped)
	assert.Equal(t, 2.0, got.Mean)
	assert.Equal(t, []string{"1", "2", "3"}, got.Preview)
}

func TestDescribeSingleValue(t *testing.T) {
	got, err := Describe([]string{"5"})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 5.0, got.Mean)
	assert.Equal(t, 0.0, got.Std, "sample std is zero for a single value")
}

func TestDescribeNoValidValues(t *testing.T) {
	_, err := Describe([]string{"abc", "", "nan"})
	assert.ErrorIs(t, err, ErrNoValidValues)

	_, err = Describe(nil)
	assert.ErrorIs(t, err, ErrNoValidValues)
}

func TestDescribePreviewLimit(t *testing.T) {
	values := make([]string, PreviewLimit+50)
	for i := range values {
		values[i] = "1"
	}
	got, err := Describe(values)
	require.NoError(t, err)
	assert.Len(t, got.Preview, PreviewLimit)
}
