package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			vals := make([]interface{}, len(row))
			for j, v := range row {
				vals[j] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &vals))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestOpenWorkbook(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		"學生": {
			{"姓名", "年度", "分數"},
			{"甲", "110", "90"},
			{"乙", "111", "85"},
		},
	})

	wb, err := OpenWorkbook(buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"學生"}, wb.SheetNames())

	src, err := wb.ReadSheet("學生")
	require.NoError(t, err)
	assert.Equal(t, []string{"姓名", "年度", "分數"}, src.Columns)
	require.Len(t, src.Rows, 2)
	assert.Equal(t, []string{"甲", "110", "90"}, src.Rows[0])
}

func TestReadSheetTruncates(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		"Data": {
			{"col"},
			{"keep"},
			{""},
			{"drop"},
		},
	})

	wb, err := OpenWorkbook(buf)
	require.NoError(t, err)
	defer wb.Close()

	src, err := wb.ReadSheet("Data")
	require.NoError(t, err)
	require.Len(t, src.Rows, 1)
	assert.Equal(t, "keep", src.Rows[0][0])
}

func TestReadSheetUnknown(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		"Data": {{"col"}},
	})

	wb, err := OpenWorkbook(buf)
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.ReadSheet("missing")
	assert.Error(t, err)
}

func TestOpenWorkbookGarbage(t *testing.T) {
	_, err := OpenWorkbook(bytes.NewBufferString("not an xlsx"))
	assert.Error(t, err)
}
