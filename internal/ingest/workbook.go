package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open spreadsheet file. Callers must Close it.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook parses an xlsx stream.
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// SheetNames lists the workbook's sheets in file order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ReadSheet extracts the named sheet as a Source. The first row is the
// header; a sheet without one yields an empty Source with no columns.
func (w *Workbook) ReadSheet(name string) (*Source, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return &Source{}, nil
	}
	return NewSource(rows[0], rows[1:]), nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
