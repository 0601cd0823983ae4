package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an XLSX workbook against the mapping.
// Row one is the header; rows are processed with the same per-row error
// isolation as CSV.
func ParseXLSX(data []byte, mapping Mapping) (*Result, error) {
	if err := mapping.validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrHeaderMissing
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrHeaderMissing
	}

	cols, err := resolveColumns(rows[0], mapping)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, record := range rows[1:] {
		if isBlankRow(record) {
			continue
		}
		result.TotalRows++
		rowNum := i + 2
		if c, rerr := processRow(record, cols, rowNum); rerr != nil {
			result.Errors = append(result.Errors, *rerr)
		} else {
			result.Candidates = append(result.Candidates, c)
		}
	}
	return result, nil
}
