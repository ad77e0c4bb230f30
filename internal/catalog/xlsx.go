package catalog

import (
	"fmt"
	"io"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a spreadsheet catalogue with the same
// header rules as ReadCSV.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx has no sheets", domain.ErrInvalidInput)
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var (
		m      *rowMapper
		result []Row
		line   int
	)
	for rows.Next() {
		line++
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d from sheet %s: %w", line, sheet, err)
		}

		if m == nil {
			if m, err = newRowMapper(record); err != nil {
				return nil, err
			}
			continue
		}

		row, skip, err := m.mapRecord(line, record)
		if err != nil {
			return nil, err
		}
		if !skip {
			result = append(result, row)
		}
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in sheet %s: %w", sheet, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: catalogue is empty", domain.ErrInvalidInput)
	}

	return result, nil
}
