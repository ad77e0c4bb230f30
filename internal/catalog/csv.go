package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
)

// Column keys after normalisation: "Current Stock", "current_stock" and
// "currentStock" all map to "currentstock".
const (
	colID          = "id"
	colName        = "name"
	colStock       = "currentstock"
	colDailySales  = "averagedailysales"
	colLeadTime    = "supplierleadtime"
	colMinReorder  = "minimumreorderquantity"
	colCostPerUnit = "costperunit"
	colCriticality = "criticality"
)

var requiredColumns = []string{colName, colStock, colDailySales, colLeadTime, colMinReorder, colCostPerUnit}

// Row is a parsed catalogue line with its 1-based line number in the source file.
type Row struct {
	Line  int
	Input domain.ProductInput
}

// ReadCSV parses a product catalogue with a header row.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: catalogue is empty", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	m, err := newRowMapper(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		row, skip, err := m.mapRecord(line, record)
		if err != nil {
			return nil, err
		}
		if !skip {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

type rowMapper struct {
	cols map[string]int
}

func newRowMapper(header []string) (*rowMapper, error) {
	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[normalizeColumn(col)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column: %s", domain.ErrInvalidInput, col)
		}
	}

	return &rowMapper{cols: cols}, nil
}

// mapRecord converts one record. Blank lines are skipped.
func (m *rowMapper) mapRecord(line int, record []string) (Row, bool, error) {
	if isBlank(record) {
		return Row{}, true, nil
	}

	getValue := func(col string) string {
		if idx, ok := m.cols[col]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var parseErr error
	getFloat := func(col string) float64 {
		val := getValue(col)
		if val == "" || parseErr != nil {
			return 0
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			parseErr = fmt.Errorf("%w: line %d: %s %q is not a number", domain.ErrInvalidInput, line, col, val)
		}
		return f
	}

	input := domain.ProductInput{
		ID:                     getValue(colID),
		Name:                   getValue(colName),
		CurrentStock:           getFloat(colStock),
		AverageDailySales:      getFloat(colDailySales),
		SupplierLeadTime:       getFloat(colLeadTime),
		MinimumReorderQuantity: getFloat(colMinReorder),
		CostPerUnit:            getFloat(colCostPerUnit),
		Criticality:            getValue(colCriticality),
	}
	if parseErr != nil {
		return Row{}, false, parseErr
	}

	return Row{Line: line, Input: input}, false, nil
}

func normalizeColumn(col string) string {
	var b strings.Builder
	for _, r := range col {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
