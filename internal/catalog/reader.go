package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
)

// IsSupported reports whether name has a catalogue extension (.csv or .xlsx).
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Read parses r according to the extension of name.
func Read(name string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported catalogue format: %s", name)
	}
}

// ReadFile opens and parses a local catalogue file.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(path, f)
}

// Products validates every row, reporting the first failing line.
func Products(rows []Row) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		p, err := domain.NewProduct(r.Input)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.Line, err)
		}
		products = append(products, p)
	}
	return products, nil
}
