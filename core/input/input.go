// Package input reads the (URL_ID, URL) list that drives a fetch run.
// CSV and XLSX files are supported; the header row names the columns.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/articlescore/core"
)

const (
	idColumn  = "url_id"
	urlColumn = "url"
)

// ErrMissingColumn is returned when the header row lacks URL_ID or URL.
var ErrMissingColumn = errors.New("input list is missing a required column")

// Load reads the input list at path. The format is chosen by extension:
// ".xlsx" is read as a workbook (sheet, or the first sheet when empty),
// anything else as CSV.
func Load(path, sheet string, logger *zap.Logger) ([]core.InputRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, sheet)
	default:
		rows, err = readCSVFile(path)
	}
	if err != nil {
		return nil, err
	}

	records, skipped, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if skipped > 0 {
		logger.Warn("Skipped input rows without an identifier or a fetchable URL",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return records, nil
}

// ReadCSV parses a CSV input list from r.
func ReadCSV(r io.Reader) ([]core.InputRecord, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}
	records, _, err := fromRows(rows)
	return records, err
}

// URLIndex maps identifiers to URLs.
func URLIndex(records []core.InputRecord) map[string]string {
	index := make(map[string]string, len(records))
	for _, rec := range records {
		index[rec.ID] = rec.URL
	}
	return index
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input list: %w", err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV input list: %w", err)
	}
	return rows, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// fromRows maps a header row plus data rows onto input records. Rows with
// an empty identifier or a URL that is not absolute http(s) are counted as
// skipped.
func fromRows(rows [][]string) ([]core.InputRecord, int, error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}

	idIdx, urlIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case idColumn:
			idIdx = i
		case urlColumn:
			urlIdx = i
		}
	}
	if idIdx < 0 {
		return nil, 0, fmt.Errorf("%w: URL_ID", ErrMissingColumn)
	}
	if urlIdx < 0 {
		return nil, 0, fmt.Errorf("%w: URL", ErrMissingColumn)
	}

	records := make([]core.InputRecord, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		id := cell(row, idIdx)
		rawURL := cell(row, urlIdx)
		if id == "" && rawURL == "" {
			continue
		}
		if id == "" || !fetchable(rawURL) {
			skipped++
			continue
		}
		records = append(records, core.InputRecord{ID: id, URL: rawURL})
	}
	return records, skipped, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
