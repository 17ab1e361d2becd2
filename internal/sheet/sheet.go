package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/memberwd/backoffice/internal/entity"
)

const maxXLSRows = 100000

// ReadRows pulls raw cell rows out of an uploaded spreadsheet. Legacy
// .xls files must carry exactly one worksheet; for .xlsx the first
// sheet is used; .csv is read as-is.
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".xls":
		return readXLS(data)
	case ".csv":
		return readCSV(data)
	default:
		return readXLSX(data)
	}
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", entity.ErrEmptyFile)
	}

	if workbook.NumSheets() > 1 {
		return nil, fmt.Errorf("%w: file has multiple worksheets, upload a single-sheet file", entity.ErrInvalidInput)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, entity.ErrEmptyFile
	}

	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no worksheet found", entity.ErrEmptyFile)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, entity.ErrEmptyFile
	}

	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, entity.ErrEmptyFile
	}

	return rows, nil
}

// ParsedSheet is the upload preview: normalized headers plus one
// row_data map per data row.
type ParsedSheet struct {
	Headers []string
	Rows    []map[string]string
}

// ParseRecords turns raw rows into record row_data maps. The first row
// is the header row: headers are lowercased and trimmed, duplicates get
// a _2, _3... suffix, unnamed columns become column_N. Blank data rows
// are skipped.
func ParseRecords(rows [][]string) (ParsedSheet, error) {
	if len(rows) == 0 {
		return ParsedSheet{}, entity.ErrEmptyFile
	}

	headers := normalizeHeaders(rows[0])

	parsed := ParsedSheet{Headers: headers}

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		rowData := make(map[string]string, len(headers))

		for i, header := range headers {
			rowData[header] = cellValue(row, i)
		}

		parsed.Rows = append(parsed.Rows, rowData)
	}

	if len(parsed.Rows) == 0 {
		return ParsedSheet{}, fmt.Errorf("%w: no data rows under the header", entity.ErrEmptyFile)
	}

	return parsed, nil
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))

	for i, header := range raw {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}

		// A generated suffix may itself clash with a real header, so
		// keep counting until the candidate is free.
		if _, ok := used[h]; ok {
			for n := 2; ; n++ {
				candidate := h + "_" + strconv.Itoa(n)
				if _, ok := used[candidate]; !ok {
					h = candidate
					break
				}
			}
		}

		used[h] = struct{}{}
		headers[i] = h
	}

	return headers
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
