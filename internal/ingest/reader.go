package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

// RawTable is an untyped tabular snapshot as read from disk. Every cell is a
// string; the normalizer owns type coercion.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ReadTable loads a dataset file, dispatching on the file extension.
// Supported formats are csv, xlsx and json (an array of flat objects).
func ReadTable(path string) (*RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	case ".json":
		return readJSON(path)
	}
	return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, filepath.Ext(path))
}

func readCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}
	return &RawTable{Header: rows[0], Rows: rows[1:]}, nil
}

func readXLSX(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}

	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; pad back to header width.
		for len(row) < len(header) {
			row = append(row, "")
		}
		body = append(body, row)
	}
	return &RawTable{Header: header, Rows: body}, nil
}

func readJSON(path string) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("read json %s: %w", path, err)
	}
	if len(objects) == 0 {
		return &RawTable{}, nil
	}

	header := make([]string, 0, len(objects[0]))
	for key := range objects[0] {
		header = append(header, key)
	}
	sort.Strings(header)

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = stringifyCell(obj[key])
		}
		rows = append(rows, row)
	}
	return &RawTable{Header: header, Rows: rows}, nil
}

func stringifyCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
