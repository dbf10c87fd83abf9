package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
	"github.com/mamadbah2/grocerydash/internal/service/analytics"
)

var header = []string{
	"Product Name", "Category", "Product Id", "Supplier Name", "Supplier Id",
	"Stock Quantity", "Reorder Level", "Reorder Quantity", "Revenue",
}

// Write renders replenishment rows as a downloadable file. Supported formats
// are "csv" and "xlsx"; anything else fails with ErrUnsupportedFormat.
// Returns the file bytes and the download filename.
func Write(format string, rows []analytics.ReplenishmentRow) ([]byte, string, error) {
	name := "Replenishment Needs." + format
	switch format {
	case "csv":
		data, err := writeCSV(rows)
		return data, name, err
	case "xlsx":
		data, err := writeXLSX(rows)
		return data, name, err
	}
	return nil, "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, format)
}

func writeCSV(rows []analytics.ReplenishmentRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, cell := range rowCells(row) {
			record[i] = fmt.Sprintf("%v", cell)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(rows []analytics.ReplenishmentRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}

	for i, row := range rows {
		cells := rowCells(row)
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, anchor, &cells); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func rowCells(row analytics.ReplenishmentRow) []any {
	return []any{
		row.ProductName,
		row.Category,
		row.ProductID,
		row.SupplierName,
		row.SupplierID,
		intCell(row.StockQuantity),
		intCell(row.ReorderLevel),
		intCell(row.ReorderQuantity),
		revenueCell(row),
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func revenueCell(row analytics.ReplenishmentRow) string {
	if row.Revenue == nil {
		return ""
	}
	return row.Revenue.StringFixed(2)
}
