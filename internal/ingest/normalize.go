package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

// Canonical source column names. The schema is declared explicitly instead of
// sniffing types from column names; the source's "Catagory" misspelling is
// corrected before lookup.
const (
	colProductID       = "product_id"
	colProductName     = "product_name"
	colCategory        = "category"
	colSupplierName    = "supplier_name"
	colSupplierID      = "supplier_id"
	colUnitPrice       = "unit_price"
	colStockQuantity   = "stock_quantity"
	colReorderLevel    = "reorder_level"
	colReorderQuantity = "reorder_quantity"
	colSalesVolume     = "sales_volume"
	colPercentage      = "percentage"
	colStatus          = "status"
	colDateReceived    = "date_received"
	colLastOrderDate   = "last_order_date"
	colExpirationDate  = "expiration_date"
	colTurnoverRate    = "inventory_turnover_rate"
)

var headerFixes = map[string]string{
	"catagory": colCategory,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/02/2006",
	time.RFC3339,
}

// Normalize coerces a raw table into typed inventory records. Every parse
// failure is reported as a *models.FormatError naming the column, value and
// row. Normalization is idempotent: values that already carry no currency or
// percent markers parse unchanged.
func Normalize(raw *RawTable) ([]models.InventoryRecord, error) {
	if raw == nil || len(raw.Header) == 0 {
		return nil, nil
	}

	index, err := indexColumns(raw.Header)
	if err != nil {
		return nil, err
	}

	records := make([]models.InventoryRecord, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		cell := func(col string) string {
			pos, ok := index[col]
			if !ok || pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		rec := models.InventoryRecord{
			ProductID:    cell(colProductID),
			ProductName:  cell(colProductName),
			SupplierName: cell(colSupplierName),
			SupplierID:   cell(colSupplierID),
			Status:       cell(colStatus),
		}

		if v := cell(colCategory); v != "" {
			rec.Category = &v
		}

		price, perr := parseMoney(cell(colUnitPrice))
		if perr != nil {
			return nil, formatErr(colUnitPrice, cell(colUnitPrice), i)
		}
		rec.UnitPrice = price

		if rec.Percentage, err = parsePercentCell(cell(colPercentage), colPercentage, i); err != nil {
			return nil, err
		}
		if rec.StockQuantity, err = parseIntCell(cell(colStockQuantity), colStockQuantity, i); err != nil {
			return nil, err
		}
		if rec.ReorderLevel, err = parseIntCell(cell(colReorderLevel), colReorderLevel, i); err != nil {
			return nil, err
		}
		if rec.ReorderQuantity, err = parseIntCell(cell(colReorderQuantity), colReorderQuantity, i); err != nil {
			return nil, err
		}
		if rec.SalesVolume, err = parseFloatCell(cell(colSalesVolume), colSalesVolume, i); err != nil {
			return nil, err
		}
		if rec.InventoryTurnoverRate, err = parseFloatCell(cell(colTurnoverRate), colTurnoverRate, i); err != nil {
			return nil, err
		}
		if rec.DateReceived, err = parseDateCell(cell(colDateReceived), colDateReceived, i); err != nil {
			return nil, err
		}
		if rec.LastOrderDate, err = parseDateCell(cell(colLastOrderDate), colLastOrderDate, i); err != nil {
			return nil, err
		}
		if rec.ExpirationDate, err = parseDateCell(cell(colExpirationDate), colExpirationDate, i); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
	return records, nil
}

func indexColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if fixed, ok := headerFixes[key]; ok {
			key = fixed
		}
		index[key] = i
	}

	required := []string{colProductID, colProductName, colUnitPrice, colStatus}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %s", col)
		}
	}
	return index, nil
}

var moneyStripper = strings.NewReplacer("$", "", ",", "")

// parseMoney strips currency symbols and thousands separators before parsing.
// Clean numeric input passes through the stripper untouched, which is what
// makes a second normalization pass a no-op.
func parseMoney(v string) (decimal.Decimal, error) {
	return decimal.NewFromString(moneyStripper.Replace(v))
}

func parsePercentCell(v, col string, row int) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	stripped := strings.TrimSuffix(strings.ReplaceAll(v, ",", ""), "%")
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return nil, formatErr(col, v, row)
	}
	// Only divide when the marker was actually present; an already-normalized
	// fraction must survive a re-run unchanged.
	if strings.HasSuffix(v, "%") {
		f /= 100
	}
	return &f, nil
}

func parseIntCell(v, col string, row int) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, formatErr(col, v, row)
	}
	return &n, nil
}

func parseFloatCell(v, col string, row int) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, formatErr(col, v, row)
	}
	return &f, nil
}

func parseDateCell(v, col string, row int) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, formatErr(col, v, row)
}

func formatErr(col, value string, row int) error {
	return &models.FormatError{Column: col, Value: value, Row: row + 1}
}
