package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
	"github.com/mamadbah2/grocerydash/internal/service/analytics"
)

func sampleRows() []analytics.ReplenishmentRow {
	rev := decimal.RequireFromString("250.5")
	stock := 5
	reorder := 10
	qty := 30
	return []analytics.ReplenishmentRow{{
		ProductName:     "Oat Milk",
		Category:        "Dairy Alternatives",
		ProductID:       "P-1",
		SupplierName:    "Grainful Co",
		SupplierID:      "S-1",
		StockQuantity:   &stock,
		ReorderLevel:    &reorder,
		ReorderQuantity: &qty,
		Revenue:         &rev,
	}}
}

func TestWriteCSV(t *testing.T) {
	data, name, err := Write("csv", sampleRows())
	require.NoError(t, err)
	assert.Equal(t, "Replenishment Needs.csv", name)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{
		"Oat Milk", "Dairy Alternatives", "P-1", "Grainful Co", "S-1",
		"5", "10", "30", "250.50",
	}, records[1])
}

func TestWriteCSVNilValuesRenderEmpty(t *testing.T) {
	rows := sampleRows()
	rows[0].StockQuantity = nil
	rows[0].Revenue = nil

	data, _, err := Write("csv", rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][5])
	assert.Equal(t, "", records[1][8])
}

func TestWriteXLSX(t *testing.T) {
	data, name, err := Write("xlsx", sampleRows())
	require.NoError(t, err)
	assert.Equal(t, "Replenishment Needs.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Product Name", rows[0][0])
	assert.Equal(t, "Oat Milk", rows[1][0])
	assert.Equal(t, "250.50", rows[1][8])
}

func TestWriteUnsupportedFormat(t *testing.T) {
	_, _, err := Write("pdf", sampleRows())
	require.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestWriteEmptyRows(t *testing.T) {
	data, _, err := Write("csv", nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
