package analytics

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeKPIs(t *testing.T) {
	records := []models.InventoryRecord{
		{Revenue: money("1200.50"), InventoryValue: money("5000"), InventoryTurnoverRate: ptr(4.0)},
		{Revenue: money("803.00"), InventoryValue: money("2500.25"), InventoryTurnoverRate: ptr(8.0)},
		{Revenue: nil, InventoryValue: nil, InventoryTurnoverRate: nil},
	}

	kpis := ComputeKPIs(records)

	assert.Equal(t, "Total Sales: $2,004", kpis.TotalSales)
	assert.Equal(t, "Total Inventory: $7,500", kpis.TotalInventory)
	assert.Equal(t, "Avg Turnover: 6", kpis.AvgTurnover, "average skips unknown rates")
}

func TestComputeKPIsEmptyTable(t *testing.T) {
	kpis := ComputeKPIs(nil)
	assert.Equal(t, "Total Sales: $0", kpis.TotalSales)
	assert.Equal(t, "Total Inventory: $0", kpis.TotalInventory)
	assert.Equal(t, "Avg Turnover: 0", kpis.AvgTurnover)
}

func TestCategorySummarySortedDescending(t *testing.T) {
	records := []models.InventoryRecord{
		{Category: ptr("Bakery"), Revenue: money("100")},
		{Category: ptr("Produce"), Revenue: money("400")},
		{Category: ptr("Bakery"), Revenue: money("150")},
		{Category: nil, Revenue: money("999")},
	}

	summary := CategorySummary(records)

	require.Len(t, summary, 2, "rows without a category are excluded")
	assert.Equal(t, "Produce", summary[0].Label)
	assert.Equal(t, "400", summary[0].Revenue.String())
	assert.Equal(t, "Bakery", summary[1].Label)
	assert.Equal(t, "250", summary[1].Revenue.String())
}

func TestCategorySummaryTiesKeepFirstSeenOrder(t *testing.T) {
	records := []models.InventoryRecord{
		{Category: ptr("Dairy"), Revenue: money("100")},
		{Category: ptr("Bakery"), Revenue: money("100")},
	}

	summary := CategorySummary(records)
	require.Len(t, summary, 2)
	assert.Equal(t, "Dairy", summary[0].Label)
	assert.Equal(t, "Bakery", summary[1].Label)
}

func TestTopProductsTruncatedToTen(t *testing.T) {
	records := make([]models.InventoryRecord, 0, 15)
	for i := 0; i < 15; i++ {
		records = append(records, models.InventoryRecord{
			ProductName: fmt.Sprintf("Product %02d", i),
			Revenue:     money(fmt.Sprintf("%d", (i+1)*10)),
		})
	}

	top := TopProducts(records)

	require.Len(t, top, 10)
	assert.Equal(t, "Product 14", top[0].Label, "largest revenue first")
	assert.Equal(t, "Product 05", top[9].Label)
}

func TestReplenishmentRows(t *testing.T) {
	records := []models.InventoryRecord{
		{ProductID: "P-1", ProductName: "Oat Milk", Category: ptr("Dairy Alternatives"),
			SupplierName: "Grainful Co", SupplierID: "S-1", StockQuantity: ptr(5),
			ReorderLevel: ptr(10), ReorderQuantity: ptr(30), Revenue: money("250"), Restock: true},
		{ProductID: "P-2", ProductName: "Rye Bread", Revenue: money("900"), Restock: false},
		{ProductID: "P-3", ProductName: "Gouda", Revenue: money("400"), Restock: true},
		{ProductID: "P-4", ProductName: "Kefir", Revenue: nil, Restock: true},
	}

	rows := ReplenishmentRows(records)

	require.Len(t, rows, 3, "non-restock rows are excluded")
	assert.Equal(t, "P-3", rows[0].ProductID, "sorted by revenue descending")
	assert.Equal(t, "P-1", rows[1].ProductID)
	assert.Equal(t, "P-4", rows[2].ProductID, "unknown revenue sorts last")

	first := rows[1]
	assert.Equal(t, "Oat Milk", first.ProductName)
	assert.Equal(t, "Dairy Alternatives", first.Category)
	assert.Equal(t, "Grainful Co", first.SupplierName)
	assert.Equal(t, "S-1", first.SupplierID)
	assert.Equal(t, 5, *first.StockQuantity)
	assert.Equal(t, 10, *first.ReorderLevel)
	assert.Equal(t, 30, *first.ReorderQuantity)
}

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"2004", "2,004"},
		{"1234567.89", "1,234,568"},
		{"-1234567", "-1,234,567"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, groupThousands(decimal.RequireFromString(tc.in)), "input %s", tc.in)
	}
}
