package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

const topProductsLimit = 10

// KPIs are the three headline figures, pre-formatted for display.
type KPIs struct {
	TotalSales     string `json:"total_sales"`
	TotalInventory string `json:"total_inventory"`
	AvgTurnover    string `json:"avg_turnover"`
}

// RevenueSummary is one bar of a revenue-by-dimension chart.
type RevenueSummary struct {
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReplenishmentRow is the fixed projection shown in the replenishment table.
type ReplenishmentRow struct {
	ProductName     string           `json:"product_name"`
	Category        string           `json:"category"`
	ProductID       string           `json:"product_id"`
	SupplierName    string           `json:"supplier_name"`
	SupplierID      string           `json:"supplier_id"`
	StockQuantity   *int             `json:"stock_quantity"`
	ReorderLevel    *int             `json:"reorder_level"`
	ReorderQuantity *int             `json:"reorder_quantity"`
	Revenue         *decimal.Decimal `json:"revenue"`
}

// ComputeKPIs sums revenue and inventory value and averages the turnover
// rate, skipping unknown values. Figures are rendered with zero decimals and
// thousands separators, matching the dashboard cards.
func ComputeKPIs(records []models.InventoryRecord) KPIs {
	totalSales := decimal.Zero
	totalInventory := decimal.Zero
	turnoverSum := 0.0
	turnoverCount := 0

	for _, r := range records {
		if r.Revenue != nil {
			totalSales = totalSales.Add(*r.Revenue)
		}
		if r.InventoryValue != nil {
			totalInventory = totalInventory.Add(*r.InventoryValue)
		}
		if r.InventoryTurnoverRate != nil {
			turnoverSum += *r.InventoryTurnoverRate
			turnoverCount++
		}
	}

	avgTurnover := decimal.Zero
	if turnoverCount > 0 {
		avgTurnover = decimal.NewFromFloat(turnoverSum / float64(turnoverCount))
	}

	return KPIs{
		TotalSales:     "Total Sales: $" + groupThousands(totalSales),
		TotalInventory: "Total Inventory: $" + groupThousands(totalInventory),
		AvgTurnover:    "Avg Turnover: " + groupThousands(avgTurnover),
	}
}

// CategorySummary groups revenue by category, sorted descending by revenue.
// Rows without a category are left out, as are rows with unknown revenue.
func CategorySummary(records []models.InventoryRecord) []RevenueSummary {
	return sumRevenueBy(records, func(r models.InventoryRecord) (string, bool) {
		if r.Category == nil {
			return "", false
		}
		return *r.Category, true
	}, 0)
}

// TopProducts groups revenue by product name and keeps the ten largest.
func TopProducts(records []models.InventoryRecord) []RevenueSummary {
	return sumRevenueBy(records, func(r models.InventoryRecord) (string, bool) {
		return r.ProductName, true
	}, topProductsLimit)
}

// sumRevenueBy groups in first-seen order, then sorts descending by the
// summed revenue. The stable sort keeps ties in input order; a positive limit
// truncates the result.
func sumRevenueBy(records []models.InventoryRecord, key func(models.InventoryRecord) (string, bool), limit int) []RevenueSummary {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		if r.Revenue != nil {
			totals[k] = totals[k].Add(*r.Revenue)
		} else {
			totals[k] = totals[k].Add(decimal.Zero)
		}
	}

	summaries := make([]RevenueSummary, 0, len(order))
	for _, k := range order {
		summaries = append(summaries, RevenueSummary{Label: k, Revenue: totals[k]})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Revenue.GreaterThan(summaries[j].Revenue)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// ReplenishmentRows projects restock-flagged records onto the table columns,
// sorted by revenue descending. Unknown revenue sorts last; ties keep input
// order.
func ReplenishmentRows(records []models.InventoryRecord) []ReplenishmentRow {
	rows := make([]ReplenishmentRow, 0)
	for _, r := range records {
		if !r.Restock {
			continue
		}
		rows = append(rows, ReplenishmentRow{
			ProductName:     r.ProductName,
			Category:        r.CategoryName(),
			ProductID:       r.ProductID,
			SupplierName:    r.SupplierName,
			SupplierID:      r.SupplierID,
			StockQuantity:   r.StockQuantity,
			ReorderLevel:    r.ReorderLevel,
			ReorderQuantity: r.ReorderQuantity,
			Revenue:         r.Revenue,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Revenue == nil {
			return false
		}
		if rows[j].Revenue == nil {
			return true
		}
		return rows[i].Revenue.GreaterThan(*rows[j].Revenue)
	})
	return rows
}

// groupThousands renders a decimal with zero fraction digits and commas
// between thousands groups.
func groupThousands(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
