package ingest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

// Derive recomputes the derived columns on every record. The Expired flag
// compares against refDate, so callers control "today"; results for the same
// refDate are deterministic.
//
// Unknown inputs propagate: a record without a stock quantity gets a nil
// LowStock rather than false, and unknown comparisons never make a record
// restock-eligible.
func Derive(records []models.InventoryRecord, refDate time.Time) []models.InventoryRecord {
	for i := range records {
		rec := &records[i]

		rec.Revenue = nil
		if rec.SalesVolume != nil {
			rev := decimal.NewFromFloat(*rec.SalesVolume).Mul(rec.UnitPrice).Round(2)
			rec.Revenue = &rev
		}

		rec.InventoryValue = nil
		if rec.StockQuantity != nil {
			val := rec.UnitPrice.Mul(decimal.NewFromInt(int64(*rec.StockQuantity)))
			rec.InventoryValue = &val
		}

		rec.Discontinued = rec.Status == models.StatusDiscontinued

		rec.LowStock = nil
		if rec.StockQuantity != nil && rec.ReorderLevel != nil {
			low := *rec.StockQuantity < *rec.ReorderLevel
			rec.LowStock = &low
		}

		rec.Expired = nil
		if rec.ExpirationDate != nil {
			expired := !rec.ExpirationDate.After(refDate)
			rec.Expired = &expired
		}

		rec.Restock = (boolValue(rec.LowStock) || boolValue(rec.Expired)) &&
			rec.Status == models.StatusActive
	}
	return records
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
