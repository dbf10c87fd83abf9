package analytics

import (
	"time"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

// DateRange bounds a date filter. A range only takes effect when its end is
// set; a lone start is ignored.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// FilterParams carries the optional predicates applied to the snapshot. Nil
// or empty members mean "no restriction".
type FilterParams struct {
	DateReceived DateRange
	LastOrder    DateRange
	Categories   []string
	Products     []string
	Statuses     []string
}

// ApplyFilters produces a filtered view of records, preserving input order.
//
// The two date filters carry a compatibility quirk from the original
// dashboard: an empty intermediate result is treated as "filter not
// meaningfully applied yet", so the last-order filter falls back to the full
// table when the received-date filter emptied it, and an empty result after
// both date filters resets to the full table before the categorical filters
// run.
func ApplyFilters(records []models.InventoryRecord, p FilterParams) []models.InventoryRecord {
	var filtered []models.InventoryRecord

	switch {
	case p.DateReceived.Start != nil && p.DateReceived.End != nil:
		filtered = filterDates(records, receivedDate, p.DateReceived.Start, p.DateReceived.End)
	case p.DateReceived.End != nil:
		filtered = filterDates(records, receivedDate, nil, p.DateReceived.End)
	}

	switch {
	case p.LastOrder.Start != nil && p.LastOrder.End != nil:
		filtered = filterDates(fallback(filtered, records), lastOrderDate, p.LastOrder.Start, p.LastOrder.End)
	case p.LastOrder.End != nil:
		filtered = filterDates(fallback(filtered, records), lastOrderDate, nil, p.LastOrder.End)
	}

	if len(filtered) == 0 {
		filtered = append([]models.InventoryRecord(nil), records...)
	}

	if len(p.Categories) > 0 {
		set := toSet(p.Categories)
		filtered = filterRecords(filtered, func(r models.InventoryRecord) bool {
			return r.Category != nil && set[*r.Category]
		})
	}
	if len(p.Products) > 0 {
		set := toSet(p.Products)
		filtered = filterRecords(filtered, func(r models.InventoryRecord) bool {
			return set[r.ProductName]
		})
	}
	if len(p.Statuses) > 0 {
		set := toSet(p.Statuses)
		filtered = filterRecords(filtered, func(r models.InventoryRecord) bool {
			return set[r.Status]
		})
	}

	return filtered
}

func fallback(filtered, full []models.InventoryRecord) []models.InventoryRecord {
	if len(filtered) > 0 {
		return filtered
	}
	return full
}

func receivedDate(r models.InventoryRecord) *time.Time  { return r.DateReceived }
func lastOrderDate(r models.InventoryRecord) *time.Time { return r.LastOrderDate }

// filterDates keeps rows whose date lies in [start, end]; a nil start leaves
// the lower bound open. Rows without the date are excluded.
func filterDates(records []models.InventoryRecord, date func(models.InventoryRecord) *time.Time, start, end *time.Time) []models.InventoryRecord {
	return filterRecords(records, func(r models.InventoryRecord) bool {
		d := date(r)
		if d == nil {
			return false
		}
		if start != nil && d.Before(*start) {
			return false
		}
		return !d.After(*end)
	})
}

func filterRecords(records []models.InventoryRecord, keep func(models.InventoryRecord) bool) []models.InventoryRecord {
	out := make([]models.InventoryRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
