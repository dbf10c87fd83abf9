package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
	"github.com/mamadbah2/grocerydash/internal/repository/sqlite"
)

// Source supplies fresh, fully derived inventory records.
type Source interface {
	Load(ctx context.Context) ([]models.InventoryRecord, error)
}

// DashboardData bundles everything one dashboard refresh needs.
type DashboardData struct {
	KPIs            KPIs               `json:"kpis"`
	CategorySummary []RevenueSummary   `json:"category_summary"`
	TopProducts     []RevenueSummary   `json:"top_products"`
	Replenishment   []ReplenishmentRow `json:"replenishment"`
}

// Meta describes the loaded snapshot for building filter widgets: distinct
// values in first-seen order and the date bounds of the two filterable dates.
type Meta struct {
	Categories      []string   `json:"categories"`
	Products        []string   `json:"products"`
	Statuses        []string   `json:"statuses"`
	DateReceivedMin *time.Time `json:"date_received_min"`
	DateReceivedMax *time.Time `json:"date_received_max"`
	LastOrderMin    *time.Time `json:"last_order_min"`
	LastOrderMax    *time.Time `json:"last_order_max"`
}

// Service owns the process-wide inventory snapshot. The snapshot is loaded
// once at startup and replaced wholesale on reload; readers never mutate it.
type Service struct {
	store  sqlite.Store
	source Source
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot []models.InventoryRecord
}

// NewService wires the snapshot service.
func NewService(store sqlite.Store, source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, source: source, logger: logger}
}

// InitialSetup establishes the snapshot: read it back from storage when the
// database and table already exist, otherwise load from the source dataset
// and persist the result. Any failure here is fatal to startup.
func (s *Service) InitialSetup(ctx context.Context, override bool) error {
	if s.store.Exists() && !override {
		has, err := s.store.HasTable()
		if err != nil {
			return err
		}
		if has {
			records, err := s.store.ReadAll("", false)
			if err != nil {
				return err
			}
			s.replace(records)
			s.logger.Info("snapshot restored from storage", zap.Int("rows", len(records)))
			return nil
		}
	}

	records, err := s.source.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.store.CreateTable(records, true); err != nil {
		return err
	}
	s.replace(records)
	s.logger.Info("snapshot built from source", zap.Int("rows", len(records)))
	return nil
}

// Reload re-reads the source dataset, replaces the stored table and swaps the
// in-memory snapshot.
func (s *Service) Reload(ctx context.Context) error {
	records, err := s.source.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.store.ReplaceAll(records); err != nil {
		return err
	}
	s.replace(records)
	s.logger.Info("snapshot reloaded", zap.Int("rows", len(records)))
	return nil
}

func (s *Service) replace(records []models.InventoryRecord) {
	s.mu.Lock()
	s.snapshot = records
	s.mu.Unlock()
}

// Snapshot returns the current records. Callers treat the slice as read-only.
func (s *Service) Snapshot() []models.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Dashboard runs one recomputation pass: filter, then aggregate.
func (s *Service) Dashboard(p FilterParams) DashboardData {
	filtered := ApplyFilters(s.Snapshot(), p)
	return DashboardData{
		KPIs:            ComputeKPIs(filtered),
		CategorySummary: CategorySummary(filtered),
		TopProducts:     TopProducts(filtered),
		Replenishment:   ReplenishmentRows(filtered),
	}
}

// Filtered returns the filtered view itself, for exports.
func (s *Service) Filtered(p FilterParams) []models.InventoryRecord {
	return ApplyFilters(s.Snapshot(), p)
}

// Meta summarizes the snapshot for the filter widgets.
func (s *Service) Meta() Meta {
	records := s.Snapshot()

	meta := Meta{}
	seenCat := make(map[string]bool)
	seenProd := make(map[string]bool)
	seenStatus := make(map[string]bool)

	for _, r := range records {
		if r.Category != nil && !seenCat[*r.Category] {
			seenCat[*r.Category] = true
			meta.Categories = append(meta.Categories, *r.Category)
		}
		if r.ProductName != "" && !seenProd[r.ProductName] {
			seenProd[r.ProductName] = true
			meta.Products = append(meta.Products, r.ProductName)
		}
		if r.Status != "" && !seenStatus[r.Status] {
			seenStatus[r.Status] = true
			meta.Statuses = append(meta.Statuses, r.Status)
		}
		meta.DateReceivedMin, meta.DateReceivedMax = widen(meta.DateReceivedMin, meta.DateReceivedMax, r.DateReceived)
		meta.LastOrderMin, meta.LastOrderMax = widen(meta.LastOrderMin, meta.LastOrderMax, r.LastOrderDate)
	}
	return meta
}

func widen(min, max, d *time.Time) (*time.Time, *time.Time) {
	if d == nil {
		return min, max
	}
	if min == nil || d.Before(*min) {
		min = d
	}
	if max == nil || d.After(*max) {
		max = d
	}
	return min, max
}
