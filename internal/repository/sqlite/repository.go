package sqlite

import (
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

const insertBatchSize = 500

// Store defines the persistence operations the snapshot service relies on.
type Store interface {
	Exists() bool
	HasTable() (bool, error)
	CreateTable(records []models.InventoryRecord, overwrite bool) error
	ReadAll(orderBy string, ascending bool) ([]models.InventoryRecord, error)
	Query(raw string) ([]map[string]any, error)
	Insert(records []models.InventoryRecord) error
	ReplaceAll(records []models.InventoryRecord) error
	Upsert(records []models.InventoryRecord) error
}

// Repository implements Store on a sqlite database through gorm.
type Repository struct {
	db     *gorm.DB
	path   string
	logger *zap.Logger
}

// New opens (or creates) the sqlite database at path.
func New(path string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &models.StorageError{Op: "open " + path, Err: err}
	}

	return &Repository{db: db, path: path, logger: logger}, nil
}

// NewWithDB wraps an already-open gorm handle; used with in-memory databases
// in tests.
func NewWithDB(db *gorm.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

// Exists reports whether the database file is present on disk.
func (r *Repository) Exists() bool {
	if r.path == "" {
		return false
	}
	_, err := os.Stat(r.path)
	return err == nil
}

// HasTable reports whether the snapshot table has been created.
func (r *Repository) HasTable() (bool, error) {
	return r.db.Migrator().HasTable(&models.InventoryRecord{}), nil
}

// ListTables returns all table names in the database.
func (r *Repository) ListTables() ([]string, error) {
	var names []string
	err := r.db.Raw("SELECT name FROM sqlite_master WHERE type = 'table'").Scan(&names).Error
	if err != nil {
		return nil, &models.StorageError{Op: "list tables", Err: err}
	}
	return names, nil
}

// CreateTable materializes the snapshot table and bulk-inserts records. When
// the table already exists and overwrite is false the call is a no-op.
func (r *Repository) CreateTable(records []models.InventoryRecord, overwrite bool) error {
	if has, _ := r.HasTable(); has {
		if !overwrite {
			return nil
		}
		if err := r.db.Migrator().DropTable(&models.InventoryRecord{}); err != nil {
			return &models.StorageError{Op: "drop table", Err: err}
		}
	}

	if err := r.db.AutoMigrate(&models.InventoryRecord{}); err != nil {
		return &models.StorageError{Op: "create table", Err: err}
	}
	if err := r.Insert(records); err != nil {
		return err
	}

	r.logger.Info("snapshot table created", zap.Int("rows", len(records)))
	return nil
}

// ReadAll returns every record with a known category, optionally ordered by
// a column. Ordering defaults to descending, as the dashboard reads it.
func (r *Repository) ReadAll(orderBy string, ascending bool) ([]models.InventoryRecord, error) {
	query := r.db.Where("Category IS NOT NULL")
	if orderBy != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: orderBy},
			Desc:   !ascending,
		})
	}

	var records []models.InventoryRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, &models.StorageError{Op: "read all", Err: err}
	}
	return records, nil
}

// Query runs a raw SQL query and returns generic rows.
func (r *Repository) Query(raw string) ([]map[string]any, error) {
	var rows []map[string]any
	if err := r.db.Raw(raw).Scan(&rows).Error; err != nil {
		return nil, &models.StorageError{Op: "query", Err: err}
	}
	return rows, nil
}

// Insert appends records to the snapshot table.
func (r *Repository) Insert(records []models.InventoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(records, insertBatchSize).Error; err != nil {
		return &models.StorageError{Op: "insert", Err: err}
	}
	return nil
}

// ReplaceAll swaps the table contents for the given records.
func (r *Repository) ReplaceAll(records []models.InventoryRecord) error {
	return r.CreateTable(records, true)
}

// Upsert is declared for API symmetry but intentionally unimplemented; the
// snapshot is only ever replaced wholesale.
func (r *Repository) Upsert(_ []models.InventoryRecord) error {
	return models.ErrNotImplemented
}
