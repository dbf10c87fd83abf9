package ingest

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
)

// Downloader fetches the dataset file when it is not present locally.
type Downloader interface {
	Download(ctx context.Context, dest string) error
}

// Loader turns the configured dataset file into derived inventory records:
// read, normalize, derive. When the file is missing and a downloader is
// configured, the file is fetched first.
type Loader struct {
	path       string
	downloader Downloader
	now        func() time.Time
	logger     *zap.Logger
}

// NewLoader wires a dataset loader. now supplies the reference date for the
// Expired flag; pass time.Now outside of tests.
func NewLoader(path string, downloader Downloader, now func() time.Time, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Loader{path: path, downloader: downloader, now: now, logger: logger}
}

// Load produces the full set of normalized, derived records.
func (l *Loader) Load(ctx context.Context) ([]models.InventoryRecord, error) {
	if _, err := os.Stat(l.path); err != nil {
		if l.downloader == nil {
			return nil, fmt.Errorf("dataset file %s not found and no download source configured", l.path)
		}
		l.logger.Info("dataset file missing, downloading", zap.String("path", l.path))
		if err := l.downloader.Download(ctx, l.path); err != nil {
			return nil, err
		}
	}

	raw, err := ReadTable(l.path)
	if err != nil {
		return nil, err
	}

	records, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	records = Derive(records, l.now())
	l.logger.Info("dataset loaded", zap.String("path", l.path), zap.Int("rows", len(records)))
	return records, nil
}
