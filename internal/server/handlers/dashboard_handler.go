package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
	"github.com/mamadbah2/grocerydash/internal/export"
	"github.com/mamadbah2/grocerydash/internal/service/analytics"
)

const dateParamLayout = "2006-01-02"

var downloadContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DashboardService is the slice of the analytics service the HTTP layer uses.
type DashboardService interface {
	Dashboard(p analytics.FilterParams) analytics.DashboardData
	Filtered(p analytics.FilterParams) []models.InventoryRecord
	Meta() analytics.Meta
	Reload(ctx context.Context) error
}

// DashboardHandler serves the dashboard API consumed by the presentation
// layer.
type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// GetDashboard recomputes KPIs, chart series and the replenishment table for
// the requested filters.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	params := h.parseFilterParams(c)
	c.JSON(http.StatusOK, h.svc.Dashboard(params))
}

// GetMeta returns distinct filter values and date bounds for widget setup.
func (h *DashboardHandler) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Meta())
}

// Download streams the filtered replenishment table as a csv or xlsx
// attachment.
func (h *DashboardHandler) Download(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	params := h.parseFilterParams(c)

	rows := analytics.ReplenishmentRows(h.svc.Filtered(params))
	data, name, err := export.Write(format, rows)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
			return
		}
		h.logger.Error("failed building download", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build download"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, downloadContentTypes[format], data)
}

// Reload rebuilds the snapshot from the source dataset and replaces the
// stored table.
func (h *DashboardHandler) Reload(c *gin.Context) {
	if err := h.svc.Reload(c.Request.Context()); err != nil {
		h.logger.Error("snapshot reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}

// parseFilterParams reads filters from the query string. Malformed values
// degrade to "filter absent" instead of failing the request.
func (h *DashboardHandler) parseFilterParams(c *gin.Context) analytics.FilterParams {
	return analytics.FilterParams{
		DateReceived: analytics.DateRange{
			Start: h.parseDate(c, "received_start"),
			End:   h.parseDate(c, "received_end"),
		},
		LastOrder: analytics.DateRange{
			Start: h.parseDate(c, "order_start"),
			End:   h.parseDate(c, "order_end"),
		},
		Categories: c.QueryArray("category"),
		Products:   c.QueryArray("product"),
		Statuses:   c.QueryArray("status"),
	}
}

func (h *DashboardHandler) parseDate(c *gin.Context, key string) *time.Time {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse(dateParamLayout, v)
	if err != nil {
		h.logger.Warn("ignoring malformed date filter",
			zap.String("param", key), zap.String("value", v))
		return nil
	}
	return &t
}
