package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/grocerydash/internal/domain/models"
	"github.com/mamadbah2/grocerydash/internal/service/analytics"
)

// --- mock service ---

type mockDashboardService struct {
	lastParams analytics.FilterParams
	reloadErr  error
	reloads    int
}

func (m *mockDashboardService) Dashboard(p analytics.FilterParams) analytics.DashboardData {
	m.lastParams = p
	return analytics.DashboardData{
		KPIs: analytics.ComputeKPIs(m.records()),
	}
}

func (m *mockDashboardService) Filtered(p analytics.FilterParams) []models.InventoryRecord {
	m.lastParams = p
	return m.records()
}

func (m *mockDashboardService) Meta() analytics.Meta {
	return analytics.Meta{Categories: []string{"Bakery"}, Statuses: []string{"Active"}}
}

func (m *mockDashboardService) Reload(context.Context) error {
	m.reloads++
	return m.reloadErr
}

func (m *mockDashboardService) records() []models.InventoryRecord {
	rev := decimal.RequireFromString("250")
	stock := 5
	reorder := 10
	return []models.InventoryRecord{{
		ProductID:     "P-1",
		ProductName:   "Oat Milk",
		Revenue:       &rev,
		StockQuantity: &stock,
		ReorderLevel:  &reorder,
		Status:        models.StatusActive,
		Restock:       true,
	}}
}

func newTestRouter(svc DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(svc, nil)

	r := gin.New()
	r.GET("/api/dashboard", handler.GetDashboard)
	r.GET("/api/meta", handler.GetMeta)
	r.GET("/api/download", handler.Download)
	r.POST("/api/reload", handler.Reload)
	return r
}

// --- tests ---

func TestGetDashboard(t *testing.T) {
	svc := &mockDashboardService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/dashboard?received_start=2023-01-01&received_end=2023-12-31&category=Bakery&category=Dairy&status=Active", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		KPIs analytics.KPIs `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Total Sales: $250", body.KPIs.TotalSales)

	require.NotNil(t, svc.lastParams.DateReceived.Start)
	require.NotNil(t, svc.lastParams.DateReceived.End)
	assert.Equal(t, []string{"Bakery", "Dairy"}, svc.lastParams.Categories)
	assert.Equal(t, []string{"Active"}, svc.lastParams.Statuses)
}

func TestGetDashboardMalformedDateIsIgnored(t *testing.T) {
	svc := &mockDashboardService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?received_end=yesterday-ish", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "bad filter degrades, never fails the request")
	assert.Nil(t, svc.lastParams.DateReceived.End)
}

func TestGetMeta(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta analytics.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, []string{"Bakery"}, meta.Categories)
}

func TestDownloadCSV(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download?format=csv", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Replenishment Needs.csv")
	assert.Contains(t, rec.Body.String(), "Oat Milk")
}

func TestDownloadDefaultsToCSV(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
}

func TestDownloadUnsupportedFormat(t *testing.T) {
	router := newTestRouter(&mockDashboardService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download?format=pdf", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReload(t *testing.T) {
	svc := &mockDashboardService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.reloads)
}

func TestReloadFailure(t *testing.T) {
	svc := &mockDashboardService{reloadErr: errors.New("source unavailable")}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
