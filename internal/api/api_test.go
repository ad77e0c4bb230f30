package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/api/middleware"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/cache"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/repository/memory"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewProductRepository()
	require.NoError(t, repo.SaveAll(context.Background(), []domain.Product{
		{ID: "a", Name: "Alpha", CurrentStock: 10, AverageDailySales: 2, SupplierLeadTime: 3, MinimumReorderQuantity: 5, CostPerUnit: 1.5, Criticality: domain.CriticalityHigh},
		{ID: "b", Name: "Bravo", CurrentStock: 500, AverageDailySales: 1, SupplierLeadTime: 2, Criticality: domain.CriticalityMedium},
	}))

	reportCache := cache.NewNoopReportCache()
	services := &Services{
		ProductService: service.NewProductService(repo, reportCache),
		ReportService:  service.NewReportService(repo, reportCache, nil, service.ReportOptions{}),
	}
	return NewRouter(services, []string{"*"})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestProductsCRUD(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/products", map[string]any{
		"name":                "Charlie",
		"current_stock":       3,
		"average_daily_sales": 0,
		"supplier_lead_time":  10,
		"criticality":         "low",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Nil(t, created["days_of_stock_remaining"])
	assert.Equal(t, false, created["needs_reorder"])

	w = do(t, router, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["total"])

	w = do(t, router, http.MethodPut, "/api/v1/products/"+id, map[string]any{
		"name":                "Charlie",
		"current_stock":       3,
		"average_daily_sales": 1,
		"supplier_lead_time":  10,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["needs_reorder"])

	w = do(t, router, http.MethodDelete, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_Invalid(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/products", map[string]any{"name": "Bad", "current_stock": -4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/products", map[string]any{"id": "a", "name": "Dup"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReorderReport(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/reports/reorder", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Reorder report generated successfully!", body["message"])
	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].(map[string]any)["product_id"])
}

func TestSimulationReport(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/reports/simulation", map[string]any{"product_id": "b", "multiplier": 100})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["simulating"])
	assert.Len(t, body["entries"], 2)

	w = do(t, router, http.MethodPost, "/api/v1/reports/simulation", map[string]any{"multiplier": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/reports/simulation", map[string]any{"product_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadCSV(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/reports/reorder/csv?simulate_product=b&multiplier=100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reorder_report.csv")
	assert.Contains(t, w.Body.String(), "Simulated Sales")

	w = do(t, router, http.MethodGet, "/api/v1/reports/reorder/csv?simulate_product=b&multiplier=lots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportWithoutStorage(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodPost, "/api/v1/reports/reorder/export", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadProducts(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", "catalogue.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,current_stock,average_daily_sales,supplier_lead_time,minimum_reorder_quantity,cost_per_unit\nDelta,1,1,1,0,2.335\nEcho,4,0,1,0,1\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), decode(t, w)["count"])

	w = do(t, router, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, float64(4), decode(t, w)["total"])
}

func TestUploadProducts_RejectsUnsupported(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("hello"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, allowAll = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, allowAll)
}
