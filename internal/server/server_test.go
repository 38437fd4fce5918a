package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/app"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/services/analysis"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/services/forecast"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/storage"
)

// --- Helpers ---

// newTestServer builds an app on a throwaway store and returns its handler.
func newTestServer(t *testing.T) (*app.App, http.Handler) {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	logger := common.NewSilentLogger()

	storageManager, err := storage.NewManager(logger, cfg.Storage)
	require.NoError(t, err)
	t.Cleanup(func() { storageManager.Close() })

	a := &app.App{
		Config:          cfg,
		Logger:          logger,
		Storage:         storageManager,
		AnalysisService: analysis.NewService(logger),
		ForecastService: forecast.NewService(cfg.Forecast, logger),
		StartupTime:     time.Now(),
	}

	return a, NewServer(a).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func testListing(centrisID string, price float64) models.PropertyListing {
	return models.PropertyListing{
		CentrisID: centrisID,
		Address:   "321 Boulevard Saint-Laurent, Montréal",
		Price:     price,
		Bedrooms:  2,
		Bathrooms: 1,
		URL:       "https://www.centris.ca/" + centrisID,
	}
}

func saveListing(t *testing.T, a *app.App, listing models.PropertyListing) {
	t.Helper()
	require.NoError(t, a.Storage.PropertyStore().SaveProperty(context.Background(), &listing))
}

// --- System endpoints ---

func TestHealthEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = doJSON(t, handler, http.MethodPost, "/api/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestVersionEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/version", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "build")
}

func TestConfigEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/config", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "development", body["environment"])
	assert.Contains(t, body, "financial")
	assert.Contains(t, body, "forecast")
}

func TestCORSPreflightAndHeaders(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

// --- Analysis endpoints ---

func TestAnalyzeInlineListings(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/analyze", map[string]interface{}{
		"use_stored": false,
		"listings": []models.PropertyListing{
			testListing("11111111", 400000),
			testListing("22222222", 550000),
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])

	props := body["properties"].([]interface{})
	require.Len(t, props, 2)

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["count"])
}

func TestAnalyzeUsesStoredByDefault(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))

	rec, body := doJSON(t, handler, http.MethodPost, "/api/analyze", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
}

func TestAnalyzeSortsByCashOnCashDescending(t *testing.T) {
	_, handler := newTestServer(t)

	// Identical revenue assumptions: the cheaper property returns more
	rec, body := doJSON(t, handler, http.MethodPost, "/api/analyze", map[string]interface{}{
		"use_stored": false,
		"listings": []models.PropertyListing{
			testListing("11111111", 700000),
			testListing("22222222", 350000),
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	props := body["properties"].([]interface{})
	require.Len(t, props, 2)

	first := props[0].(map[string]interface{})["listing"].(map[string]interface{})
	assert.Equal(t, "22222222", first["centris_id"])
}

func TestPropertiesSortParam(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))
	saveListing(t, a, testListing("22222222", 600000))

	rec, body := doJSON(t, handler, http.MethodGet, "/api/properties?sort_by=down_payment&order=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	props := body["properties"].([]interface{})
	require.Len(t, props, 2)
	first := props[0].(map[string]interface{})["listing"].(map[string]interface{})
	assert.Equal(t, "11111111", first["centris_id"])

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/properties?sort_by=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPropertyGet(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))

	rec, body := doJSON(t, handler, http.MethodGet, "/api/property/11111111", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	prop := body["property"].(map[string]interface{})
	assert.Contains(t, prop, "listing")
	assert.Contains(t, prop, "airbnb_forecast")
	assert.Contains(t, prop, "investment_analysis")

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/property/00000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPropertyChart(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))

	req := httptest.NewRequest(http.MethodGet, "/api/property/11111111/chart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Greater(t, rec.Body.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

func TestForecastEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/forecast", map[string]interface{}{
		"price":    450000,
		"bedrooms": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["analysis"].(map[string]interface{})
	forecast := result["airbnb_forecast"].(map[string]interface{})
	assert.Equal(t, 140.0, forecast["nightly_rate"])
	assert.Contains(t, result, "investment_analysis")
}

func TestForecastEndpointValidation(t *testing.T) {
	_, handler := newTestServer(t)

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/forecast", map[string]interface{}{"bedrooms": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodPost, "/api/forecast", map[string]interface{}{"price": 450000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodPost, "/api/forecast", map[string]interface{}{"price": -5, "bedrooms": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Admin endpoints ---

func TestAdminSaveAndListProperties(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/admin/properties", testListing("11111111", 400000))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])

	rec, body = doJSON(t, handler, http.MethodGet, "/api/admin/properties", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
	assert.Contains(t, body, "last_updated")
}

func TestAdminSaveRejectsInvalid(t *testing.T) {
	_, handler := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/admin/properties", map[string]interface{}{
		"centris_id": "11111111",
		"price":      0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "error")
}

func TestAdminDeleteProperty(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))

	rec, _ := doJSON(t, handler, http.MethodDelete, "/api/admin/properties/11111111", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodDelete, "/api/admin/properties/11111111", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminClearProperties(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))
	saveListing(t, a, testListing("22222222", 500000))

	rec, body := doJSON(t, handler, http.MethodPost, "/api/admin/properties/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["deleted"])
}

func TestAdminStats(t *testing.T) {
	a, handler := newTestServer(t)
	saveListing(t, a, testListing("11111111", 400000))

	rec, body := doJSON(t, handler, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
}
