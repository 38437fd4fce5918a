package server

import (
	"net/http"
	"strings"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/services/analysis"
)

// --- Analysis handlers ---

// handleAnalyze handles POST /api/analyze — batch investment analysis.
// Stored properties are analyzed by default; callers may supply additional
// listings inline and cap the batch size.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Listings    []models.PropertyListing `json:"listings"`
		UseStored   *bool                    `json:"use_stored"`
		MaxListings int                      `json:"max_listings"`
	}
	// An empty body means "analyze everything stored"
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	useStored := req.UseStored == nil || *req.UseStored

	ctx := r.Context()
	var listings []*models.PropertyListing

	if useStored {
		stored, err := s.app.Storage.PropertyStore().ListProperties(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to load stored properties")
			WriteError(w, http.StatusInternalServerError, "failed to load stored properties")
			return
		}
		listings = append(listings, stored...)
	}

	for i := range req.Listings {
		listings = append(listings, &req.Listings[i])
	}

	if req.MaxListings > 0 && len(listings) > req.MaxListings {
		listings = listings[:req.MaxListings]
	}

	result, err := s.analyzeListings(r, listings)
	if err != nil {
		s.logger.Error().Err(err).Msg("Batch analysis failed")
		WriteError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	analysis.SortAnalyzed(result.Properties, models.SortByCashOnCashReturn, true)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(result.Properties),
		"properties": result.Properties,
		"failures":   result.Failures,
		"stats":      result.Stats,
	})
}

// handleProperties handles GET /api/properties — analyzed stored properties
// with caller-selected ordering.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sortField, err := models.ParseSortField(r.URL.Query().Get("sort_by"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	descending := !strings.EqualFold(r.URL.Query().Get("order"), "asc")

	stored, err := s.app.Storage.PropertyStore().ListProperties(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load stored properties")
		WriteError(w, http.StatusInternalServerError, "failed to load stored properties")
		return
	}

	result, err := s.analyzeListings(r, stored)
	if err != nil {
		s.logger.Error().Err(err).Msg("Batch analysis failed")
		WriteError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	analysis.SortAnalyzed(result.Properties, sortField, descending)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(result.Properties),
		"properties": result.Properties,
		"stats":      result.Stats,
	})
}

// handlePropertyGet handles GET /api/property/{id} — one stored listing,
// freshly analyzed.
func (s *Server) handlePropertyGet(w http.ResponseWriter, r *http.Request, centrisID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	prop, ok := s.analyzeOne(w, r, centrisID)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"property": prop,
	})
}

// handlePropertyChart handles GET /api/property/{id}/chart — a PNG chart of
// the multi-year outlook.
func (s *Server) handlePropertyChart(w http.ResponseWriter, r *http.Request, centrisID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	prop, ok := s.analyzeOne(w, r, centrisID)
	if !ok {
		return
	}

	png, err := analysis.RenderProjectionChart(prop.Analysis.Projections)
	if err != nil {
		s.logger.Error().Err(err).Str("centris_id", centrisID).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleForecast handles POST /api/forecast — ad-hoc analysis of a property
// that is not stored. Bedrooms and a positive price are required.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Price     *float64 `json:"price"`
		Bedrooms  *int     `json:"bedrooms"`
		Bathrooms int      `json:"bathrooms"`
		Sqft      float64  `json:"sqft"`
		Address   string   `json:"address"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Price == nil {
		WriteError(w, http.StatusBadRequest, "missing required field: price")
		return
	}
	if req.Bedrooms == nil {
		WriteError(w, http.StatusBadRequest, "missing required field: bedrooms")
		return
	}
	if *req.Price <= 0 {
		WriteError(w, http.StatusBadRequest, "price must be positive")
		return
	}

	listing := &models.PropertyListing{
		CentrisID: "custom",
		Address:   req.Address,
		Price:     *req.Price,
		Bedrooms:  *req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Sqft:      req.Sqft,
		URL:       "#",
	}
	if listing.Address == "" {
		listing.Address = "Custom Property"
	}
	if listing.Bathrooms == 0 {
		listing.Bathrooms = 1
	}

	forecast := s.app.ForecastService.ForecastRevenue(listing)
	result, err := s.app.AnalysisService.Analyze(listing, forecast, s.app.Config.Financial)
	if err != nil {
		if models.IsInvalidInput(err) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Forecast analysis failed")
		WriteError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"analysis": models.AnalyzedProperty{
			Listing:  *listing,
			Summary:  analysis.BuildSummary(listing, forecast, result),
			Forecast: *forecast,
			Analysis: result,
		},
	})
}

// analyzeListings forecasts revenue for each listing and runs the batch.
func (s *Server) analyzeListings(r *http.Request, listings []*models.PropertyListing) (*models.BatchResult, error) {
	forecasts := make([]*models.RevenueForecast, len(listings))
	for i, l := range listings {
		forecasts[i] = s.app.ForecastService.ForecastRevenue(l)
	}
	return s.app.AnalysisService.AnalyzeBatch(r.Context(), listings, forecasts, s.app.Config.Financial)
}

// analyzeOne loads a stored listing and analyzes it, writing the error
// response itself when something goes wrong.
func (s *Server) analyzeOne(w http.ResponseWriter, r *http.Request, centrisID string) (*models.AnalyzedProperty, bool) {
	listing, err := s.app.Storage.PropertyStore().GetProperty(r.Context(), centrisID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Property not found")
		return nil, false
	}

	forecast := s.app.ForecastService.ForecastRevenue(listing)
	result, err := s.app.AnalysisService.Analyze(listing, forecast, s.app.Config.Financial)
	if err != nil {
		if models.IsInvalidInput(err) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		s.logger.Error().Err(err).Str("centris_id", centrisID).Msg("Analysis failed")
		WriteError(w, http.StatusInternalServerError, "analysis failed")
		return nil, false
	}

	return &models.AnalyzedProperty{
		Listing:  *listing,
		Summary:  analysis.BuildSummary(listing, forecast, result),
		Forecast: *forecast,
		Analysis: result,
	}, true
}
