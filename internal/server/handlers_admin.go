package server

import (
	"net/http"
	"strings"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// --- Admin handlers: stored property CRUD ---

// handleAdminProperties handles /api/admin/properties:
// GET lists stored listings (raw, no analysis); POST saves one.
func (s *Server) handleAdminProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listStoredProperties(w, r)
	case http.MethodPost:
		s.saveStoredProperty(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) listStoredProperties(w http.ResponseWriter, r *http.Request) {
	store := s.app.Storage.PropertyStore()

	properties, err := store.ListProperties(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list properties")
		WriteError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}

	resp := map[string]interface{}{
		"success":    true,
		"count":      len(properties),
		"properties": properties,
	}
	if lastUpdated, err := store.LastUpdated(r.Context()); err == nil && !lastUpdated.IsZero() {
		resp["last_updated"] = lastUpdated
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) saveStoredProperty(w http.ResponseWriter, r *http.Request) {
	var listing models.PropertyListing
	if !DecodeJSON(w, r, &listing) {
		return
	}

	if err := listing.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.Storage.PropertyStore().SaveProperty(r.Context(), &listing); err != nil {
		if models.IsInvalidInput(err) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("centris_id", listing.CentrisID).Msg("Failed to save property")
		WriteError(w, http.StatusInternalServerError, "failed to save property")
		return
	}

	s.logger.Info().Str("centris_id", listing.CentrisID).Str("address", listing.Address).Msg("Property saved")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"property": listing,
	})
}

// handleAdminPropertyDelete handles DELETE /api/admin/properties/{id}.
func (s *Server) handleAdminPropertyDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	centrisID := strings.TrimPrefix(r.URL.Path, "/api/admin/properties/")
	if centrisID == "" || strings.Contains(centrisID, "/") {
		WriteError(w, http.StatusBadRequest, "property id is required in path")
		return
	}

	store := s.app.Storage.PropertyStore()
	if _, err := store.GetProperty(r.Context(), centrisID); err != nil {
		WriteError(w, http.StatusNotFound, "Property not found")
		return
	}

	if err := store.DeleteProperty(r.Context(), centrisID); err != nil {
		s.logger.Error().Err(err).Str("centris_id", centrisID).Msg("Failed to delete property")
		WriteError(w, http.StatusInternalServerError, "failed to delete property")
		return
	}

	s.logger.Info().Str("centris_id", centrisID).Msg("Property deleted")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"centris_id": centrisID,
	})
}

// handleAdminClear handles POST /api/admin/properties/clear — removes all
// stored listings and reports how many were deleted.
func (s *Server) handleAdminClear(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	deleted, err := s.app.Storage.PropertyStore().ClearProperties(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear properties")
		WriteError(w, http.StatusInternalServerError, "failed to clear properties")
		return
	}

	s.logger.Info().Int("deleted", deleted).Msg("Property store cleared")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

// handleAdminStats handles GET /api/admin/stats.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	store := s.app.Storage.PropertyStore()

	count, err := store.CountProperties(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count properties")
		WriteError(w, http.StatusInternalServerError, "failed to count properties")
		return
	}

	resp := map[string]interface{}{
		"success": true,
		"count":   count,
	}
	if lastUpdated, err := store.LastUpdated(r.Context()); err == nil && !lastUpdated.IsZero() {
		resp["last_updated"] = lastUpdated
	}

	WriteJSON(w, http.StatusOK, resp)
}
