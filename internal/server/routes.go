package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Analysis
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/properties", s.handleProperties)
	mux.HandleFunc("/api/property/", s.routeProperty)
	mux.HandleFunc("/api/forecast", s.handleForecast)

	// Admin — stored property CRUD
	mux.HandleFunc("/api/admin/properties/clear", s.handleAdminClear)
	mux.HandleFunc("/api/admin/properties/", s.handleAdminPropertyDelete)
	mux.HandleFunc("/api/admin/properties", s.handleAdminProperties)
	mux.HandleFunc("/api/admin/stats", s.handleAdminStats)
}

// routeProperty dispatches /api/property/{id} and /api/property/{id}/chart.
func (s *Server) routeProperty(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/property/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "property id is required in path")
		return
	}

	if strings.HasSuffix(path, "/chart") {
		id := strings.TrimSuffix(path, "/chart")
		s.handlePropertyChart(w, r, id)
		return
	}

	s.handlePropertyGet(w, r, path)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment": s.app.Config.Environment,
		"uptime":      uptime.String(),
		"started_at":  s.app.StartupTime,
		"financial":   s.app.Config.Financial,
		"forecast": map[string]interface{}{
			"occupancy_rate":    s.app.Config.Forecast.OccupancyRate,
			"min_nightly_rate":  s.app.Config.Forecast.MinNightlyRate,
			"host_revenue_rate": s.app.Config.Forecast.HostRevenueRate,
		},
	})
}
