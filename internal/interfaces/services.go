// Package interfaces defines service contracts for the cashflow analyzer
package interfaces

import (
	"context"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// AnalysisService is the financial modeling engine. Every operation is a
// pure function of its inputs plus the supplied FinancialConfig; the service
// holds no mutable state and is safe for concurrent use.
type AnalysisService interface {
	// Analyze produces the full investment analysis for one listing.
	Analyze(listing *models.PropertyListing, forecast *models.RevenueForecast, cfg models.FinancialConfig) (*models.InvestmentAnalysis, error)

	// AnalyzeBatch analyzes listings best-effort: duplicates (by centris_id)
	// are dropped first-seen-wins, failed items are reported in the result
	// rather than aborting, and portfolio stats are folded over the successes.
	AnalyzeBatch(ctx context.Context, listings []*models.PropertyListing, forecasts []*models.RevenueForecast, cfg models.FinancialConfig) (*models.BatchResult, error)
}

// ForecastService estimates short-term-rental revenue for a listing.
type ForecastService interface {
	ForecastRevenue(listing *models.PropertyListing) *models.RevenueForecast
}
