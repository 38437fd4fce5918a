package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/interfaces"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// Compile-time interface check
var _ interfaces.AnalysisService = (*Service)(nil)

// Service implements AnalysisService. It is stateless: every result is a
// deterministic function of the listing, forecast, and config supplied to
// the call, so a single Service is safe for concurrent use.
type Service struct {
	logger *common.Logger
}

// NewService creates a new analysis service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Analyze composes mortgage, expense, return, and projection math into one
// InvestmentAnalysis for a single listing+forecast pair.
func (s *Service) Analyze(listing *models.PropertyListing, forecast *models.RevenueForecast, cfg models.FinancialConfig) (*models.InvestmentAnalysis, error) {
	if listing == nil {
		return nil, &models.InvalidInputError{Field: "listing", Reason: "is required"}
	}
	if forecast == nil {
		return nil, &models.InvalidInputError{Field: "forecast", Reason: "is required"}
	}

	mortgage, err := ComputeMortgage(listing.Price, cfg)
	if err != nil {
		return nil, fmt.Errorf("mortgage calculation failed: %w", err)
	}

	costs, err := ComputeExpenses(listing.Price, forecast.MonthlyRevenue, forecast.NightlyRate, cfg)
	if err != nil {
		return nil, fmt.Errorf("expense estimation failed: %w", err)
	}

	// Operating costs exclude the mortgage; fold it into the total here.
	costs.Mortgage = mortgage.MonthlyPayment
	operatingTotal := costs.Total
	costs.Total += mortgage.MonthlyPayment

	closingCosts := listing.Price * cfg.ClosingCostRate

	metrics, err := ComputeReturns(
		listing.Price,
		mortgage.DownPayment,
		closingCosts,
		forecast.MonthlyRevenue,
		costs.Total,
		operatingTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("return calculation failed: %w", err)
	}

	result := &models.InvestmentAnalysis{
		DownPayment:       mortgage.DownPayment,
		ClosingCosts:      closingCosts,
		TotalCashInvested: mortgage.DownPayment + closingCosts,
		MonthlyCosts:      costs,
		MonthlyRevenue:    forecast.MonthlyRevenue,
		MonthlyCashflow:   metrics.MonthlyCashflow,
		AnnualCashflow:    metrics.AnnualCashflow,
		NOI:               metrics.NOI,
		CapRate:           metrics.CapRate,
		CashOnCashReturn:  metrics.CashOnCashReturn,
	}

	// Annual expenses for the outlook include debt service: the projection
	// tracks cashflow after all costs, not NOI.
	result.Projections = Project(listing.Price, forecast.MonthlyRevenue*12, costs.Total*12, cfg)

	return result, nil
}

// AnalyzeBatch analyzes listings best-effort. Duplicate centris_ids keep the
// first entry in input order; failed items are reported, not fatal. Each
// retained item pairs with the forecast at its original input index.
// Per-item analyses run in parallel (the engine is pure) and results fold
// back into stable input order.
func (s *Service) AnalyzeBatch(ctx context.Context, listings []*models.PropertyListing, forecasts []*models.RevenueForecast, cfg models.FinancialConfig) (*models.BatchResult, error) {
	if len(listings) != len(forecasts) {
		return nil, &models.InvalidInputError{Field: "forecasts", Reason: fmt.Sprintf("length %d does not match listings length %d", len(forecasts), len(listings))}
	}

	// Deduplicate by centris_id, first-seen wins, preserving input order.
	type batchItem struct {
		listing  *models.PropertyListing
		forecast *models.RevenueForecast
	}
	seen := make(map[string]bool, len(listings))
	items := make([]batchItem, 0, len(listings))
	for i, l := range listings {
		if l == nil {
			continue
		}
		if seen[l.CentrisID] {
			s.logger.Debug().Str("centris_id", l.CentrisID).Msg("Skipping duplicate listing")
			continue
		}
		seen[l.CentrisID] = true
		items = append(items, batchItem{listing: l, forecast: forecasts[i]})
	}

	type itemResult struct {
		property *models.AnalyzedProperty
		failure  *models.BatchFailure
	}
	results := make([]itemResult, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item batchItem) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[i].failure = &models.BatchFailure{
					CentrisID: item.listing.CentrisID,
					Address:   item.listing.Address,
					Error:     err.Error(),
				}
				return
			}

			analysis, err := s.Analyze(item.listing, item.forecast, cfg)
			if err != nil {
				results[i].failure = &models.BatchFailure{
					CentrisID: item.listing.CentrisID,
					Address:   item.listing.Address,
					Error:     err.Error(),
				}
				return
			}
			results[i].property = &models.AnalyzedProperty{
				Listing:  *item.listing,
				Summary:  BuildSummary(item.listing, item.forecast, analysis),
				Forecast: *item.forecast,
				Analysis: analysis,
			}
		}(i, item)
	}
	wg.Wait()

	// Fold in input order: goroutine scheduling must not affect output.
	out := &models.BatchResult{
		Properties: make([]*models.AnalyzedProperty, 0, len(items)),
	}
	for _, r := range results {
		if r.property != nil {
			out.Properties = append(out.Properties, r.property)
		} else if r.failure != nil {
			out.Failures = append(out.Failures, *r.failure)
		}
	}

	out.Stats = ComputePortfolioStats(out.Properties)

	if len(out.Failures) > 0 {
		s.logger.Warn().
			Int("analyzed", len(out.Properties)).
			Int("failed", len(out.Failures)).
			Msg("Batch analysis completed with failures")
	}

	return out, nil
}

// ComputePortfolioStats folds analyses into portfolio aggregates. An empty
// batch yields zeroed stats rather than an error.
func ComputePortfolioStats(properties []*models.AnalyzedProperty) models.PortfolioStats {
	stats := models.PortfolioStats{Count: len(properties)}
	if len(properties) == 0 {
		return stats
	}

	best := properties[0].Analysis.CashOnCashReturn
	var sumCashflow, sumCoC, sumCapRate float64

	for _, p := range properties {
		a := p.Analysis
		sumCashflow += a.MonthlyCashflow
		sumCoC += a.CashOnCashReturn
		sumCapRate += a.CapRate
		if a.MonthlyCashflow > 0 {
			stats.PositiveCashflowCount++
		}
		if a.CashOnCashReturn > best {
			best = a.CashOnCashReturn
		}
	}

	n := float64(len(properties))
	stats.AvgMonthlyCashflow = sumCashflow / n
	stats.AvgCashOnCashReturn = sumCoC / n
	stats.AvgCapRate = sumCapRate / n
	stats.BestReturn = best
	return stats
}

// SortAnalyzed orders analyzed properties by a numeric analysis field.
// The sort is stable: equal keys keep their original relative order.
func SortAnalyzed(properties []*models.AnalyzedProperty, field models.SortField, descending bool) {
	sort.SliceStable(properties, func(i, j int) bool {
		vi := field.Value(properties[i].Analysis)
		vj := field.Value(properties[j].Analysis)
		if descending {
			return vi > vj
		}
		return vi < vj
	})
}

// BuildSummary assembles the card-level view from the full analysis.
func BuildSummary(listing *models.PropertyListing, forecast *models.RevenueForecast, analysis *models.InvestmentAnalysis) models.PropertySummary {
	return models.PropertySummary{
		Address:          listing.Address,
		Price:            listing.Price,
		CentrisURL:       listing.URL,
		ImageURL:         listing.ImageURL,
		Bedrooms:         listing.Bedrooms,
		Bathrooms:        listing.Bathrooms,
		Sqft:             listing.Sqft,
		DownPayment:      analysis.DownPayment,
		MonthlyMortgage:  analysis.MonthlyCosts.Mortgage,
		MonthlyRevenue:   forecast.MonthlyRevenue,
		MonthlyCashflow:  analysis.MonthlyCashflow,
		CashOnCashReturn: analysis.CashOnCashReturn,
		CapRate:          analysis.CapRate,
	}
}
