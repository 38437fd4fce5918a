package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// --- Helpers ---

func testListing(centrisID string, price float64) *models.PropertyListing {
	return &models.PropertyListing{
		CentrisID: centrisID,
		Address:   "123 Rue Test, Montréal",
		Price:     price,
		Bedrooms:  2,
		Bathrooms: 1,
		URL:       "https://www.centris.ca/" + centrisID,
	}
}

func testForecast(monthlyRevenue float64) *models.RevenueForecast {
	return &models.RevenueForecast{
		NightlyRate:    140,
		OccupancyRate:  0.65,
		MonthlyRevenue: monthlyRevenue,
		AnnualRevenue:  monthlyRevenue * 12,
	}
}

func newTestService() *Service {
	return NewService(common.NewSilentLogger())
}

// --- Analyze ---

func TestAnalyzeComposesEngine(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()
	listing := testListing("11111111", 500000)
	forecast := testForecast(5000)

	result, err := svc.Analyze(listing, forecast, cfg)
	require.NoError(t, err)

	assert.Equal(t, 100000.0, result.DownPayment)
	assert.Equal(t, 15000.0, result.ClosingCosts)
	assert.Equal(t, 115000.0, result.TotalCashInvested)

	// Total folds the mortgage in; NOI is computed without it
	assert.Greater(t, result.MonthlyCosts.Mortgage, 0.0)
	operating := result.MonthlyCosts.OperatingTotal()
	assert.InDelta(t, (5000-operating)*12, result.NOI, 1e-6)
	assert.InDelta(t, 5000-result.MonthlyCosts.Total, result.MonthlyCashflow, 1e-6)
	assert.InDelta(t, result.MonthlyCashflow*12, result.AnnualCashflow, 1e-6)
	assert.InDelta(t, result.AnnualCashflow/115000*100, result.CashOnCashReturn, 1e-6)

	require.Len(t, result.Projections, cfg.ProjectionYears)
	// The outlook tracks cashflow after all costs, including debt service
	assert.InDelta(t, result.MonthlyCosts.Total*12, result.Projections[0].AnnualExpenses, 1e-6)
}

func TestAnalyzeDeterministic(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()
	listing := testListing("11111111", 450000)
	forecast := testForecast(4200)

	a, err := svc.Analyze(listing, forecast, cfg)
	require.NoError(t, err)
	b, err := svc.Analyze(listing, forecast, cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAnalyzeInvalidInputs(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()

	_, err := svc.Analyze(nil, testForecast(5000), cfg)
	require.Error(t, err)
	assert.True(t, models.IsInvalidInput(err))

	_, err = svc.Analyze(testListing("11111111", 500000), nil, cfg)
	require.Error(t, err)
	assert.True(t, models.IsInvalidInput(err))

	_, err = svc.Analyze(testListing("11111111", 0), testForecast(5000), cfg)
	require.Error(t, err)
	assert.True(t, models.IsInvalidInput(err))
}

// --- AnalyzeBatch ---

func TestAnalyzeBatchDeduplicates(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()

	listings := []*models.PropertyListing{
		testListing("11111111", 400000),
		testListing("22222222", 500000),
		testListing("11111111", 999000), // duplicate id, different price
	}
	forecasts := []*models.RevenueForecast{
		testForecast(4000),
		testForecast(5000),
		testForecast(9000),
	}

	result, err := svc.AnalyzeBatch(context.Background(), listings, forecasts, cfg)
	require.NoError(t, err)
	require.Len(t, result.Properties, 2)

	// First-seen wins, in input order
	assert.Equal(t, "11111111", result.Properties[0].Listing.CentrisID)
	assert.Equal(t, 400000.0, result.Properties[0].Listing.Price)
	assert.Equal(t, "22222222", result.Properties[1].Listing.CentrisID)
	assert.Empty(t, result.Failures)
}

func TestAnalyzeBatchPartialFailure(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()

	listings := []*models.PropertyListing{
		testListing("11111111", 400000),
		testListing("22222222", 0), // invalid price
		testListing("33333333", 600000),
	}
	forecasts := []*models.RevenueForecast{
		testForecast(4000),
		testForecast(5000),
		testForecast(6000),
	}

	result, err := svc.AnalyzeBatch(context.Background(), listings, forecasts, cfg)
	require.NoError(t, err)

	require.Len(t, result.Properties, 2)
	assert.Equal(t, "11111111", result.Properties[0].Listing.CentrisID)
	assert.Equal(t, "33333333", result.Properties[1].Listing.CentrisID)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "22222222", result.Failures[0].CentrisID)
	assert.NotEmpty(t, result.Failures[0].Error)

	// Stats cover successful analyses only
	assert.Equal(t, 2, result.Stats.Count)
}

func TestAnalyzeBatchLengthMismatch(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()

	_, err := svc.AnalyzeBatch(context.Background(),
		[]*models.PropertyListing{testListing("11111111", 400000)},
		nil, cfg)
	require.Error(t, err)
	assert.True(t, models.IsInvalidInput(err))
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()

	result, err := svc.AnalyzeBatch(context.Background(), nil, nil, cfg)
	require.NoError(t, err)

	assert.Empty(t, result.Properties)
	assert.Empty(t, result.Failures)
	assert.Equal(t, models.PortfolioStats{}, result.Stats)
}

func TestAnalyzeBatchStableOrderAcrossRuns(t *testing.T) {
	svc := newTestService()
	cfg := models.DefaultFinancialConfig()

	var listings []*models.PropertyListing
	var forecasts []*models.RevenueForecast
	for _, id := range []string{"55", "33", "99", "11", "77", "22", "88", "44"} {
		listings = append(listings, testListing(id, 400000))
		forecasts = append(forecasts, testForecast(4000))
	}

	first, err := svc.AnalyzeBatch(context.Background(), listings, forecasts, cfg)
	require.NoError(t, err)

	// Parallel execution must not leak scheduling order into the result
	for i := 0; i < 5; i++ {
		again, err := svc.AnalyzeBatch(context.Background(), listings, forecasts, cfg)
		require.NoError(t, err)
		require.Len(t, again.Properties, len(first.Properties))
		for j := range first.Properties {
			assert.Equal(t, first.Properties[j].Listing.CentrisID, again.Properties[j].Listing.CentrisID)
		}
	}
}

// --- Stats and sorting ---

func TestComputePortfolioStats(t *testing.T) {
	props := []*models.AnalyzedProperty{
		{Analysis: &models.InvestmentAnalysis{MonthlyCashflow: 500, CashOnCashReturn: 5, CapRate: 4}},
		{Analysis: &models.InvestmentAnalysis{MonthlyCashflow: -200, CashOnCashReturn: -2, CapRate: 2}},
		{Analysis: &models.InvestmentAnalysis{MonthlyCashflow: 900, CashOnCashReturn: 9, CapRate: 6}},
	}

	stats := ComputePortfolioStats(props)

	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 400.0, stats.AvgMonthlyCashflow, 1e-9)
	assert.InDelta(t, 4.0, stats.AvgCashOnCashReturn, 1e-9)
	assert.InDelta(t, 4.0, stats.AvgCapRate, 1e-9)
	assert.Equal(t, 2, stats.PositiveCashflowCount)
	assert.Equal(t, 9.0, stats.BestReturn)
}

func TestComputePortfolioStatsEmpty(t *testing.T) {
	assert.Equal(t, models.PortfolioStats{}, ComputePortfolioStats(nil))
}

func TestSortAnalyzed(t *testing.T) {
	props := []*models.AnalyzedProperty{
		{Listing: models.PropertyListing{CentrisID: "a"}, Analysis: &models.InvestmentAnalysis{CashOnCashReturn: 5}},
		{Listing: models.PropertyListing{CentrisID: "b"}, Analysis: &models.InvestmentAnalysis{CashOnCashReturn: 12}},
		{Listing: models.PropertyListing{CentrisID: "c"}, Analysis: &models.InvestmentAnalysis{CashOnCashReturn: -3}},
	}

	SortAnalyzed(props, models.SortByCashOnCashReturn, true)
	assert.Equal(t, []string{"b", "a", "c"}, sortedIDs(props))

	SortAnalyzed(props, models.SortByCashOnCashReturn, false)
	assert.Equal(t, []string{"c", "a", "b"}, sortedIDs(props))
}

func TestSortAnalyzedStableOnTies(t *testing.T) {
	props := []*models.AnalyzedProperty{
		{Listing: models.PropertyListing{CentrisID: "first"}, Analysis: &models.InvestmentAnalysis{CapRate: 5}},
		{Listing: models.PropertyListing{CentrisID: "second"}, Analysis: &models.InvestmentAnalysis{CapRate: 5}},
		{Listing: models.PropertyListing{CentrisID: "third"}, Analysis: &models.InvestmentAnalysis{CapRate: 5}},
	}

	SortAnalyzed(props, models.SortByCapRate, true)
	assert.Equal(t, []string{"first", "second", "third"}, sortedIDs(props))
}

func sortedIDs(props []*models.AnalyzedProperty) []string {
	ids := make([]string, len(props))
	for i, p := range props {
		ids[i] = p.Listing.CentrisID
	}
	return ids
}
