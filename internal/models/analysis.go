package models

import "fmt"

// Mortgage is the financing breakdown for a purchase.
type Mortgage struct {
	DownPayment    float64 `json:"down_payment"`
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// MonthlyCostBreakdown itemizes recurring monthly costs. Every field is
// derived; nothing here is stored independently of its inputs.
type MonthlyCostBreakdown struct {
	Mortgage    float64 `json:"mortgage"`
	PropertyTax float64 `json:"property_tax"`
	Insurance   float64 `json:"insurance"`
	Maintenance float64 `json:"maintenance"`
	CondoFee    float64 `json:"condo_fee"`
	Utilities   float64 `json:"utilities"`
	Management  float64 `json:"management"`
	Cleaning    float64 `json:"cleaning"`
	Total       float64 `json:"total"`
}

// OperatingTotal returns the monthly cost excluding debt service.
func (m MonthlyCostBreakdown) OperatingTotal() float64 {
	return m.Total - m.Mortgage
}

// ReturnMetrics holds the profitability measures for one property.
type ReturnMetrics struct {
	MonthlyCashflow  float64 `json:"monthly_cashflow"`
	AnnualCashflow   float64 `json:"annual_cashflow"`
	NOI              float64 `json:"noi"`
	CapRate          float64 `json:"cap_rate"`
	CashOnCashReturn float64 `json:"cash_on_cash_return"`
}

// InvestmentAnalysis is the full derived result for one listing+forecast
// pair. It carries no identity beyond the pair that produced it.
type InvestmentAnalysis struct {
	DownPayment       float64              `json:"down_payment"`
	ClosingCosts      float64              `json:"closing_costs"`
	TotalCashInvested float64              `json:"total_cash_invested"`
	MonthlyCosts      MonthlyCostBreakdown `json:"monthly_costs"`
	MonthlyRevenue    float64              `json:"monthly_revenue"`
	MonthlyCashflow   float64              `json:"monthly_cashflow"`
	AnnualCashflow    float64              `json:"annual_cashflow"`
	NOI               float64              `json:"noi"`
	CapRate           float64              `json:"cap_rate"`
	CashOnCashReturn  float64              `json:"cash_on_cash_return"`
	Projections       []ProjectionRow      `json:"projections,omitempty"`
}

// ProjectionRow is one year of the multi-year outlook. Year 1 is the first
// full year after acquisition.
type ProjectionRow struct {
	Year                   int     `json:"year"`
	AnnualRevenue          float64 `json:"annual_revenue"`
	AnnualExpenses         float64 `json:"annual_expenses"`
	NetCashflow            float64 `json:"net_cashflow"`
	CumulativeCashflow     float64 `json:"cumulative_cashflow"`
	ProjectedPropertyValue float64 `json:"projected_property_value"`
}

// AnalyzedProperty bundles a listing with its forecast and analysis, the
// shape returned by the analyze endpoints.
type AnalyzedProperty struct {
	Listing  PropertyListing     `json:"listing"`
	Summary  PropertySummary     `json:"summary"`
	Forecast RevenueForecast     `json:"airbnb_forecast"`
	Analysis *InvestmentAnalysis `json:"investment_analysis"`
}

// PortfolioStats aggregates a batch of analyses. Recomputed per request,
// never cached.
type PortfolioStats struct {
	Count                 int     `json:"count"`
	AvgMonthlyCashflow    float64 `json:"avg_monthly_cashflow"`
	AvgCashOnCashReturn   float64 `json:"avg_cash_on_cash_return"`
	AvgCapRate            float64 `json:"avg_cap_rate"`
	PositiveCashflowCount int     `json:"positive_cashflow_count"`
	BestReturn            float64 `json:"best_return"`
}

// BatchFailure records one listing that failed analysis within a batch.
type BatchFailure struct {
	CentrisID string `json:"centris_id"`
	Address   string `json:"address,omitempty"`
	Error     string `json:"error"`
}

// BatchResult is the outcome of a best-effort batch analysis: successful
// analyses in stable input order, per-item failures, and aggregate stats.
type BatchResult struct {
	Properties []*AnalyzedProperty `json:"properties"`
	Failures   []BatchFailure      `json:"failures,omitempty"`
	Stats      PortfolioStats      `json:"stats"`
}

// SortField identifies a sortable numeric field of InvestmentAnalysis.
type SortField string

const (
	SortByCashOnCashReturn SortField = "cash_on_cash_return"
	SortByCapRate          SortField = "cap_rate"
	SortByMonthlyCashflow  SortField = "monthly_cashflow"
	SortByAnnualCashflow   SortField = "annual_cashflow"
	SortByNOI              SortField = "noi"
	SortByMonthlyRevenue   SortField = "monthly_revenue"
	SortByDownPayment      SortField = "down_payment"
)

// ParseSortField resolves a field name to a SortField, defaulting to
// cash_on_cash_return for empty input.
func ParseSortField(name string) (SortField, error) {
	switch SortField(name) {
	case SortByCashOnCashReturn, SortByCapRate, SortByMonthlyCashflow,
		SortByAnnualCashflow, SortByNOI, SortByMonthlyRevenue, SortByDownPayment:
		return SortField(name), nil
	case "":
		return SortByCashOnCashReturn, nil
	default:
		return "", fmt.Errorf("unknown sort field '%s'", name)
	}
}

// Value extracts the sort key from an analysis.
func (f SortField) Value(a *InvestmentAnalysis) float64 {
	switch f {
	case SortByCapRate:
		return a.CapRate
	case SortByMonthlyCashflow:
		return a.MonthlyCashflow
	case SortByAnnualCashflow:
		return a.AnnualCashflow
	case SortByNOI:
		return a.NOI
	case SortByMonthlyRevenue:
		return a.MonthlyRevenue
	case SortByDownPayment:
		return a.DownPayment
	default:
		return a.CashOnCashReturn
	}
}
