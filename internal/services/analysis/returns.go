package analysis

import (
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// ComputeReturns combines revenue and cost totals into profitability metrics.
// NOI excludes debt service by definition, so two cost totals are needed:
// one with the mortgage payment and one without. Negative cashflow and
// returns are valid outputs and are never clamped.
func ComputeReturns(price, downPayment, closingCosts, monthlyRevenue, totalWithMortgage, totalWithoutMortgage float64) (models.ReturnMetrics, error) {
	if price <= 0 {
		return models.ReturnMetrics{}, &models.InvalidInputError{Field: "price", Reason: "must be positive"}
	}

	totalCashInvested := downPayment + closingCosts
	if totalCashInvested <= 0 {
		return models.ReturnMetrics{}, &models.InvalidInputError{Field: "total_cash_invested", Reason: "must be positive"}
	}

	monthlyCashflow := monthlyRevenue - totalWithMortgage
	annualCashflow := monthlyCashflow * 12
	noi := (monthlyRevenue - totalWithoutMortgage) * 12

	return models.ReturnMetrics{
		MonthlyCashflow:  monthlyCashflow,
		AnnualCashflow:   annualCashflow,
		NOI:              noi,
		CapRate:          (noi / price) * 100,
		CashOnCashReturn: (annualCashflow / totalCashInvested) * 100,
	}, nil
}
