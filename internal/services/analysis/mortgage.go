// Package analysis implements the financial modeling engine: fixed-rate
// amortization, operating-cost estimation, return metrics, and multi-year
// cashflow projection.
package analysis

import (
	"math"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// ComputeMortgage derives the financing breakdown for a purchase price using
// the standard amortization formula:
//
//	P = L[c(1 + c)^n]/[(1 + c)^n - 1]
//
// where L is the principal, c the monthly rate, and n the number of payments.
// Full float64 precision is carried throughout; rounding happens only at
// presentation time.
func ComputeMortgage(price float64, cfg models.FinancialConfig) (models.Mortgage, error) {
	if price <= 0 {
		return models.Mortgage{}, &models.InvalidInputError{Field: "price", Reason: "must be positive"}
	}

	n := cfg.AmortizationYears * 12
	if n <= 0 {
		return models.Mortgage{}, &models.ComputationError{Op: "mortgage", Reason: "zero-length amortization term"}
	}

	downPayment := price * cfg.DownPaymentRate
	principal := price - downPayment
	monthlyRate := cfg.AnnualInterestRate / 12

	var payment float64
	if monthlyRate == 0 {
		// Interest-free edge case: straight-line repayment
		payment = principal / float64(n)
	} else {
		factor := math.Pow(1+monthlyRate, float64(n))
		payment = principal * (monthlyRate * factor) / (factor - 1)
	}

	return models.Mortgage{
		DownPayment:    downPayment,
		Principal:      principal,
		MonthlyPayment: payment,
	}, nil
}
