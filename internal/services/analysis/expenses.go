package analysis

import (
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// ComputeExpenses estimates recurring monthly operating costs for a property.
// The mortgage payment is excluded; the orchestrator adds it into the total
// separately. Rate-based fields scale monotonically with price; flat fields
// come straight from config.
func ComputeExpenses(price, monthlyRevenue, nightlyRate float64, cfg models.FinancialConfig) (models.MonthlyCostBreakdown, error) {
	if price <= 0 {
		return models.MonthlyCostBreakdown{}, &models.InvalidInputError{Field: "price", Reason: "must be positive"}
	}

	breakdown := models.MonthlyCostBreakdown{
		PropertyTax: price * cfg.PropertyTaxRate / 12,
		Insurance:   price * cfg.InsuranceRate / 12,
		Maintenance: price * cfg.MaintenanceRate / 12,
		CondoFee:    cfg.CondoFee,
		Utilities:   cfg.UtilitiesFlat,
		Management:  monthlyRevenue * cfg.ManagementRate,
		Cleaning:    estimateCleaning(monthlyRevenue, nightlyRate, cfg),
	}

	breakdown.Total = breakdown.PropertyTax +
		breakdown.Insurance +
		breakdown.Maintenance +
		breakdown.CondoFee +
		breakdown.Utilities +
		breakdown.Management +
		breakdown.Cleaning

	return breakdown, nil
}

// estimateCleaning derives the monthly cleaning cost from the estimated
// booking count. When the nightly rate is unavailable the booking count is
// undefined, so the configured flat default is used instead.
func estimateCleaning(monthlyRevenue, nightlyRate float64, cfg models.FinancialConfig) float64 {
	if nightlyRate <= 0 || cfg.AvgBookingNights <= 0 {
		return cfg.CleaningFeeDefault
	}

	bookingsPerMonth := (monthlyRevenue / nightlyRate) / cfg.AvgBookingNights
	if bookingsPerMonth < 0 {
		bookingsPerMonth = 0
	}
	return bookingsPerMonth * cfg.CleaningFeePerBooking
}
