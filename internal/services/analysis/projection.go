package analysis

import (
	"math"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// Project compounds revenue and expense growth over the configured horizon.
// Year 1 is the first full year after acquisition: revenue and expenses grow
// from year 2 onward, while the property value appreciates from year 1.
// Cumulative cashflow is a running sum, so cumulative[y] equals
// cumulative[y-1] + net[y] exactly.
func Project(price, baseAnnualRevenue, baseAnnualExpenses float64, cfg models.FinancialConfig) []models.ProjectionRow {
	years := cfg.ProjectionYears
	if years <= 0 {
		return nil
	}

	rows := make([]models.ProjectionRow, 0, years)
	cumulative := 0.0

	for y := 1; y <= years; y++ {
		revenue := baseAnnualRevenue * math.Pow(1+cfg.RevenueGrowthRate, float64(y-1))
		expenses := baseAnnualExpenses * math.Pow(1+cfg.ExpenseGrowthRate, float64(y-1))
		net := revenue - expenses
		cumulative += net

		rows = append(rows, models.ProjectionRow{
			Year:                   y,
			AnnualRevenue:          revenue,
			AnnualExpenses:         expenses,
			NetCashflow:            net,
			CumulativeCashflow:     cumulative,
			ProjectedPropertyValue: price * math.Pow(1+cfg.AppreciationRate, float64(y)),
		})
	}

	return rows
}
