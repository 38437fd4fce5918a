package models

// FinancialConfig holds the per-run financing and operating-cost assumptions.
// It is passed explicitly into every engine call; there is no ambient or
// global financial state.
type FinancialConfig struct {
	DownPaymentRate    float64 `toml:"down_payment_rate" json:"down_payment_rate"`
	AnnualInterestRate float64 `toml:"annual_interest_rate" json:"annual_interest_rate"`
	AmortizationYears  int     `toml:"amortization_years" json:"amortization_years"`
	ClosingCostRate    float64 `toml:"closing_cost_rate" json:"closing_cost_rate"`

	PropertyTaxRate float64 `toml:"property_tax_rate" json:"property_tax_rate"` // annual, fraction of price
	InsuranceRate   float64 `toml:"insurance_rate" json:"insurance_rate"`       // annual, fraction of price
	MaintenanceRate float64 `toml:"maintenance_rate" json:"maintenance_rate"`   // annual, fraction of price
	CondoFee        float64 `toml:"condo_fee" json:"condo_fee"`                 // flat monthly
	UtilitiesFlat   float64 `toml:"utilities_flat" json:"utilities_flat"`       // flat monthly
	ManagementRate  float64 `toml:"management_rate" json:"management_rate"`     // fraction of revenue

	CleaningFeePerBooking float64 `toml:"cleaning_fee_per_booking" json:"cleaning_fee_per_booking"`
	CleaningFeeDefault    float64 `toml:"cleaning_fee_default" json:"cleaning_fee_default"` // flat monthly fallback when nightly rate is unknown
	AvgBookingNights      float64 `toml:"avg_booking_nights" json:"avg_booking_nights"`

	RevenueGrowthRate float64 `toml:"revenue_growth_rate" json:"revenue_growth_rate"` // annual
	ExpenseGrowthRate float64 `toml:"expense_growth_rate" json:"expense_growth_rate"` // annual
	AppreciationRate  float64 `toml:"appreciation_rate" json:"appreciation_rate"`     // annual
	ProjectionYears   int     `toml:"projection_years" json:"projection_years"`
}

// DefaultFinancialConfig returns the standard assumptions for a Montreal
// short-term-rental purchase.
func DefaultFinancialConfig() FinancialConfig {
	return FinancialConfig{
		DownPaymentRate:       0.20,
		AnnualInterestRate:    0.065,
		AmortizationYears:     25,
		ClosingCostRate:       0.03,
		PropertyTaxRate:       0.012,
		InsuranceRate:         0.005,
		MaintenanceRate:       0.01,
		CondoFee:              0,
		UtilitiesFlat:         0,
		ManagementRate:        0,
		CleaningFeePerBooking: 0,
		CleaningFeeDefault:    0,
		AvgBookingNights:      3,
		RevenueGrowthRate:     0.03,
		ExpenseGrowthRate:     0.02,
		AppreciationRate:      0.04,
		ProjectionYears:       5,
	}
}

// Validate rejects assumptions the engine cannot compute with. Negative
// rates are treated as malformed config rather than silently producing
// nonsense projections.
func (c *FinancialConfig) Validate() error {
	check := func(field string, v float64) error {
		if v < 0 {
			return &InvalidInputError{Field: field, Reason: "must be non-negative"}
		}
		return nil
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"down_payment_rate", c.DownPaymentRate},
		{"annual_interest_rate", c.AnnualInterestRate},
		{"closing_cost_rate", c.ClosingCostRate},
		{"property_tax_rate", c.PropertyTaxRate},
		{"insurance_rate", c.InsuranceRate},
		{"maintenance_rate", c.MaintenanceRate},
		{"condo_fee", c.CondoFee},
		{"utilities_flat", c.UtilitiesFlat},
		{"management_rate", c.ManagementRate},
		{"cleaning_fee_per_booking", c.CleaningFeePerBooking},
		{"cleaning_fee_default", c.CleaningFeeDefault},
		{"avg_booking_nights", c.AvgBookingNights},
	}
	for _, f := range fields {
		if err := check(f.name, f.value); err != nil {
			return err
		}
	}

	if c.DownPaymentRate > 1 {
		return &InvalidInputError{Field: "down_payment_rate", Reason: "must not exceed 1"}
	}
	if c.AmortizationYears <= 0 {
		return &InvalidInputError{Field: "amortization_years", Reason: "must be positive"}
	}
	if c.ProjectionYears < 0 {
		return &InvalidInputError{Field: "projection_years", Reason: "must be non-negative"}
	}
	// Growth rates may not drop below -100%/yr; beyond that compounding is undefined.
	if c.RevenueGrowthRate < -1 || c.ExpenseGrowthRate < -1 || c.AppreciationRate < -1 {
		return &InvalidInputError{Field: "growth_rate", Reason: "must not be below -1"}
	}
	return nil
}
