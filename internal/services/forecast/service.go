// Package forecast provides baseline short-term-rental revenue estimation
package forecast

import (
	"math"
	"strconv"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/interfaces"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// Compile-time interface check
var _ interfaces.ForecastService = (*Service)(nil)

// Service estimates nightly rate and revenue from listing characteristics
// using the configured per-bedroom base rates. It is a heuristic baseline:
// a trained market model can replace it behind the same interface.
type Service struct {
	cfg    common.ForecastConfig
	logger *common.Logger
}

// NewService creates a new forecast service
func NewService(cfg common.ForecastConfig, logger *common.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// ForecastRevenue estimates the annual revenue stream for a listing.
// The nightly rate is floored at the configured minimum, and gross revenue
// is discounted by the host's share after platform fees.
func (s *Service) ForecastRevenue(listing *models.PropertyListing) *models.RevenueForecast {
	rate := s.predictNightlyRate(listing)

	const nightsPerYear = 365
	occupiedNights := nightsPerYear * s.cfg.OccupancyRate
	annualGross := rate * occupiedNights
	annualNet := annualGross * s.cfg.HostRevenueRate

	return &models.RevenueForecast{
		NightlyRate:             rate,
		OccupancyRate:           s.cfg.OccupancyRate,
		EstimatedOccupiedNights: int(math.Round(occupiedNights)),
		MonthlyRevenue:          annualNet / 12,
		AnnualRevenue:           annualNet,
	}
}

// predictNightlyRate looks up the per-bedroom base rate, extrapolating
// beyond the table from its largest entry, and adds the bathroom uplift.
func (s *Service) predictNightlyRate(listing *models.PropertyListing) float64 {
	bedrooms := listing.Bedrooms
	if bedrooms < 1 {
		bedrooms = 1
	}

	rate, ok := s.cfg.BaseRates[strconv.Itoa(bedrooms)]
	if !ok {
		maxBedrooms, maxRate := 0, 0.0
		var perBedroom float64
		for k, v := range s.cfg.BaseRates {
			b, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			if b > maxBedrooms {
				maxBedrooms, maxRate = b, v
			}
		}
		if maxBedrooms > 0 {
			perBedroom = maxRate / float64(maxBedrooms)
			rate = maxRate + perBedroom*float64(bedrooms-maxBedrooms)
		}
	}

	if listing.Bathrooms > 1 {
		rate += s.cfg.BathroomUplift * float64(listing.Bathrooms-1)
	}

	if rate < s.cfg.MinNightlyRate {
		rate = s.cfg.MinNightlyRate
	}
	return rate
}
