// Package models defines data structures for the cashflow analyzer
package models

import (
	"strings"
	"time"
)

// PropertyListing is a property for sale as sourced from Centris (or entered
// manually via the admin API). The engine treats it as immutable input.
type PropertyListing struct {
	CentrisID    string  `json:"centris_id"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Sqft         float64 `json:"sqft,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	URL          string  `json:"url"`
	ImageURL     string  `json:"image_url,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Validate checks the boundary-layer requirements for a manually entered
// listing. Returns an InvalidInputError naming the first offending field.
func (p *PropertyListing) Validate() error {
	if strings.TrimSpace(p.CentrisID) == "" {
		return &InvalidInputError{Field: "centris_id", Reason: "is required"}
	}
	if strings.TrimSpace(p.Address) == "" {
		return &InvalidInputError{Field: "address", Reason: "is required"}
	}
	if p.Price <= 0 {
		return &InvalidInputError{Field: "price", Reason: "must be positive"}
	}
	if p.Bedrooms < 0 {
		return &InvalidInputError{Field: "bedrooms", Reason: "must be non-negative"}
	}
	if p.Bathrooms < 0 {
		return &InvalidInputError{Field: "bathrooms", Reason: "must be non-negative"}
	}
	if strings.TrimSpace(p.URL) == "" {
		return &InvalidInputError{Field: "url", Reason: "is required"}
	}
	return nil
}

// RevenueForecast is the short-term-rental revenue estimate for a listing,
// produced by the forecast service. Read-only input to the engine.
type RevenueForecast struct {
	NightlyRate             float64 `json:"nightly_rate"`
	OccupancyRate           float64 `json:"occupancy_rate"`
	EstimatedOccupiedNights int     `json:"estimated_occupied_nights"`
	MonthlyRevenue          float64 `json:"monthly_revenue"`
	AnnualRevenue           float64 `json:"annual_revenue"`
}

// PropertySummary is the card-level view combining listing facts with the
// headline investment numbers.
type PropertySummary struct {
	Address          string  `json:"address"`
	Price            float64 `json:"price"`
	CentrisURL       string  `json:"centris_url"`
	ImageURL         string  `json:"image_url,omitempty"`
	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        int     `json:"bathrooms"`
	Sqft             float64 `json:"sqft,omitempty"`
	DownPayment      float64 `json:"down_payment"`
	MonthlyMortgage  float64 `json:"monthly_mortgage"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	MonthlyCashflow  float64 `json:"monthly_cashflow"`
	CashOnCashReturn float64 `json:"cash_on_cash_return"`
	CapRate          float64 `json:"cap_rate"`
}
