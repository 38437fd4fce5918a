// Package interfaces defines service contracts for the cashflow analyzer
package interfaces

import (
	"context"
	"time"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// StorageManager coordinates storage backends
type StorageManager interface {
	PropertyStore() PropertyStore
	Close() error
}

// PropertyStore persists manually curated property listings.
type PropertyStore interface {
	// SaveProperty inserts or updates a listing keyed on CentrisID.
	SaveProperty(ctx context.Context, listing *models.PropertyListing) error

	// GetProperty retrieves a listing by CentrisID.
	GetProperty(ctx context.Context, centrisID string) (*models.PropertyListing, error)

	// ListProperties returns all stored listings ordered by CentrisID.
	ListProperties(ctx context.Context) ([]*models.PropertyListing, error)

	// DeleteProperty removes a listing; errors if it does not exist.
	DeleteProperty(ctx context.Context, centrisID string) error

	// ClearProperties removes all listings and returns the count removed.
	ClearProperties(ctx context.Context) (int, error)

	// CountProperties returns the number of stored listings.
	CountProperties(ctx context.Context) (int, error)

	// LastUpdated returns the time of the most recent write, zero if never.
	LastUpdated(ctx context.Context) (time.Time, error)
}
