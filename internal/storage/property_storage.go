package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/models"
)

// lastUpdatedRecord tracks the most recent write to the property store.
type lastUpdatedRecord struct {
	Key       string
	Timestamp time.Time
}

const lastUpdatedKey = "properties_last_updated"

type propertyStorage struct {
	store  *Store
	logger *common.Logger
}

// NewPropertyStorage creates a new PropertyStore backed by BadgerHold.
func NewPropertyStorage(store *Store, logger *common.Logger) *propertyStorage {
	return &propertyStorage{store: store, logger: logger}
}

func (s *propertyStorage) SaveProperty(_ context.Context, listing *models.PropertyListing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	now := time.Now()
	listing.UpdatedAt = now
	if listing.CreatedAt.IsZero() {
		// Preserve the original creation time on update
		var existing models.PropertyListing
		if err := s.store.db.Get(listing.CentrisID, &existing); err == nil {
			listing.CreatedAt = existing.CreatedAt
		} else {
			listing.CreatedAt = now
		}
	}

	if err := s.store.db.Upsert(listing.CentrisID, listing); err != nil {
		return fmt.Errorf("failed to save property '%s': %w", listing.CentrisID, err)
	}
	s.touchLastUpdated(now)
	s.logger.Debug().Str("centris_id", listing.CentrisID).Msg("Property saved")
	return nil
}

func (s *propertyStorage) GetProperty(_ context.Context, centrisID string) (*models.PropertyListing, error) {
	var listing models.PropertyListing
	err := s.store.db.Get(centrisID, &listing)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("property '%s' not found", centrisID)
		}
		return nil, fmt.Errorf("failed to get property '%s': %w", centrisID, err)
	}
	return &listing, nil
}

func (s *propertyStorage) ListProperties(_ context.Context) ([]*models.PropertyListing, error) {
	var listings []models.PropertyListing
	if err := s.store.db.Find(&listings, nil); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CentrisID < listings[j].CentrisID
	})

	out := make([]*models.PropertyListing, len(listings))
	for i := range listings {
		out[i] = &listings[i]
	}
	return out, nil
}

func (s *propertyStorage) DeleteProperty(_ context.Context, centrisID string) error {
	err := s.store.db.Delete(centrisID, models.PropertyListing{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("property '%s' not found", centrisID)
		}
		return fmt.Errorf("failed to delete property '%s': %w", centrisID, err)
	}
	s.touchLastUpdated(time.Now())
	s.logger.Debug().Str("centris_id", centrisID).Msg("Property deleted")
	return nil
}

func (s *propertyStorage) ClearProperties(ctx context.Context) (int, error) {
	listings, err := s.ListProperties(ctx)
	if err != nil {
		return 0, err
	}
	for _, l := range listings {
		if err := s.store.db.Delete(l.CentrisID, models.PropertyListing{}); err != nil && err != badgerhold.ErrNotFound {
			return 0, fmt.Errorf("failed to clear properties: %w", err)
		}
	}
	s.touchLastUpdated(time.Now())
	s.logger.Info().Int("count", len(listings)).Msg("All properties cleared")
	return len(listings), nil
}

func (s *propertyStorage) CountProperties(_ context.Context) (int, error) {
	count, err := s.store.db.Count(&models.PropertyListing{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return int(count), nil
}

func (s *propertyStorage) LastUpdated(_ context.Context) (time.Time, error) {
	var rec lastUpdatedRecord
	err := s.store.db.Get(lastUpdatedKey, &rec)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read last-updated marker: %w", err)
	}
	return rec.Timestamp, nil
}

func (s *propertyStorage) touchLastUpdated(ts time.Time) {
	rec := lastUpdatedRecord{Key: lastUpdatedKey, Timestamp: ts}
	if err := s.store.db.Upsert(lastUpdatedKey, &rec); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to update last-updated marker")
	}
}
