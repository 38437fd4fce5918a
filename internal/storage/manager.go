package storage

import (
	"fmt"

	"github.com/othmane-zizi-pro/cashflow-mtl/internal/common"
	"github.com/othmane-zizi-pro/cashflow-mtl/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Manager)(nil)

// Manager coordinates the storage backends.
type Manager struct {
	store      *Store
	properties interfaces.PropertyStore
	logger     *common.Logger
}

// NewManager opens the BadgerHold store and wires the property storage.
func NewManager(logger *common.Logger, cfg common.StorageConfig) (*Manager, error) {
	store, err := NewStore(logger, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize property store: %w", err)
	}

	return &Manager{
		store:      store,
		properties: NewPropertyStorage(store, logger),
		logger:     logger,
	}, nil
}

// PropertyStore returns the property listing store.
func (m *Manager) PropertyStore() interfaces.PropertyStore {
	return m.properties
}

// Close releases the underlying database.
func (m *Manager) Close() error {
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}
