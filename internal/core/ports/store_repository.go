package ports

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for store aggregates.
type StoreRepository interface {
	// Add persists a new store aggregate to storage.
	Add(ctx context.Context, aggregate *store.Store) error

	// Get retrieves a store aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// GetAllWithLocation retrieves every store that has registered
	// coordinates. Stores without coordinates cannot start a route.
	GetAllWithLocation(ctx context.Context) ([]*store.Store, error)
}
