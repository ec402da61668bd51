package ports

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/customer"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
type CustomerRepository interface {
	// Add persists a new customer aggregate to storage.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByIDs retrieves the customers with the given identifiers.
	// Missing IDs are skipped, not errors.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*customer.Customer, error)
}
