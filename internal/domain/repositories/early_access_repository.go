package repositories

import (
	"context"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
)

// EarlyAccessRepository defines the interface for early-access registrations
type EarlyAccessRepository interface {
	// Create creates a new registration
	Create(ctx context.Context, request *entities.EarlyAccessRequest) error

	// GetByEmail retrieves a registration by email, or a NOT_FOUND error
	GetByEmail(ctx context.Context, email string) (*entities.EarlyAccessRequest, error)

	// List retrieves registrations, optionally filtered by zip code
	List(ctx context.Context, zipCode string) ([]*entities.EarlyAccessRequest, error)
}
