package repositories

import (
	"context"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
)

// EngineerRepository defines the interface for engineer data operations
type EngineerRepository interface {
	// Create creates a new engineer
	Create(ctx context.Context, engineer *entities.Engineer) error

	// GetByID retrieves an engineer by ID
	GetByID(ctx context.Context, id string) (*entities.Engineer, error)

	// ListActive retrieves all active engineers
	ListActive(ctx context.Context) ([]*entities.Engineer, error)

	// ListRemoteCapable retrieves active engineers with a positive remote rate
	ListRemoteCapable(ctx context.Context) ([]*entities.Engineer, error)
}
