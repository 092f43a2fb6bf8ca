package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/repositories"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
	"github.com/tiltlabs/engineer-on-demand/pkg/validate"
)

// EarlyAccessService registers visitors from unserved areas. Registrations
// are unique per email and never mutated afterwards.
type EarlyAccessService struct {
	repo repositories.EarlyAccessRepository
}

// NewEarlyAccessService creates a new early-access service
func NewEarlyAccessService(repo repositories.EarlyAccessRepository) *EarlyAccessService {
	return &EarlyAccessService{repo: repo}
}

// Register creates an early-access registration. A second registration for
// the same email is rejected with a conflict and no record is written.
func (s *EarlyAccessService) Register(ctx context.Context, email, zipCode string, requestedSkills []string) (*entities.EarlyAccessRequest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.ZipCode(zipCode); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); !ok || appErr.Type != apperrors.ErrorTypeNotFound {
			return nil, err
		}
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("this email is already registered for early access")
	}

	request := &entities.EarlyAccessRequest{
		ID:              uuid.New().String(),
		Email:           email,
		ZipCode:         zipCode,
		RequestedSkills: requestedSkills,
		CreatedAt:       time.Now(),
	}
	// The unique index on email backs this up if two registrations race
	// past the lookup; the repository surfaces that as the same conflict.
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// List returns registrations, optionally filtered by zip code.
func (s *EarlyAccessService) List(ctx context.Context, zipCode string) ([]*entities.EarlyAccessRequest, error) {
	return s.repo.List(ctx, zipCode)
}
