package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/repositories"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/clients/postgres"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

// EarlyAccessAdapter implements the EarlyAccessRepository interface
type EarlyAccessAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEarlyAccessAdapter creates a new early-access adapter
func NewEarlyAccessAdapter(client *postgres.Client) repositories.EarlyAccessRepository {
	return &EarlyAccessAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new registration. The unique index on email backs the
// one-registration-per-email rule even under concurrent requests.
func (a *EarlyAccessAdapter) Create(ctx context.Context, request *entities.EarlyAccessRequest) error {
	query, args, err := a.db.Insert("early_access_requests").
		Rows(goqu.Record{
			"id":               request.ID,
			"email":            request.Email,
			"zip_code":         request.ZipCode,
			"requested_skills": pq.Array(request.RequestedSkills),
			"created_at":       request.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.NewConflictError("this email is already registered for early access")
		}
		return apperrors.NewInternalError("failed to create early access request", err)
	}

	return nil
}

// GetByEmail retrieves a registration by email, or a NOT_FOUND error
func (a *EarlyAccessAdapter) GetByEmail(ctx context.Context, email string) (*entities.EarlyAccessRequest, error) {
	query, args, err := a.db.Select(
		"id", "email", "zip_code", "requested_skills", "created_at",
	).From("early_access_requests").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	request := &entities.EarlyAccessRequest{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&request.Email,
		&request.ZipCode,
		pq.Array(&request.RequestedSkills),
		&request.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("early access request for %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get early access request", err)
	}

	return request, nil
}

// List retrieves registrations, optionally filtered by zip code
func (a *EarlyAccessAdapter) List(ctx context.Context, zipCode string) ([]*entities.EarlyAccessRequest, error) {
	ds := a.db.Select(
		"id", "email", "zip_code", "requested_skills", "created_at",
	).From("early_access_requests")

	if zipCode != "" {
		ds = ds.Where(goqu.Ex{"zip_code": zipCode})
	}

	query, args, err := ds.Order(goqu.I("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list early access requests", err)
	}
	defer rows.Close()

	var requests []*entities.EarlyAccessRequest
	for rows.Next() {
		request := &entities.EarlyAccessRequest{}
		err := rows.Scan(
			&request.ID,
			&request.Email,
			&request.ZipCode,
			pq.Array(&request.RequestedSkills),
			&request.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan early access request", err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}
