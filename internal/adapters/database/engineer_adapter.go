package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/repositories"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/clients/postgres"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

var engineerColumns = []interface{}{
	"id", "name", "email", "skills", "hourly_rate", "remote_rate",
	"zip_code", "address", "latitude", "longitude",
	"availability", "service_radius_miles", "status",
	"created_at", "updated_at",
}

// EngineerAdapter implements the EngineerRepository interface
type EngineerAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEngineerAdapter creates a new engineer adapter
func NewEngineerAdapter(client *postgres.Client) repositories.EngineerRepository {
	return &EngineerAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new engineer
func (a *EngineerAdapter) Create(ctx context.Context, engineer *entities.Engineer) error {
	availability, err := json.Marshal(engineer.Availability)
	if err != nil {
		return apperrors.NewInternalError("failed to encode availability", err)
	}

	record := goqu.Record{
		"id":                   engineer.ID,
		"name":                 engineer.Name,
		"email":                engineer.Email,
		"skills":               pq.Array(engineer.Skills),
		"hourly_rate":          engineer.HourlyRate,
		"remote_rate":          engineer.RemoteRate,
		"zip_code":             engineer.Location.ZipCode,
		"address":              engineer.Location.Address,
		"availability":         availability,
		"service_radius_miles": engineer.ServiceRadiusMiles,
		"status":               engineer.Status,
		"created_at":           engineer.CreatedAt,
		"updated_at":           engineer.UpdatedAt,
	}

	if engineer.Location.Coordinates != nil {
		record["latitude"] = engineer.Location.Coordinates.Lat
		record["longitude"] = engineer.Location.Coordinates.Lng
	}

	query, args, err := a.db.Insert("engineers").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("engineer with email %s already exists", engineer.Email))
		}
		return apperrors.NewInternalError("failed to create engineer", err)
	}

	return nil
}

// GetByID retrieves an engineer by ID
func (a *EngineerAdapter) GetByID(ctx context.Context, id string) (*entities.Engineer, error) {
	query, args, err := a.db.Select(engineerColumns...).
		From("engineers").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	engineer, err := scanEngineer(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("engineer with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get engineer", err)
	}

	return engineer, nil
}

// ListActive retrieves all active engineers
func (a *EngineerAdapter) ListActive(ctx context.Context) ([]*entities.Engineer, error) {
	return a.list(ctx, goqu.Ex{"status": entities.EngineerStatusActive})
}

// ListRemoteCapable retrieves active engineers with a positive remote rate
func (a *EngineerAdapter) ListRemoteCapable(ctx context.Context) ([]*entities.Engineer, error) {
	return a.list(ctx, goqu.And(
		goqu.Ex{"status": entities.EngineerStatusActive},
		goqu.C("remote_rate").Gt(0),
	))
}

func (a *EngineerAdapter) list(ctx context.Context, cond goqu.Expression) ([]*entities.Engineer, error) {
	query, args, err := a.db.Select(engineerColumns...).
		From("engineers").
		Where(cond).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list engineers", err)
	}
	defer rows.Close()

	var engineers []*entities.Engineer
	for rows.Next() {
		engineer, err := scanEngineer(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan engineer", err)
		}
		engineers = append(engineers, engineer)
	}

	return engineers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEngineer(row rowScanner) (*entities.Engineer, error) {
	engineer := &entities.Engineer{}
	var address sql.NullString
	var lat, lng sql.NullFloat64
	var availabilityRaw []byte

	err := row.Scan(
		&engineer.ID,
		&engineer.Name,
		&engineer.Email,
		pq.Array(&engineer.Skills),
		&engineer.HourlyRate,
		&engineer.RemoteRate,
		&engineer.Location.ZipCode,
		&address,
		&lat,
		&lng,
		&availabilityRaw,
		&engineer.ServiceRadiusMiles,
		&engineer.Status,
		&engineer.CreatedAt,
		&engineer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	engineer.Location.Address = address.String
	if lat.Valid && lng.Valid {
		engineer.Location.Coordinates = &entities.Coordinates{
			Lat: lat.Float64,
			Lng: lng.Float64,
		}
	}
	if len(availabilityRaw) > 0 {
		_ = json.Unmarshal(availabilityRaw, &engineer.Availability)
	}

	return engineer, nil
}
