package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/repositories"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/clients/postgres"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

var appointmentColumns = []interface{}{
	"id", "engineer_id", "client_name", "client_email", "client_phone",
	"company_name", "date", "start_time", "end_time", "description",
	"status", "is_asap", "client_zip_code", "client_address",
	"created_at", "updated_at",
}

// blockingStatuses are the appointment states that occupy a time slot.
var blockingStatuses = []entities.AppointmentStatus{
	entities.AppointmentStatusPending,
	entities.AppointmentStatusConfirmed,
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create unconditionally inserts an appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	query, args, err := a.db.Insert("appointments").
		Rows(appointmentRecord(appointment)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// CreateIfSlotFree inserts a scheduled appointment only when no pending or
// confirmed appointment for the same engineer on the same day overlaps its
// window. The insert and the overlap check run in one statement, so two
// concurrent requests for the same slot cannot both succeed.
func (a *AppointmentAdapter) CreateIfSlotFree(ctx context.Context, appointment *entities.Appointment) error {
	dayStart, dayEnd := dayBounds(appointment.Date)

	overlapping := a.db.From("appointments").
		Select(goqu.L("1")).
		Where(
			goqu.Ex{"engineer_id": appointment.EngineerID},
			goqu.C("date").Gte(dayStart),
			goqu.C("date").Lte(dayEnd),
			goqu.C("status").In(blockingStatuses),
			goqu.C("is_asap").IsFalse(),
			goqu.C("start_time").Lt(appointment.EndTime),
			goqu.C("end_time").Gt(appointment.StartTime),
		)

	record := appointmentRecord(appointment)
	cols := make([]interface{}, 0, len(appointmentColumns))
	vals := make([]interface{}, 0, len(appointmentColumns))
	for _, col := range appointmentColumns {
		cols = append(cols, col)
		vals = append(vals, goqu.V(record[col.(string)]))
	}

	query, args, err := a.db.Insert("appointments").
		Cols(cols...).
		FromQuery(a.db.From().Select(vals...).Where(goqu.L("NOT EXISTS ?", overlapping))).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build conditional insert query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewConflictError("this time slot is not available, please choose a different time")
	}

	return nil
}

// ListForEngineerOnDate retrieves an engineer's pending and confirmed
// appointments on the calendar day containing date
func (a *AppointmentAdapter) ListForEngineerOnDate(ctx context.Context, engineerID string, date time.Time) ([]*entities.Appointment, error) {
	dayStart, dayEnd := dayBounds(date)

	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(
			goqu.Ex{"engineer_id": engineerID},
			goqu.C("date").Gte(dayStart),
			goqu.C("date").Lte(dayEnd),
			goqu.C("status").In(blockingStatuses),
		).
		Order(goqu.I("start_time").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.query(ctx, query, args)
}

// ListUpcoming retrieves an engineer's pending and confirmed appointments
// from now on, ordered by date then start time
func (a *AppointmentAdapter) ListUpcoming(ctx context.Context, engineerID string, now time.Time) ([]*entities.Appointment, error) {
	dayStart, _ := dayBounds(now)

	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(
			goqu.Ex{"engineer_id": engineerID},
			goqu.C("date").Gte(dayStart),
			goqu.C("status").In(blockingStatuses),
		).
		Order(goqu.I("date").Asc(), goqu.I("start_time").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.query(ctx, query, args)
}

func (a *AppointmentAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.Appointment, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment := &entities.Appointment{}
		var clientPhone, companyName, zipCode, address sql.NullString

		err := rows.Scan(
			&appointment.ID,
			&appointment.EngineerID,
			&appointment.ClientName,
			&appointment.ClientEmail,
			&clientPhone,
			&companyName,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.Description,
			&appointment.Status,
			&appointment.IsASAP,
			&zipCode,
			&address,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}

		appointment.ClientPhone = clientPhone.String
		appointment.CompanyName = companyName.String
		if zipCode.Valid || address.Valid {
			appointment.Location = &entities.Location{
				ZipCode: zipCode.String,
				Address: address.String,
			}
		}

		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

func appointmentRecord(appointment *entities.Appointment) goqu.Record {
	record := goqu.Record{
		"id":              appointment.ID,
		"engineer_id":     appointment.EngineerID,
		"client_name":     appointment.ClientName,
		"client_email":    appointment.ClientEmail,
		"client_phone":    appointment.ClientPhone,
		"company_name":    appointment.CompanyName,
		"date":            appointment.Date,
		"start_time":      appointment.StartTime,
		"end_time":        appointment.EndTime,
		"description":     appointment.Description,
		"status":          appointment.Status,
		"is_asap":         appointment.IsASAP,
		"client_zip_code": nil,
		"client_address":  nil,
		"created_at":      appointment.CreatedAt,
		"updated_at":      appointment.UpdatedAt,
	}

	if appointment.Location != nil {
		record["client_zip_code"] = appointment.Location.ZipCode
		record["client_address"] = appointment.Location.Address
	}

	return record
}

// dayBounds returns local midnight and the last instant of the calendar day
// containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	return start, end
}
