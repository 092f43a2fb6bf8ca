package repositories

import (
	"context"
	"time"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create unconditionally inserts an appointment (used for ASAP bookings,
	// which occupy no window).
	Create(ctx context.Context, appointment *entities.Appointment) error

	// CreateIfSlotFree atomically inserts a scheduled appointment only when
	// no pending or confirmed appointment for the same engineer and calendar
	// date overlaps its window. Returns a CONFLICT error when the slot is
	// taken, closing the race between a conflict check and the insert.
	CreateIfSlotFree(ctx context.Context, appointment *entities.Appointment) error

	// ListForEngineerOnDate retrieves an engineer's pending and confirmed
	// appointments on the calendar day containing date (local midnight to
	// end of day).
	ListForEngineerOnDate(ctx context.Context, engineerID string, date time.Time) ([]*entities.Appointment, error)

	// ListUpcoming retrieves an engineer's pending and confirmed
	// appointments from now on, ordered by date then start time.
	ListUpcoming(ctx context.Context, engineerID string, now time.Time) ([]*entities.Appointment, error)
}
