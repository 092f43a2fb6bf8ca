package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/repositories"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/schedule"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

// asapDateLiteral is the date field value that requests immediate service.
const asapDateLiteral = "asap"

// BookingRequest is the raw booking payload after field-level validation.
type BookingRequest struct {
	EngineerID  string             `json:"engineerId"`
	ClientName  string             `json:"clientName"`
	ClientEmail string             `json:"clientEmail"`
	ClientPhone string             `json:"clientPhone"`
	CompanyName string             `json:"companyName"`
	Date        string             `json:"date"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Description string             `json:"description"`
	Location    *entities.Location `json:"location"`
}

// BookingService validates booking requests, gates scheduled requests on
// working hours and slot conflicts, persists the appointment, and dispatches
// a best-effort notification.
type BookingService struct {
	appointments  repositories.AppointmentRepository
	engineers     repositories.EngineerRepository
	notifications *NotificationService

	// mu guards engineerLocks. Each engineer gets a lock serializing the
	// conflict-check-then-insert sequence within this process; the
	// conditional insert in the repository closes the race across
	// processes.
	mu            sync.Mutex
	engineerLocks map[string]*sync.Mutex
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointments repositories.AppointmentRepository,
	engineers repositories.EngineerRepository,
	notifications *NotificationService,
) *BookingService {
	return &BookingService{
		appointments:  appointments,
		engineers:     engineers,
		notifications: notifications,
		engineerLocks: make(map[string]*sync.Mutex),
	}
}

// Book processes a booking request end to end. It returns the persisted
// appointment in pending status, or the first failed validation or business
// rule.
func (s *BookingService) Book(ctx context.Context, req *BookingRequest) (*entities.Appointment, error) {
	isASAP := req.Date == asapDateLiteral

	if !isASAP && (req.StartTime == "" || req.EndTime == "") {
		return nil, apperrors.NewFieldError("startTime", "start time and end time are required for scheduled appointments")
	}

	engineer, err := s.engineers.GetByID(ctx, req.EngineerID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, apperrors.NewNotFoundError("engineer not found or not available")
		}
		return nil, err
	}

	var (
		when       time.Time
		start, end schedule.TimeOfDay
	)

	if isASAP {
		when = time.Now()
	} else {
		when, err = parseBookingDate(req.Date)
		if err != nil {
			return nil, apperrors.NewFieldError("date", "invalid date format")
		}
		if when.Before(time.Now()) {
			return nil, apperrors.NewFieldError("date", "cannot book appointments in the past")
		}

		var ok bool
		if start, ok = schedule.ParseTimeOfDay(req.StartTime); !ok {
			return nil, apperrors.NewFieldError("startTime", "invalid time format, use HH:MM")
		}
		if end, ok = schedule.ParseTimeOfDay(req.EndTime); !ok {
			return nil, apperrors.NewFieldError("endTime", "invalid time format, use HH:MM")
		}
		if !start.Before(end) {
			return nil, apperrors.NewFieldError("startTime", "start time must be before end time")
		}

		unlock := s.lockEngineer(engineer.ID)
		defer unlock()

		if err := s.checkSlotFree(ctx, engineer.ID, when, start, end); err != nil {
			return nil, err
		}
		if err := checkWorkingHours(engineer.Availability, when, start, end); err != nil {
			return nil, err
		}
	}

	appointment := &entities.Appointment{
		ID:          uuid.New().String(),
		EngineerID:  engineer.ID,
		ClientName:  req.ClientName,
		ClientEmail: strings.ToLower(req.ClientEmail),
		ClientPhone: req.ClientPhone,
		CompanyName: req.CompanyName,
		Date:        when,
		StartTime:   schedule.ASAPSentinel,
		EndTime:     schedule.ASAPSentinel,
		Description: req.Description,
		Status:      entities.AppointmentStatusPending,
		IsASAP:      isASAP,
		Location:    req.Location,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if isASAP {
		if err := s.appointments.Create(ctx, appointment); err != nil {
			return nil, err
		}
	} else {
		appointment.StartTime = string(start)
		appointment.EndTime = string(end)
		if err := s.appointments.CreateIfSlotFree(ctx, appointment); err != nil {
			return nil, err
		}
	}

	s.notify(ctx, engineer, appointment, req)

	return appointment, nil
}

// AppointmentsFor lists an engineer's booked appointments: the pending and
// confirmed bookings on a given date, or all upcoming ones when date is
// empty.
func (s *BookingService) AppointmentsFor(ctx context.Context, engineerID, date string) ([]*entities.Appointment, error) {
	if engineerID == "" {
		return nil, apperrors.NewFieldError("engineerId", "engineer ID is required")
	}
	if date == "" {
		return s.appointments.ListUpcoming(ctx, engineerID, time.Now())
	}
	day, err := parseBookingDate(date)
	if err != nil {
		return nil, apperrors.NewFieldError("date", "invalid date format")
	}
	return s.appointments.ListForEngineerOnDate(ctx, engineerID, day)
}

// checkSlotFree rejects the candidate window when it overlaps any existing
// pending or confirmed appointment on the same calendar date. ASAP rows
// carry no window and are skipped.
func (s *BookingService) checkSlotFree(ctx context.Context, engineerID string, when time.Time, start, end schedule.TimeOfDay) error {
	existing, err := s.appointments.ListForEngineerOnDate(ctx, engineerID, when)
	if err != nil {
		return err
	}
	for _, appt := range existing {
		if !appt.HasWindow() {
			continue
		}
		if schedule.Overlaps(start, end, schedule.TimeOfDay(appt.StartTime), schedule.TimeOfDay(appt.EndTime)) {
			return apperrors.NewConflictError("this time slot is not available, please choose a different time")
		}
	}
	return nil
}

func checkWorkingHours(hours schedule.WeeklyHours, when time.Time, start, end schedule.TimeOfDay) error {
	entry, ok := hours.WindowFor(schedule.DayName(when))
	if !ok {
		return apperrors.NewValidationError("engineer is not available on this day of the week")
	}
	if !entry.Contains(start, end) {
		return apperrors.NewValidationError(
			fmt.Sprintf("engineer is only available from %s to %s on this day", entry.Start, entry.End),
		).WithDetails(map[string]string{
			"startTime": string(entry.Start),
			"endTime":   string(entry.End),
		})
	}
	return nil
}

// notify dispatches the booking email. Failures are logged and swallowed;
// the appointment write has already succeeded.
func (s *BookingService) notify(ctx context.Context, engineer *entities.Engineer, appointment *entities.Appointment, req *BookingRequest) {
	if s.notifications == nil {
		return
	}
	deliveryID, err := s.notifications.SendBookingNotification(ctx, BookingNotification{
		EngineerName: engineer.Name,
		HourlyRate:   engineer.HourlyRate,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		CompanyName:  req.CompanyName,
		Date:         req.Date,
		StartTime:    appointment.StartTime,
		Description:  req.Description,
		IsASAP:       appointment.IsASAP,
	})
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("booking notification failed")
		return
	}
	log.Info().Str("appointment_id", appointment.ID).Str("delivery_id", deliveryID).Msg("booking notification sent")
}

func (s *BookingService) lockEngineer(id string) func() {
	s.mu.Lock()
	lock, ok := s.engineerLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.engineerLocks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// parseBookingDate accepts the date shapes the booking form submits: a bare
// calendar date or a full RFC3339 timestamp.
func parseBookingDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
