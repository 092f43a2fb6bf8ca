package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a client's booking with an engineer. Scheduled
// appointments carry an "HH:MM" start/end window on Date; ASAP appointments
// store the sentinel in both fields and Date records the moment of request.
type Appointment struct {
	ID          string            `json:"id" db:"id"`
	EngineerID  string            `json:"engineerId" db:"engineer_id"`
	ClientName  string            `json:"clientName" db:"client_name"`
	ClientEmail string            `json:"clientEmail" db:"client_email"`
	ClientPhone string            `json:"clientPhone" db:"client_phone"`
	CompanyName string            `json:"companyName" db:"company_name"`
	Date        time.Time         `json:"date" db:"date"`
	StartTime   string            `json:"startTime" db:"start_time"`
	EndTime     string            `json:"endTime" db:"end_time"`
	Description string            `json:"description" db:"description"`
	Status      AppointmentStatus `json:"status" db:"status"`
	IsASAP      bool              `json:"isASAP" db:"is_asap"`
	Location    *Location         `json:"location,omitempty" db:"-"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

// HasWindow reports whether the appointment occupies a concrete time window.
// ASAP bookings have none and never participate in conflict checks.
func (a *Appointment) HasWindow() bool {
	return !a.IsASAP && a.StartTime != "" && a.EndTime != ""
}
