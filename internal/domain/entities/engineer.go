package entities

import (
	"time"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/schedule"
)

// EngineerStatus represents whether an engineer takes bookings
type EngineerStatus string

const (
	EngineerStatusActive   EngineerStatus = "active"
	EngineerStatusInactive EngineerStatus = "inactive"
)

// DefaultServiceRadiusMiles is applied when onboarding does not set one.
const DefaultServiceRadiusMiles = 25.0

// Location represents an engineer's geographic location. Coordinates may be
// absent for engineers onboarded before geocoding; discovery treats those as
// non-local.
type Location struct {
	ZipCode     string       `json:"zipCode" db:"zip_code"`
	Address     string       `json:"address" db:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty" db:"-"`
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Lat float64 `json:"lat" db:"latitude"`
	Lng float64 `json:"lng" db:"longitude"`
}

// Engineer represents a freelance engineer available for booking
type Engineer struct {
	ID                 string               `json:"id" db:"id"`
	Name               string               `json:"name" db:"name"`
	Email              string               `json:"email" db:"email"`
	Skills             []string             `json:"skills" db:"-"`
	HourlyRate         float64              `json:"hourlyRate" db:"hourly_rate"`
	RemoteRate         float64              `json:"remoteRate,omitempty" db:"remote_rate"`
	Location           Location             `json:"location" db:"-"`
	Availability       schedule.WeeklyHours `json:"availability" db:"-"`
	ServiceRadiusMiles float64              `json:"radius" db:"service_radius_miles"`
	Status             EngineerStatus       `json:"status" db:"status"`
	CreatedAt          time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time            `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the engineer currently accepts bookings.
func (e *Engineer) IsActive() bool {
	return e.Status == EngineerStatusActive
}

// RemoteCapable reports whether the engineer serves clients outside their
// service radius.
func (e *Engineer) RemoteCapable() bool {
	return e.RemoteRate > 0
}

// RankedEngineer is an engineer annotated for a discovery response.
type RankedEngineer struct {
	Engineer
	DistanceMiles float64 `json:"distance"`
	IsLocal       bool    `json:"isLocal"`
	IsRemote      bool    `json:"isRemote,omitempty"`
}
