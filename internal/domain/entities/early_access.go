package entities

import "time"

// EarlyAccessRequest is a registration from a visitor in an area without
// local engineers. One registration per email.
type EarlyAccessRequest struct {
	ID              string    `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	ZipCode         string    `json:"zipCode" db:"zip_code"`
	RequestedSkills []string  `json:"requestedSkills,omitempty" db:"-"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
