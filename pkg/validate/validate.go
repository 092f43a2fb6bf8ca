// Package validate holds reusable field-level input validation, independent
// of any scheduling logic. Each rule rejects with an error tagged with the
// offending field so clients can highlight it.
package validate

import (
	"regexp"
	"strings"

	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\+]?[1-9][\d\s\-\(\)\.]{9,19}$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)
)

// ClientName requires 2-50 characters of letters, spaces, hyphens, and
// apostrophes.
func ClientName(name string) *apperrors.AppError {
	if len(name) < 2 {
		return apperrors.NewFieldError("clientName", "name must be at least 2 characters")
	}
	if len(name) > 50 {
		return apperrors.NewFieldError("clientName", "name must be less than 50 characters")
	}
	if !nameRe.MatchString(name) {
		return apperrors.NewFieldError("clientName", "name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return nil
}

// Email requires standard address syntax, 5-100 characters.
func Email(email string) *apperrors.AppError {
	if len(email) < 5 || len(email) > 100 || !emailRe.MatchString(email) {
		return apperrors.NewFieldError("clientEmail", "please enter a valid email address")
	}
	return nil
}

// Phone requires 10-20 characters matching an international-leaning digit
// pattern. Empty is allowed; phone is optional.
func Phone(phone string) *apperrors.AppError {
	if phone == "" {
		return nil
	}
	if len(phone) < 10 || len(phone) > 20 || !phoneRe.MatchString(phone) {
		return apperrors.NewFieldError("clientPhone", "please enter a valid phone number")
	}
	return nil
}

// Company requires 2-100 characters when present.
func Company(company string) *apperrors.AppError {
	if company == "" {
		return nil
	}
	if len(company) < 2 {
		return apperrors.NewFieldError("companyName", "company name must be at least 2 characters")
	}
	if len(company) > 100 {
		return apperrors.NewFieldError("companyName", "company name must be less than 100 characters")
	}
	return nil
}

// Description requires a detailed 60-2000 character project description.
func Description(description string) *apperrors.AppError {
	if len(description) < 60 {
		return apperrors.NewFieldError("description", "please provide a detailed description (minimum 60 characters)")
	}
	if len(description) > 2000 {
		return apperrors.NewFieldError("description", "description must be less than 2000 characters")
	}
	return nil
}

// ZipCode requires exactly 5 digits.
func ZipCode(zip string) *apperrors.AppError {
	if !zipRe.MatchString(zip) {
		return apperrors.NewFieldError("zipCode", "invalid zip code format, please use 5 digits")
	}
	return nil
}

// BookingFields runs every field rule against a raw booking payload and
// returns all violations, one tagged error per field.
type BookingFields struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	CompanyName string
	Description string
}

// Check returns every failed rule; an empty slice means the payload passes.
func Check(f BookingFields) []*apperrors.AppError {
	var errs []*apperrors.AppError
	if err := ClientName(strings.TrimSpace(f.ClientName)); err != nil {
		errs = append(errs, err)
	}
	if err := Email(strings.TrimSpace(f.ClientEmail)); err != nil {
		errs = append(errs, err)
	}
	if err := Phone(strings.TrimSpace(f.ClientPhone)); err != nil {
		errs = append(errs, err)
	}
	if err := Company(strings.TrimSpace(f.CompanyName)); err != nil {
		errs = append(errs, err)
	}
	if err := Description(strings.TrimSpace(f.Description)); err != nil {
		errs = append(errs, err)
	}
	return errs
}
