package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tiltlabs/engineer-on-demand/internal/application/services"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
	"github.com/tiltlabs/engineer-on-demand/pkg/validate"
)

// BookingService defines the interface for booking operations
type BookingService interface {
	Book(ctx context.Context, req *services.BookingRequest) (*entities.Appointment, error)
	AppointmentsFor(ctx context.Context, engineerID, date string) ([]*entities.Appointment, error)
}

// BookingHandler handles appointment booking requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Book handles POST /api/appointments
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Field rules are checked together so the client sees every problem in
	// one round trip; business rules after this fail one at a time.
	if errs := validate.Check(validate.BookingFields{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		CompanyName: req.CompanyName,
		Description: req.Description,
	}); len(errs) > 0 {
		fieldErrors := make([]fieldError, 0, len(errs))
		for _, e := range errs {
			fieldErrors = append(fieldErrors, fieldError{Field: e.Field, Message: e.Message})
		}
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"errors": fieldErrors,
		})
		return
	}

	appointment, err := h.service.Book(r.Context(), &req)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && len(appErr.Details) > 0 {
			respondWithJSON(w, statusForError(err), map[string]interface{}{
				"error":                appErr.Message,
				"engineerAvailability": appErr.Details,
			})
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"appointmentId": appointment.ID,
		"status":        appointment.Status,
		"message":       "booking request received, the engineer will confirm shortly",
	})
}

// List handles GET /api/appointments
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	engineerID := r.URL.Query().Get("engineerId")
	if engineerID == "" {
		respondWithError(w, http.StatusBadRequest, "engineerId query parameter is required")
		return
	}

	appointments, err := h.service.AppointmentsFor(r.Context(), engineerID, r.URL.Query().Get("date"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}
