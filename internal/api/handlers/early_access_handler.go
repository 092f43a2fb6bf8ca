package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
)

// EarlyAccessService defines the interface for early-access registration
type EarlyAccessService interface {
	Register(ctx context.Context, email, zipCode string, requestedSkills []string) (*entities.EarlyAccessRequest, error)
	List(ctx context.Context, zipCode string) ([]*entities.EarlyAccessRequest, error)
}

// EarlyAccessHandler handles early-access registration requests
type EarlyAccessHandler struct {
	service EarlyAccessService
}

// NewEarlyAccessHandler creates a new early-access handler
func NewEarlyAccessHandler(service EarlyAccessService) *EarlyAccessHandler {
	return &EarlyAccessHandler{
		service: service,
	}
}

type earlyAccessRequest struct {
	Email           string   `json:"email"`
	ZipCode         string   `json:"zipCode"`
	RequestedSkills []string `json:"requestedSkills"`
}

// Register handles POST /api/early-access
func (h *EarlyAccessHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req earlyAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	registration, err := h.service.Register(r.Context(), req.Email, req.ZipCode, req.RequestedSkills)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      registration.ID,
		"message": "you're on the list, we'll reach out when engineers are available in your area",
	})
}

// List handles GET /api/early-access
func (h *EarlyAccessHandler) List(w http.ResponseWriter, r *http.Request) {
	registrations, err := h.service.List(r.Context(), r.URL.Query().Get("zipCode"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"requests": registrations,
		"count":    len(registrations),
	})
}
