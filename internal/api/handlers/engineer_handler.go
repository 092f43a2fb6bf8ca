package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tiltlabs/engineer-on-demand/internal/application/services"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/schedule"
	"github.com/tiltlabs/engineer-on-demand/pkg/validate"
)

// DiscoveryService defines the interface for engineer discovery
type DiscoveryService interface {
	Nearby(ctx context.Context, lat, lng float64, limit int) (*services.DiscoveryResult, error)
}

// EngineerDirectory defines the interface for engineer onboarding
type EngineerDirectory interface {
	Create(ctx context.Context, engineer *entities.Engineer) error
}

// EngineerHandler handles engineer discovery and onboarding requests
type EngineerHandler struct {
	discovery DiscoveryService
	directory EngineerDirectory
}

// NewEngineerHandler creates a new engineer handler
func NewEngineerHandler(discovery DiscoveryService, directory EngineerDirectory) *EngineerHandler {
	return &EngineerHandler{
		discovery: discovery,
		directory: directory,
	}
}

// Nearby handles GET /api/engineers
func (h *EngineerHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lat query parameter is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lng query parameter is required and must be a number")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	result, err := h.discovery.Nearby(r.Context(), lat, lng, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type onboardEngineerRequest struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Skills       []string             `json:"skills"`
	HourlyRate   float64              `json:"hourlyRate"`
	RemoteRate   float64              `json:"remoteRate"`
	Location     entities.Location    `json:"location"`
	Availability schedule.WeeklyHours `json:"availability"`
	Radius       float64              `json:"radius"`
}

// Create handles POST /api/engineers
func (h *EngineerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req onboardEngineerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validate.Email(req.Email); err != nil {
		respondWithAppError(w, err)
		return
	}
	if req.HourlyRate <= 0 {
		respondWithError(w, http.StatusBadRequest, "hourlyRate must be positive")
		return
	}
	for _, entry := range req.Availability {
		if _, ok := schedule.ParseTimeOfDay(string(entry.Start)); !ok {
			respondWithError(w, http.StatusBadRequest, "availability times must be in HH:MM format")
			return
		}
		if _, ok := schedule.ParseTimeOfDay(string(entry.End)); !ok {
			respondWithError(w, http.StatusBadRequest, "availability times must be in HH:MM format")
			return
		}
	}

	radius := req.Radius
	if radius <= 0 {
		radius = entities.DefaultServiceRadiusMiles
	}

	now := time.Now()
	engineer := &entities.Engineer{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		Email:              req.Email,
		Skills:             req.Skills,
		HourlyRate:         req.HourlyRate,
		RemoteRate:         req.RemoteRate,
		Location:           req.Location,
		Availability:       req.Availability,
		ServiceRadiusMiles: radius,
		Status:             entities.EngineerStatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.directory.Create(r.Context(), engineer); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, engineer)
}
