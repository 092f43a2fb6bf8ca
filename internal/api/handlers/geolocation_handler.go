package handlers

import (
	"net/http"
	"strconv"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/providers"
)

// GeolocationHandler handles reverse-geocoding requests
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{
		provider: provider,
	}
}

// ReverseGeocode handles GET /api/geocode
func (h *GeolocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
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

	zip, err := h.provider.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"zipCode": zip,
	})
}
