package geolocation

import (
	"context"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/providers"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

// MockGeolocationProvider implements a mock geolocation provider for local
// development without network access
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// mockZips covers a few rough coordinate boxes for common US metros.
var mockZips = []struct {
	minLat, maxLat float64
	minLng, maxLng float64
	zip            string
}{
	{37.5, 38.0, -122.8, -122.2, "94102"}, // San Francisco
	{40.5, 41.0, -74.3, -73.6, "10001"},   // New York
	{33.8, 34.3, -118.6, -117.9, "90001"}, // Los Angeles
	{41.6, 42.1, -88.0, -87.4, "60601"},   // Chicago
}

// ReverseGeocode converts coordinates to a postal code (mock implementation)
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	for _, box := range mockZips {
		if lat >= box.minLat && lat <= box.maxLat && lng >= box.minLng && lng <= box.maxLng {
			return box.zip, nil
		}
	}
	return "", apperrors.NewNotFoundError("no postal code found for the given coordinates")
}
