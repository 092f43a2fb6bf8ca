package providers

import (
	"context"
)

// GeolocationProvider resolves coordinates for display and early-access
// context. It plays no part in booking or ranking decisions.
type GeolocationProvider interface {
	// ReverseGeocode converts coordinates to a postal code. Returns a
	// NOT_FOUND error when the upstream cannot resolve one.
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
