// Package geo provides great-circle distance math for engineer discovery.
package geo

import "math"

// earthRadiusMiles is the mean Earth radius used for haversine distances.
const earthRadiusMiles = 3959.0

// Distance returns the great-circle distance in miles between two
// coordinate pairs using the haversine formula. It is pure and performs no
// validation: NaN or out-of-range inputs propagate as NaN, so callers must
// check coordinate presence first.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
