package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{37.7749, -122.4194},
		{-33.8688, 151.2093},
	}

	for _, p := range points {
		assert.InDelta(t, 0, Distance(p[0], p[1], p[0], p[1]), 1e-9)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	ab := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	ba := Distance(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// New York to Los Angeles is roughly 2445 miles great-circle.
	d := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 2445, d, 10)
}

func TestDistance_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Distance(math.NaN(), 0, 0, 0)))
}
