package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tiltlabs/engineer-on-demand/internal/application/services"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
)

// Coordinates around San Francisco; ~7 miles between downtown and Daly City,
// ~40 miles to San Jose.
var (
	requesterLat = 37.7749
	requesterLng = -122.4194
)

func locatedEngineer(id string, lat, lng, radius float64) *entities.Engineer {
	return &entities.Engineer{
		ID:                 id,
		Name:               id,
		Status:             entities.EngineerStatusActive,
		ServiceRadiusMiles: radius,
		Location: entities.Location{
			Coordinates: &entities.Coordinates{Lat: lat, Lng: lng},
		},
	}
}

func TestDiscoveryService_Nearby(t *testing.T) {
	t.Run("local engineers rank ahead of closer non-local ones", func(t *testing.T) {
		engineers := new(MockEngineerRepository)
		service := services.NewDiscoveryService(engineers, 3)

		// "near" is ~7 miles away but only serves 5 miles; "far" is ~40
		// miles away and serves 50.
		near := locatedEngineer("near", 37.6879, -122.4702, 5)
		far := locatedEngineer("far", 37.3382, -121.8863, 50)
		engineers.On("ListActive", mock.Anything).
			Return([]*entities.Engineer{near, far}, nil)

		result, err := service.Nearby(context.Background(), requesterLat, requesterLng, 0)

		require.NoError(t, err)
		require.Len(t, result.Engineers, 2)
		assert.Equal(t, "far", result.Engineers[0].ID)
		assert.True(t, result.Engineers[0].IsLocal)
		assert.False(t, result.Engineers[1].IsLocal)
		assert.Equal(t, 1, result.LocalCount)
	})

	t.Run("classification uses the engineer's own radius", func(t *testing.T) {
		engineers := new(MockEngineerRepository)
		service := services.NewDiscoveryService(engineers, 3)

		// ~7 miles away with a 25 mile service radius: local.
		e := locatedEngineer("eng", 37.6879, -122.4702, 25)
		engineers.On("ListActive", mock.Anything).Return([]*entities.Engineer{e}, nil)

		result, err := service.Nearby(context.Background(), requesterLat, requesterLng, 3)

		require.NoError(t, err)
		require.Len(t, result.Engineers, 1)
		assert.True(t, result.Engineers[0].IsLocal)
		assert.InDelta(t, 7, result.Engineers[0].DistanceMiles, 2)
	})

	t.Run("missing coordinates sort last with the sentinel distance", func(t *testing.T) {
		engineers := new(MockEngineerRepository)
		service := services.NewDiscoveryService(engineers, 3)

		located := locatedEngineer("located", 37.6879, -122.4702, 25)
		unlocated := &entities.Engineer{ID: "unlocated", Status: entities.EngineerStatusActive, ServiceRadiusMiles: 25}
		engineers.On("ListActive", mock.Anything).
			Return([]*entities.Engineer{unlocated, located}, nil)

		result, err := service.Nearby(context.Background(), requesterLat, requesterLng, 3)

		require.NoError(t, err)
		require.Len(t, result.Engineers, 2)
		assert.Equal(t, "located", result.Engineers[0].ID)
		assert.Equal(t, float64(999), result.Engineers[1].DistanceMiles)
		assert.False(t, result.Engineers[1].IsLocal)
	})

	t.Run("truncates to the display limit", func(t *testing.T) {
		engineers := new(MockEngineerRepository)
		service := services.NewDiscoveryService(engineers, 3)

		pool := []*entities.Engineer{
			locatedEngineer("a", 37.78, -122.42, 25),
			locatedEngineer("b", 37.76, -122.42, 25),
			locatedEngineer("c", 37.80, -122.41, 25),
			locatedEngineer("d", 37.70, -122.45, 25),
		}
		engineers.On("ListActive", mock.Anything).Return(pool, nil)

		result, err := service.Nearby(context.Background(), requesterLat, requesterLng, 2)

		require.NoError(t, err)
		assert.Len(t, result.Engineers, 2)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("falls back to the remote pool when nothing is local", func(t *testing.T) {
		engineers := new(MockEngineerRepository)
		service := services.NewDiscoveryService(engineers, 3)

		// ~40 miles away, 5 mile radius: not local.
		nonLocal := locatedEngineer("non-local", 37.3382, -121.8863, 5)
		engineers.On("ListActive", mock.Anything).Return([]*entities.Engineer{nonLocal}, nil)

		remote := locatedEngineer("remote", 40.0, -100.0, 5)
		remote.RemoteRate = 60
		engineers.On("ListRemoteCapable", mock.Anything).Return([]*entities.Engineer{remote}, nil)

		result, err := service.Nearby(context.Background(), requesterLat, requesterLng, 3)

		require.NoError(t, err)
		assert.True(t, result.Remote)
		require.Len(t, result.Engineers, 1)
		assert.Equal(t, "remote", result.Engineers[0].ID)
		assert.True(t, result.Engineers[0].IsRemote)
		assert.False(t, result.Engineers[0].IsLocal)
		assert.Equal(t, 0, result.LocalCount)
	})

	t.Run("empty candidate pool falls back to remote", func(t *testing.T) {
		engineers := new(MockEngineerRepository)
		service := services.NewDiscoveryService(engineers, 3)

		engineers.On("ListActive", mock.Anything).Return([]*entities.Engineer{}, nil)
		engineers.On("ListRemoteCapable", mock.Anything).Return([]*entities.Engineer{}, nil)

		result, err := service.Nearby(context.Background(), requesterLat, requesterLng, 3)

		require.NoError(t, err)
		assert.True(t, result.Remote)
		assert.Empty(t, result.Engineers)
	})
}
