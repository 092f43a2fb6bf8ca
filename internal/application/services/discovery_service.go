package services

import (
	"context"
	"sort"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/entities"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/repositories"
	"github.com/tiltlabs/engineer-on-demand/pkg/geo"
)

// unknownDistanceMiles is assigned to engineers without coordinates so they
// sort behind every located engineer.
const unknownDistanceMiles = 999

// DiscoveryService ranks engineers by proximity to a requester. An engineer
// is local when the distance is within that engineer's own service radius;
// the requester's search radius plays no part in classification.
type DiscoveryService struct {
	engineers    repositories.EngineerRepository
	defaultLimit int
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(engineers repositories.EngineerRepository, defaultLimit int) *DiscoveryService {
	if defaultLimit <= 0 {
		defaultLimit = 3
	}
	return &DiscoveryService{
		engineers:    engineers,
		defaultLimit: defaultLimit,
	}
}

// DiscoveryResult is a ranked, capped engineer list for display.
type DiscoveryResult struct {
	Engineers  []entities.RankedEngineer `json:"engineers"`
	Count      int                       `json:"count"`
	LocalCount int                       `json:"localCount"`
	Remote     bool                      `json:"remote,omitempty"`
}

// Nearby returns up to limit engineers ranked local-first, then by distance
// ascending. When no engineer is local to the requester, it falls back to
// the remote-capable pool instead; the two lists are never merged.
func (s *DiscoveryService) Nearby(ctx context.Context, lat, lng float64, limit int) (*DiscoveryResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	candidates, err := s.engineers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	ranked := rankByDistance(candidates, lat, lng)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	localCount := 0
	for _, e := range ranked {
		if e.IsLocal {
			localCount++
		}
	}

	if localCount == 0 {
		return s.remoteFallback(ctx, lat, lng, limit)
	}

	return &DiscoveryResult{
		Engineers:  ranked,
		Count:      len(ranked),
		LocalCount: localCount,
	}, nil
}

// remoteFallback serves areas without local engineers from the pool of
// engineers offering a remote rate.
func (s *DiscoveryService) remoteFallback(ctx context.Context, lat, lng float64, limit int) (*DiscoveryResult, error) {
	pool, err := s.engineers.ListRemoteCapable(ctx)
	if err != nil {
		return nil, err
	}

	ranked := rankByDistance(pool, lat, lng)
	for i := range ranked {
		ranked[i].IsLocal = false
		ranked[i].IsRemote = true
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &DiscoveryResult{
		Engineers: ranked,
		Count:     len(ranked),
		Remote:    true,
	}, nil
}

func rankByDistance(candidates []*entities.Engineer, lat, lng float64) []entities.RankedEngineer {
	ranked := make([]entities.RankedEngineer, 0, len(candidates))
	for _, engineer := range candidates {
		entry := entities.RankedEngineer{
			Engineer:      *engineer,
			DistanceMiles: unknownDistanceMiles,
		}
		if coords := engineer.Location.Coordinates; coords != nil {
			entry.DistanceMiles = geo.Distance(lat, lng, coords.Lat, coords.Lng)
			entry.IsLocal = entry.DistanceMiles <= engineer.ServiceRadiusMiles
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].IsLocal != ranked[j].IsLocal {
			return ranked[i].IsLocal
		}
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})

	return ranked
}
