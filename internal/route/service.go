// Package route plans metro itineraries: it resolves a rider's position
// and free-text destination onto the station network and runs a shortest
// path over the weighted transit graph.
package route

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/places"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/transit"
)

// Geocoder resolves free-text place queries to coordinates. A nil place
// with a nil error means not found.
type Geocoder interface {
	ResolvePlace(ctx context.Context, query string) (*places.Place, error)
}

// Service owns the catalog and the derived transit graph. The graph is
// built lazily on first use and shared by all requests afterwards.
type Service struct {
	catalog *catalog.Catalog
	params  transit.Params
	geo     Geocoder
	logger  *slog.Logger

	once  sync.Once
	graph *transit.Graph
}

// New wires a planning service. geo may be nil, in which case destination
// resolution stops at catalog matching.
func New(c *catalog.Catalog, p transit.Params, geo Geocoder, logger *slog.Logger) *Service {
	return &Service{catalog: c, params: p, geo: geo, logger: logger}
}

// Stations exposes the catalog in load order for listings.
func (s *Service) Stations() []*catalog.Station { return s.catalog.Stations() }

// Graph returns the transit graph, building it on first call.
func (s *Service) Graph() *transit.Graph {
	s.once.Do(func() {
		s.graph = transit.Build(s.catalog, s.params, s.logger)
	})
	return s.graph
}

// Warm builds the graph eagerly so the first request pays no latency.
// It fails when the catalog is empty.
func (s *Service) Warm() error {
	if s.catalog.Len() == 0 {
		return ErrNoStations
	}
	s.Graph()
	return nil
}

// Plan is a fully formatted itinerary from the rider's nearest station to
// a resolved destination station.
type Plan struct {
	Start        *catalog.Station `json:"start"`
	End          *catalog.Station `json:"end"`
	Path         []string         `json:"path"`
	TotalMinutes float64          `json:"total_minutes"`
	Steps        []Step           `json:"steps"`
}

// Plan resolves the rider position and destination text and computes the
// cheapest route between them. Errors are the package sentinels, wrapped
// with request context.
func (s *Service) Plan(ctx context.Context, lat, lon float64, destination string) (*Plan, error) {
	if !validCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: (%f, %f)", ErrInvalidCoordinates, lat, lon)
	}
	if s.catalog.Len() == 0 {
		return nil, ErrNoStations
	}

	start, _ := s.NearestStation(lat, lon)
	dest, err := s.resolveDestination(ctx, destination)
	if err != nil {
		return nil, err
	}

	g := s.Graph()
	res, ok := g.ShortestPath(start.ID, dest.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoPath, start.ID, dest.ID)
	}

	return &Plan{
		Start:        start,
		End:          dest,
		Path:         res.Path,
		TotalMinutes: res.TotalMinutes,
		Steps:        buildItinerary(g, res.Path),
	}, nil
}

func validCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
