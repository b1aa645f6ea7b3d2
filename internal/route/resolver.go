package route

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/catalog"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/geo"
)

// resolveDestination maps free text to a station. Matching runs in three
// stages of decreasing confidence: exact lookup-key match, substring
// match in either direction, then geocoding the text and snapping to the
// nearest station. Catalog order breaks ties at each stage so repeated
// queries resolve identically.
func (s *Service) resolveDestination(ctx context.Context, text string) (*catalog.Station, error) {
	q := catalog.Normalize(text)
	if q == "" {
		return nil, fmt.Errorf("%w: empty destination", ErrStationNotFound)
	}

	for _, st := range s.catalog.Stations() {
		if st.HasKey(q) {
			return st, nil
		}
	}

	for _, st := range s.catalog.Stations() {
		for _, k := range st.LookupKeys {
			if strings.Contains(k, q) || strings.Contains(q, k) {
				return st, nil
			}
		}
	}

	if s.geo != nil {
		place, err := s.geo.ResolvePlace(ctx, text)
		if err != nil {
			// Geocoding trouble must not take routing down; the rider
			// just gets a not-found answer.
			s.logger.Warn("geocoding failed", "query", text, "error", err)
		} else if place != nil {
			st, _ := s.NearestStation(place.Lat, place.Lon)
			if st != nil {
				s.logger.Info("destination resolved via geocoder",
					"query", text, "place", place.Name, "station", st.ID)
				return st, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrStationNotFound, text)
}

// NearestStation scans the catalog for the station closest to a point.
// Distance is returned in meters. Both returns are zero when the catalog
// is empty.
func (s *Service) NearestStation(lat, lon float64) (*catalog.Station, float64) {
	var best *catalog.Station
	bestDist := 0.0
	for _, st := range s.catalog.Stations() {
		d := geo.Haversine(lat, lon, st.Lat, st.Lon)
		if best == nil || d < bestDist {
			best = st
			bestDist = d
		}
	}
	return best, bestDist
}
