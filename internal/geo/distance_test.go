package geo

import (
	"math"
	"testing"
)

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMeters             float64
		tolerance              float64 // allowed error in meters
	}{
		{
			name: "KAFD to Qasr Al Hokm (~17 km)",
			lat1: 24.7670, lon1: 46.6427,
			lat2: 24.6290, lon2: 46.7157,
			wantMeters: 17_000,
			tolerance:  500,
		},
		{
			name: "same point returns zero",
			lat1: 24.7136, lon1: 46.6753,
			lat2: 24.7136, lon2: 46.6753,
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			name: "across a street (~100m)",
			lat1: 24.71360, lon1: 46.67530,
			lat2: 24.71360, lon2: 46.67629,
			wantMeters: 100,
			tolerance:  15,
		},
		{
			name: "north pole to south pole",
			lat1: 90, lon1: 0,
			lat2: -90, lon2: 0,
			wantMeters: math.Pi * earthRadiusMeters,
			tolerance:  1,
		},
		{
			name: "equator quarter circumference",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 90,
			wantMeters: math.Pi / 2 * earthRadiusMeters,
			tolerance:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("Haversine() = %.1f m, want %.1f m (±%.0f)", got, tt.wantMeters, tt.tolerance)
			}
		})
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	a := Haversine(24.7670, 46.6427, 24.6290, 46.7157)
	b := Haversine(24.6290, 46.7157, 24.7670, 46.6427)
	if a != b {
		t.Errorf("Haversine not symmetric: %f != %f", a, b)
	}
}

func TestHaversineKm(t *testing.T) {
	m := Haversine(24.7670, 46.6427, 24.6290, 46.7157)
	km := HaversineKm(24.7670, 46.6427, 24.6290, 46.7157)
	if math.Abs(km*1000-m) > 0.001 {
		t.Errorf("HaversineKm = %f km, want %f km", km, m/1000)
	}
}
