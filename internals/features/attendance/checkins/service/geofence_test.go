package service

import (
	"math"
	"testing"
)

func TestHaversineDistance_ZeroWhenSamePoint(t *testing.T) {
	points := []struct {
		name     string
		lat, lon float64
	}{
		{"equator", 0, 0},
		{"jakarta", -6.2088, 106.8456},
		{"negative lon", 40.7128, -74.0060},
	}
	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			if d := HaversineDistance(p.lat, p.lon, p.lat, p.lon); d != 0 {
				t.Errorf("distance to self = %v, want 0", d)
			}
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"short hop", -6.2088, 106.8456, -6.2090, 106.8460},
		{"across hemisphere", 51.5074, -0.1278, -33.8688, 151.2093},
		{"near poles", 89.9, 0, -89.9, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			ba := HaversineDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("asymmetric: a→b=%v b→a=%v", ab, ba)
			}
		})
	}
}

func TestHaversineDistance_KnownDistance(t *testing.T) {
	// ~111.19 km per derajat latitude di meridian
	d := HaversineDistance(0, 0, 1, 0)
	if math.Abs(d-111194.9) > 100 {
		t.Errorf("1 degree latitude = %v m, want ~111195 m", d)
	}
}

func TestEvaluateGeofence(t *testing.T) {
	venueLat, venueLon := -6.2088, 106.8456

	tests := []struct {
		name       string
		offsetLat  float64 // derajat, ~111.19 km per derajat
		radius     float64
		wantWithin bool
		wantSevere bool
	}{
		{"at venue", 0, 100, true, false},
		{"inside radius", 0.0005, 100, true, false}, // ~55 m
		{"outside but not severe", 0.0013, 100, false, false}, // ~145 m
		{"severely out of bounds", 0.00225, 100, false, true}, // ~250 m > 2×100
		{"boundary not severe at 2x", 0.0017, 100, false, false}, // ~189 m
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateGeofence(venueLat+tt.offsetLat, venueLon, venueLat, venueLon, tt.radius)
			if got.WithinGeofence != tt.wantWithin {
				t.Errorf("WithinGeofence = %v (d=%.1f m), want %v", got.WithinGeofence, got.DistanceMeters, tt.wantWithin)
			}
			if got.SeverelyOutOfBounds != tt.wantSevere {
				t.Errorf("SeverelyOutOfBounds = %v (d=%.1f m), want %v", got.SeverelyOutOfBounds, got.DistanceMeters, tt.wantSevere)
			}
		})
	}
}
