package service

import "math"

const (
	earthRadiusMeters = 6371000.0

	// Di atas 2× radius dianggap pelanggaran berat: sinyal critical
	// yang tidak boleh "dirata-rata" oleh skor tertimbang.
	severeBoundsFactor = 2.0
)

type GeofenceResult struct {
	DistanceMeters      float64 `json:"distance_meters"`
	WithinGeofence      bool    `json:"within_geofence"`
	SeverelyOutOfBounds bool    `json:"severely_out_of_bounds"`
}

// HaversineDistance menghitung jarak great-circle dua koordinat dalam meter.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// EvaluateGeofence membandingkan koordinat submit vs venue.
func EvaluateGeofence(lat, lon, venueLat, venueLon, radiusMeters float64) GeofenceResult {
	d := HaversineDistance(lat, lon, venueLat, venueLon)
	return GeofenceResult{
		DistanceMeters:      d,
		WithinGeofence:      d <= radiusMeters,
		SeverelyOutOfBounds: d > severeBoundsFactor*radiusMeters,
	}
}
