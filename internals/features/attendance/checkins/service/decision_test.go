package service

import (
	"testing"

	"absensiku_backend/internals/features/attendance/checkins/model"
	"absensiku_backend/internals/features/verification"
)

func testPolicy() DecisionPolicy {
	return DecisionPolicy{
		RequireLiveness:  true,
		RequireFaceMatch: true,
		RiskThreshold:    0.5,
		LivenessPassLine: 0.6,
		GeofenceRadius:   100,
	}
}

func TestLivenessFailed(t *testing.T) {
	pol := testPolicy()

	tests := []struct {
		name string
		pol  DecisionPolicy
		res  *verification.LivenessResult
		want bool
	}{
		{"not required", DecisionPolicy{RequireLiveness: false}, &verification.LivenessResult{LivenessPassed: false}, false},
		{"not collected", pol, nil, false},
		{"passed above line", pol, &verification.LivenessResult{LivenessPassed: true, LivenessScore: 0.8}, false},
		{"explicit fail", pol, &verification.LivenessResult{LivenessPassed: false, LivenessScore: 0.8}, true},
		{"below pass line", pol, &verification.LivenessResult{LivenessPassed: true, LivenessScore: 0.4}, true},
		{"exactly at line", pol, &verification.LivenessResult{LivenessPassed: true, LivenessScore: 0.6}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LivenessFailed(tt.pol, tt.res); got != tt.want {
				t.Errorf("LivenessFailed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveStatus(t *testing.T) {
	pol := testPolicy()
	inBounds := &GeofenceResult{WithinGeofence: true, DistanceMeters: 20}
	severe := &GeofenceResult{WithinGeofence: false, SeverelyOutOfBounds: true, DistanceMeters: 250}

	tests := []struct {
		name           string
		livenessFailed bool
		geo            *GeofenceResult
		riskScore      float64
		want           model.CheckInStatus
	}{
		// Semua sinyal sehat, skor rendah → approved
		{"low risk approved", false, inBounds, 0.10, model.CheckInStatusApproved},
		// Skor di ambang → flagged, bukan rejected
		{"at threshold flagged", false, inBounds, 0.50, model.CheckInStatusFlagged},
		{"high risk flagged", false, inBounds, 0.72, model.CheckInStatusFlagged},
		// Liveness gagal menolak walau skor rendah sekalipun
		{"liveness fail rejects", true, inBounds, 0.05, model.CheckInStatusRejected},
		// Jauh di luar geofence menolak walau skor rendah
		{"severe geo rejects", false, severe, 0.05, model.CheckInStatusRejected},
		// Critical menang atas skor: dua-duanya buruk tetap rejected
		{"critical beats score", true, severe, 0.95, model.CheckInStatusRejected},
		{"no geolocation low risk", false, nil, 0.20, model.CheckInStatusApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(pol, tt.livenessFailed, tt.geo, RiskAssessment{RiskScore: tt.riskScore})
			if got != tt.want {
				t.Errorf("ResolveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeolocationSignal(t *testing.T) {
	accGood := 15.0
	accCoarse := 150.0

	tests := []struct {
		name     string
		geo      GeofenceResult
		accuracy *float64
		want     float64
	}{
		{"inside good accuracy", GeofenceResult{WithinGeofence: true}, &accGood, 0.9},
		{"inside no accuracy", GeofenceResult{WithinGeofence: true}, nil, 0.9},
		{"inside coarse accuracy", GeofenceResult{WithinGeofence: true}, &accCoarse, 0.5},
		{"outside not severe", GeofenceResult{WithinGeofence: false}, &accGood, 0.3},
		{"severely out", GeofenceResult{WithinGeofence: false, SeverelyOutOfBounds: true}, &accGood, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeolocationSignal(tt.geo, tt.accuracy); got != tt.want {
				t.Errorf("GeolocationSignal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildRiskFactors(t *testing.T) {
	assessment := CombineSignals(map[SignalType]float64{
		SignalLiveness:    0.2, // kontribusi 0.2 > 0.1×0.25 → masuk
		SignalFaceMatch:   0.95,
		SignalDevice:      0.95,
		SignalNetwork:     0.95,
		SignalGeolocation: 0.95,
	}, false)

	t.Run("significant contributions only", func(t *testing.T) {
		factors := BuildRiskFactors(assessment, false, nil)
		if len(factors) != 1 {
			t.Fatalf("factors = %v, want exactly liveness", factors)
		}
		if factors[0].Type != string(SignalLiveness) {
			t.Errorf("factor type = %q, want liveness", factors[0].Type)
		}
	})

	t.Run("critical entries recorded", func(t *testing.T) {
		severe := &GeofenceResult{SeverelyOutOfBounds: true}
		factors := BuildRiskFactors(assessment, true, severe)
		var haveLiveness, haveGeo bool
		for _, f := range factors {
			if f.Type == "liveness_failed" && f.Severity == "critical" {
				haveLiveness = true
			}
			if f.Type == "geo_out_of_bounds" && f.Severity == "critical" {
				haveGeo = true
			}
		}
		if !haveLiveness || !haveGeo {
			t.Errorf("missing critical factors: %v", factors)
		}
	})

	t.Run("missing signals excluded", func(t *testing.T) {
		a := CombineSignals(map[SignalType]float64{}, false)
		factors := BuildRiskFactors(a, false, nil)
		if len(factors) != 0 {
			t.Errorf("all-missing should yield no factors, got %v", factors)
		}
	})
}
