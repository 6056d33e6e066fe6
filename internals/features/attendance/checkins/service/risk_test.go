package service

import (
	"math"
	"testing"
)

func TestSignalWeights_SumToOne(t *testing.T) {
	var sum float64
	for _, w := range SignalWeights() {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("Σ weights = %v, want 1.0", sum)
	}
}

func TestCombineSignals_AllStrongSignals(t *testing.T) {
	// Scenario: semua sinyal 0.9 → risk = Σ w×0.1 = 0.10
	signals := map[SignalType]float64{
		SignalLiveness:    0.9,
		SignalFaceMatch:   0.9,
		SignalDevice:      0.9,
		SignalNetwork:     0.9,
		SignalGeolocation: 0.9,
	}
	got := CombineSignals(signals, false)
	if math.Abs(got.RiskScore-0.10) > 1e-9 {
		t.Errorf("RiskScore = %v, want 0.10", got.RiskScore)
	}
	if got.RiskLevel != RiskLevelLow {
		t.Errorf("RiskLevel = %v, want LOW", got.RiskLevel)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("unexpected recommendations: %v", got.Recommendations)
	}
}

func TestCombineSignals_MissingSignalsAreNeutral(t *testing.T) {
	// Sinyal absen dinilai 0.5: tidak menolong penuh, tidak menghukum penuh.
	got := CombineSignals(map[SignalType]float64{}, false)
	if math.Abs(got.RiskScore-0.5) > 1e-9 {
		t.Errorf("all-missing RiskScore = %v, want 0.5", got.RiskScore)
	}

	// network absen, sisanya sempurna → hanya 0.15×0.5
	signals := map[SignalType]float64{
		SignalLiveness:    1.0,
		SignalFaceMatch:   1.0,
		SignalDevice:      1.0,
		SignalGeolocation: 1.0,
	}
	got = CombineSignals(signals, false)
	if math.Abs(got.RiskScore-0.075) > 1e-9 {
		t.Errorf("RiskScore = %v, want 0.075", got.RiskScore)
	}
	for _, b := range got.Breakdown {
		if b.Signal == SignalNetwork && !b.Missing {
			t.Error("network breakdown should be marked missing")
		}
	}
}

func TestCombineSignals_ClampedToUnitInterval(t *testing.T) {
	signals := map[SignalType]float64{
		SignalLiveness:    -5,
		SignalFaceMatch:   -5,
		SignalDevice:      -5,
		SignalNetwork:     -5,
		SignalGeolocation: -5,
	}
	got := CombineSignals(signals, false)
	if got.RiskScore < 0 || got.RiskScore > 1 {
		t.Errorf("RiskScore = %v, want within [0,1]", got.RiskScore)
	}
	if got.RiskScore != 1.0 {
		t.Errorf("worst-case RiskScore = %v, want 1.0", got.RiskScore)
	}
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskLevelLow},
		{0.29, RiskLevelLow},
		{0.3, RiskLevelMedium},
		{0.49, RiskLevelMedium},
		{0.5, RiskLevelHigh},
		{0.69, RiskLevelHigh},
		{0.7, RiskLevelCritical},
		{1.0, RiskLevelCritical},
	}
	for _, tt := range tests {
		if got := RiskLevelFor(tt.score); got != tt.want {
			t.Errorf("RiskLevelFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestCombineSignals_Recommendations(t *testing.T) {
	// liveness 0.2 → kontribusi 0.25×0.8 = 0.2 > 0.6×0.25 → rekomendasi
	signals := map[SignalType]float64{
		SignalLiveness:    0.2,
		SignalFaceMatch:   0.9,
		SignalDevice:      0.9,
		SignalNetwork:     0.9,
		SignalGeolocation: 0.9,
	}
	got := CombineSignals(signals, false)
	if len(got.Recommendations) != 1 || got.Recommendations[0] != "Improve lighting and face visibility" {
		t.Errorf("Recommendations = %v, want liveness remediation only", got.Recommendations)
	}

	// sinyal absen tidak boleh memunculkan rekomendasi
	got = CombineSignals(map[SignalType]float64{}, false)
	if len(got.Recommendations) != 0 {
		t.Errorf("missing signals produced recommendations: %v", got.Recommendations)
	}

	// VPN flag selalu menghasilkan rekomendasi, berapapun skornya
	got = CombineSignals(map[SignalType]float64{SignalNetwork: 1.0}, true)
	found := false
	for _, r := range got.Recommendations {
		if r == "Disable VPN for check-in" {
			found = true
		}
	}
	if !found {
		t.Errorf("VPN recommendation missing: %v", got.Recommendations)
	}
}

func TestCombineSignals_DeterministicBreakdownOrder(t *testing.T) {
	signals := map[SignalType]float64{
		SignalGeolocation: 0.5,
		SignalLiveness:    0.5,
	}
	a := CombineSignals(signals, false)
	b := CombineSignals(signals, false)
	for i := range a.Breakdown {
		if a.Breakdown[i].Signal != b.Breakdown[i].Signal {
			t.Fatal("breakdown order is not deterministic")
		}
	}
}
