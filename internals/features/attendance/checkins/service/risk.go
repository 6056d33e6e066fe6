package service

import "math"

/* =========================================================
 * Risk Signal Combiner
 * Sinyal ternormalisasi [0,1], higher = more trustworthy.
 * Kontribusi risiko per sinyal = weight × (1 − score).
 * ========================================================= */

type SignalType string

const (
	SignalLiveness    SignalType = "liveness"
	SignalFaceMatch   SignalType = "face_match"
	SignalDevice      SignalType = "device"
	SignalNetwork     SignalType = "network"
	SignalGeolocation SignalType = "geolocation"
)

// Bobot tetap, total 1.0.
var signalWeights = map[SignalType]float64{
	SignalLiveness:    0.25,
	SignalFaceMatch:   0.25,
	SignalDevice:      0.20,
	SignalNetwork:     0.15,
	SignalGeolocation: 0.15,
}

// Sinyal absen dinilai netral: tidak menolong penuh, tidak menghukum penuh.
const neutralSignalScore = 0.5

// Rekomendasi muncul kalau kontribusi sinyal > recommendationFactor × weight
// (ekuivalen: score < 0.4).
const recommendationFactor = 0.6

const DefaultRiskThreshold = 0.5

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

type SignalContribution struct {
	Signal       SignalType `json:"signal"`
	Score        float64    `json:"score"`
	Weight       float64    `json:"weight"`
	Contribution float64    `json:"contribution"`
	Missing      bool       `json:"missing,omitempty"`
}

type RiskAssessment struct {
	RiskScore       float64              `json:"risk_score"`
	RiskLevel       RiskLevel            `json:"risk_level"`
	Breakdown       []SignalContribution `json:"breakdown"`
	Recommendations []string             `json:"recommendations,omitempty"`
}

var signalRecommendations = map[SignalType]string{
	SignalLiveness:    "Improve lighting and face visibility",
	SignalFaceMatch:   "Retake the photo facing the camera directly",
	SignalDevice:      "Use a registered, trusted device",
	SignalNetwork:     "Use a stable campus network connection",
	SignalGeolocation: "Move closer to the class venue",
}

const vpnRecommendation = "Disable VPN for check-in"

// urutan deterministik untuk breakdown & rekomendasi
var signalOrder = []SignalType{
	SignalLiveness, SignalFaceMatch, SignalDevice, SignalNetwork, SignalGeolocation,
}

// CombineSignals menggabungkan sinyal sparse jadi satu skor risiko.
// vpnSuspected selalu menghasilkan rekomendasi VPN terlepas dari skor network.
func CombineSignals(signals map[SignalType]float64, vpnSuspected bool) RiskAssessment {
	var (
		total     float64
		breakdown = make([]SignalContribution, 0, len(signalOrder))
		recs      []string
	)

	for _, sig := range signalOrder {
		weight := signalWeights[sig]
		score, ok := signals[sig]
		if !ok {
			score = neutralSignalScore
		}
		score = clamp01(score)

		contribution := weight * (1 - score)
		total += contribution

		breakdown = append(breakdown, SignalContribution{
			Signal:       sig,
			Score:        score,
			Weight:       weight,
			Contribution: contribution,
			Missing:      !ok,
		})

		// rekomendasi hanya untuk sinyal yang benar-benar dikumpulkan
		if ok && contribution > recommendationFactor*weight {
			recs = append(recs, signalRecommendations[sig])
		}
	}

	if vpnSuspected {
		recs = append(recs, vpnRecommendation)
	}

	total = clamp01(total)
	return RiskAssessment{
		RiskScore:       total,
		RiskLevel:       RiskLevelFor(total),
		Breakdown:       breakdown,
		Recommendations: recs,
	}
}

func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 0.3:
		return RiskLevelLow
	case score < 0.5:
		return RiskLevelMedium
	case score < 0.7:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

// SignalWeights mengekspos copy bobot (untuk response & test properti Σ=1).
func SignalWeights() map[SignalType]float64 {
	out := make(map[SignalType]float64, len(signalWeights))
	for k, v := range signalWeights {
		out[k] = v
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
