package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string

	// Face / risk service
	FaceServiceURL     string
	FaceServiceTimeout time.Duration

	// Ambang default risk pipeline (bisa dioverride per-session)
	RiskScoreThreshold   float64
	LivenessThreshold    float64
	FaceMatchThreshold   float64
	GeofenceRadiusMeters float64
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	FaceServiceURL = GetEnv("FACE_SERVICE_URL", "http://localhost:8001")
	FaceServiceTimeout = time.Duration(GetEnvInt("FACE_SERVICE_TIMEOUT_SECONDS", 8)) * time.Second

	RiskScoreThreshold = GetEnvFloat("RISK_SCORE_THRESHOLD", 0.5)
	LivenessThreshold = GetEnvFloat("LIVENESS_THRESHOLD", 0.6)
	FaceMatchThreshold = GetEnvFloat("FACE_MATCH_THRESHOLD", 0.7)
	GeofenceRadiusMeters = GetEnvFloat("GEOFENCE_RADIUS_METERS", 100.0)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ %s bukan angka valid (%q), pakai default %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️ %s bukan angka valid (%q), pakai default %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
