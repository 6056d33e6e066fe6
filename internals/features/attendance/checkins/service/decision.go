package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/features/attendance/checkins/model"
	deviceModel "absensiku_backend/internals/features/attendance/devices/model"
	sessionModel "absensiku_backend/internals/features/attendance/sessions/model"
	sessionsvc "absensiku_backend/internals/features/attendance/sessions/service"
	auditsvc "absensiku_backend/internals/features/audit/service"
	courseModel "absensiku_backend/internals/features/courses/model"
	userModel "absensiku_backend/internals/features/users/model"
	"absensiku_backend/internals/features/verification"
	"absensiku_backend/internals/helpers/errs"
)

/* =========================================================
 * Decision Engine — pipeline admission control check-in.
 * Urutan: gate sesi → duplicate guard → geofence + verifikasi
 * (concurrent) → critical short-circuit → skor tertimbang.
 * Critical dievaluasi SEBELUM skor supaya satu red flag berat
 * tidak terdilusi jadi rata-rata yang lolos.
 * ========================================================= */

type DecisionEngine struct {
	DB       *gorm.DB
	Verifier verification.Client
	Audit    *auditsvc.Recorder
}

func NewDecisionEngine(db *gorm.DB, verifier verification.Client, audit *auditsvc.Recorder) *DecisionEngine {
	return &DecisionEngine{DB: db, Verifier: verifier, Audit: audit}
}

type CheckInInput struct {
	SessionID              uuid.UUID
	StudentID              uuid.UUID
	Latitude               *float64
	Longitude              *float64
	LocationAccuracyMeters *float64
	DeviceFingerprint      *string
	LivenessPayload        *string // base64 frame untuk liveness + face match
	IPAddress              string
	UserAgent              string
}

// DecisionPolicy — policy efektif per sesi (session override > default env).
type DecisionPolicy struct {
	RequireLiveness  bool
	RequireFaceMatch bool
	RiskThreshold    float64
	LivenessPassLine float64
	GeofenceRadius   float64
}

func PolicyFor(s *sessionModel.SessionModel) DecisionPolicy {
	pol := DecisionPolicy{
		RequireLiveness:  s.SessionRequireLivenessCheck,
		RequireFaceMatch: s.SessionRequireFaceMatch,
		RiskThreshold:    DefaultRiskThreshold,
		LivenessPassLine: 0.6,
		GeofenceRadius:   100.0,
	}
	if configs.RiskScoreThreshold > 0 {
		pol.RiskThreshold = configs.RiskScoreThreshold
	}
	if configs.LivenessThreshold > 0 {
		pol.LivenessPassLine = configs.LivenessThreshold
	}
	if configs.GeofenceRadiusMeters > 0 {
		pol.GeofenceRadius = configs.GeofenceRadiusMeters
	}
	if s.SessionRiskThreshold != nil {
		pol.RiskThreshold = *s.SessionRiskThreshold
	}
	if s.SessionGeofenceRadiusMeters != nil {
		pol.GeofenceRadius = *s.SessionGeofenceRadiusMeters
	}
	return pol
}

/* =========================================================
 * Bagian pure — bisa dites tanpa DB / face service
 * ========================================================= */

// LivenessFailed: liveness wajib, dikumpulkan, dan gagal eksplisit
// (explicit fail atau score di bawah pass line sendiri).
func LivenessFailed(pol DecisionPolicy, res *verification.LivenessResult) bool {
	if !pol.RequireLiveness || res == nil {
		return false
	}
	return !res.LivenessPassed || res.LivenessScore < pol.LivenessPassLine
}

// ResolveStatus — critical short-circuit dulu (urutan tetap), baru skor.
func ResolveStatus(pol DecisionPolicy, livenessFailed bool, geo *GeofenceResult, assessment RiskAssessment) model.CheckInStatus {
	if livenessFailed {
		return model.CheckInStatusRejected
	}
	if geo != nil && geo.SeverelyOutOfBounds {
		return model.CheckInStatusRejected
	}
	if assessment.RiskScore >= pol.RiskThreshold {
		return model.CheckInStatusFlagged
	}
	return model.CheckInStatusApproved
}

// GeolocationSignal memetakan hasil geofence (+akurasi GPS) ke sinyal [0,1].
func GeolocationSignal(geo GeofenceResult, accuracyMeters *float64) float64 {
	switch {
	case geo.SeverelyOutOfBounds:
		return 0.0
	case !geo.WithinGeofence:
		return 0.3
	}
	if accuracyMeters != nil && *accuracyMeters > 100 {
		// fix GPS terlalu kasar untuk dipercaya penuh
		return 0.5
	}
	return 0.9
}

type RiskFactor struct {
	Type         string  `json:"type"`
	Severity     string  `json:"severity,omitempty"`
	Score        float64 `json:"score,omitempty"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution,omitempty"`
}

// BuildRiskFactors menyusun payload risk_factors: kontribusi signifikan
// dari breakdown + critical factor (tidak ikut skor, tapi tercatat).
func BuildRiskFactors(a RiskAssessment, livenessFailed bool, geo *GeofenceResult) []RiskFactor {
	factors := make([]RiskFactor, 0, len(a.Breakdown)+2)
	for _, b := range a.Breakdown {
		if b.Missing || b.Contribution <= 0.1*b.Weight {
			continue
		}
		factors = append(factors, RiskFactor{
			Type:         string(b.Signal),
			Score:        b.Score,
			Weight:       b.Weight,
			Contribution: b.Contribution,
		})
	}
	if livenessFailed {
		factors = append(factors, RiskFactor{
			Type: "liveness_failed", Severity: "critical", Weight: 1.0,
		})
	}
	if geo != nil && geo.SeverelyOutOfBounds {
		factors = append(factors, RiskFactor{
			Type: "geo_out_of_bounds", Severity: "critical", Weight: 1.0,
		})
	}
	return factors
}

/* =========================================================
 * Pipeline lengkap
 * ========================================================= */

func (e *DecisionEngine) Process(ctx context.Context, in CheckInInput) (*model.CheckInModel, error) {
	now := time.Now().UTC()

	// 1) Session ada & window terbuka — dievaluasi saat request, bukan cache.
	var session sessionModel.SessionModel
	if err := e.DB.WithContext(ctx).
		Where("session_id = ?", in.SessionID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Session")
		}
		return nil, errs.Internal(err)
	}
	if !sessionsvc.CanAcceptCheckIn(&session, now) {
		return nil, errs.ErrSessionNotOpen
	}

	// 2) Harus terdaftar aktif di course
	var enrolled int64
	if err := e.DB.WithContext(ctx).Model(&courseModel.EnrollmentModel{}).
		Where("enrollment_student_id = ? AND enrollment_course_id = ? AND enrollment_is_active = TRUE",
			in.StudentID, session.SessionCourseID).
		Count(&enrolled).Error; err != nil {
		return nil, errs.Internal(err)
	}
	if enrolled == 0 {
		return nil, errs.ErrNotEnrolled
	}

	// 3) Pre-flight duplicate check. Hanya optimasi —
	// guard otoritatif tetap unique index (session, student).
	var existing int64
	if err := e.DB.WithContext(ctx).Model(&model.CheckInModel{}).
		Where("checkin_session_id = ? AND checkin_student_id = ?", in.SessionID, in.StudentID).
		Count(&existing).Error; err != nil {
		return nil, errs.Internal(err)
	}
	if existing > 0 {
		return nil, errs.ErrAlreadyCheckedIn
	}

	// 4) Device (opsional) + student untuk reference hash wajah
	var device *deviceModel.DeviceModel
	if in.DeviceFingerprint != nil && *in.DeviceFingerprint != "" {
		var d deviceModel.DeviceModel
		err := e.DB.WithContext(ctx).
			Where("device_fingerprint = ? AND device_is_active = TRUE", *in.DeviceFingerprint).
			First(&d).Error
		if err == nil {
			device = &d
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Internal(err)
		}
	}

	var student userModel.UserModel
	if err := e.DB.WithContext(ctx).
		Where("user_id = ?", in.StudentID).
		First(&student).Error; err != nil {
		return nil, errs.Internal(err)
	}

	pol := PolicyFor(&session)

	// 5) Geofence (pure, lokal)
	var geo *GeofenceResult
	if in.Latitude != nil && in.Longitude != nil &&
		session.SessionVenueLatitude != nil && session.SessionVenueLongitude != nil {
		g := EvaluateGeofence(*in.Latitude, *in.Longitude,
			*session.SessionVenueLatitude, *session.SessionVenueLongitude, pol.GeofenceRadius)
		geo = &g
	}

	// 6) Verifikasi eksternal — liveness & face match paralel, dua-duanya
	// join dulu sebelum keputusan. Di luar transaksi DB; gagal = tidak ada
	// row tersimpan, client aman untuk retry.
	var (
		liveness  *verification.LivenessResult
		faceMatch *verification.VerifyResult
	)
	if in.LivenessPayload != nil && *in.LivenessPayload != "" {
		g, gctx := errgroup.WithContext(ctx)
		if pol.RequireLiveness {
			g.Go(func() error {
				res, err := e.Verifier.Liveness(gctx, *in.LivenessPayload, "passive")
				if err != nil {
					return err
				}
				liveness = res
				return nil
			})
		}
		if pol.RequireFaceMatch && student.UserFaceEnrolled && student.UserFaceEmbeddingHash != nil {
			g.Go(func() error {
				res, err := e.Verifier.Verify(gctx, *in.LivenessPayload, *student.UserFaceEmbeddingHash)
				if err != nil {
					return err
				}
				faceMatch = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			e.recordAttempt(ctx, in, nil, false, map[string]interface{}{
				"error": errs.CodeOf(err),
			})
			return nil, err
		}
	}

	// 7) Combiner
	signals := map[SignalType]float64{}
	if liveness != nil {
		signals[SignalLiveness] = liveness.LivenessScore
	}
	if faceMatch != nil {
		signals[SignalFaceMatch] = faceMatch.MatchScore
	}
	if device != nil {
		signals[SignalDevice] = device.SignalScore()
	}
	if geo != nil {
		signals[SignalGeolocation] = GeolocationSignal(*geo, in.LocationAccuracyMeters)
	}
	assessment := CombineSignals(signals, false)

	// 8) Critical short-circuit dulu, baru skor tertimbang
	livenessFailed := LivenessFailed(pol, liveness)
	status := ResolveStatus(pol, livenessFailed, geo, assessment)
	factors := BuildRiskFactors(assessment, livenessFailed, geo)

	// 9) Persist sekali — transaksi pendek & final
	row := model.CheckInModel{
		CheckInSessionID:              in.SessionID,
		CheckInStudentID:              in.StudentID,
		CheckInStatus:                 status,
		CheckInCheckedInAt:            now,
		CheckInLatitude:               in.Latitude,
		CheckInLongitude:              in.Longitude,
		CheckInLocationAccuracyMeters: in.LocationAccuracyMeters,
		CheckInRiskScore:              assessment.RiskScore,
		CheckInRecommendations:        assessment.Recommendations,
	}
	if device != nil {
		row.CheckInDeviceID = &device.DeviceID
	}
	if geo != nil {
		d := geo.DistanceMeters
		row.CheckInDistanceFromVenue = &d
	}
	if liveness != nil {
		passed, score := liveness.LivenessPassed, liveness.LivenessScore
		row.CheckInLivenessPassed = &passed
		row.CheckInLivenessScore = &score
	}
	if faceMatch != nil {
		passed, score := faceMatch.MatchPassed, faceMatch.MatchScore
		row.CheckInFaceMatchPassed = &passed
		row.CheckInFaceMatchScore = &score
	}
	if len(factors) > 0 {
		if raw, err := sonic.Marshal(factors); err == nil {
			row.CheckInRiskFactors = datatypes.JSON(raw)
		}
	}

	if err := e.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			// kalah race dengan request kembar — map balik ke conflict
			e.recordAttempt(ctx, in, nil, false, map[string]interface{}{
				"error": errs.CodeOf(errs.ErrAlreadyCheckedIn),
			})
			return nil, errs.ErrAlreadyCheckedIn
		}
		return nil, errs.Internal(err)
	}

	// bump statistik device, best-effort
	if device != nil {
		if err := e.DB.WithContext(ctx).Model(&deviceModel.DeviceModel{}).
			Where("device_id = ?", device.DeviceID).
			UpdateColumn("device_total_checkins", gorm.Expr("device_total_checkins + 1")).Error; err != nil {
			log.Printf("[WARN] bump device counter: %v", err)
		}
	}

	// 10) Audit — hasil keputusan selalu tercatat
	e.recordAttempt(ctx, in, &row.CheckInID, true, map[string]interface{}{
		"session_id": in.SessionID,
		"status":     status,
		"risk_score": assessment.RiskScore,
		"risk_level": assessment.RiskLevel,
	})

	return &row, nil
}

func (e *DecisionEngine) recordAttempt(ctx context.Context, in CheckInInput, checkinID *uuid.UUID, success bool, details map[string]interface{}) {
	if err := e.Audit.Record(ctx, auditsvc.Entry{
		UserID:       &in.StudentID,
		Action:       auditsvc.ActionCheckInDecision,
		ResourceType: auditsvc.ResourceCheckIn,
		ResourceID:   checkinID,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
		Details:      details,
		Success:      success,
	}); err != nil {
		log.Printf("[ERROR] audit check-in decision: %v", err)
	}
}
