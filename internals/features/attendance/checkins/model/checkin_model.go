package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// CheckInStatus — hasil pipeline keputusan + workflow appeal/review.
type CheckInStatus string

const (
	CheckInStatusPending  CheckInStatus = "pending"
	CheckInStatusApproved CheckInStatus = "approved"
	CheckInStatusFlagged  CheckInStatus = "flagged"
	CheckInStatusRejected CheckInStatus = "rejected"
	CheckInStatusAppealed CheckInStatus = "appealed"
)

func (s CheckInStatus) IsValid() bool {
	switch s {
	case CheckInStatusPending, CheckInStatusApproved, CheckInStatusFlagged,
		CheckInStatusRejected, CheckInStatusAppealed:
		return true
	}
	return false
}

// CanBeAppealed: hanya rejected/flagged yang boleh diajukan banding.
func (s CheckInStatus) CanBeAppealed() bool {
	return s == CheckInStatusRejected || s == CheckInStatusFlagged
}

// CanBeReviewed: review hanya untuk flagged atau appealed.
func (s CheckInStatus) CanBeReviewed() bool {
	return s == CheckInStatusFlagged || s == CheckInStatusAppealed
}

type CheckInModel struct {
	CheckInID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:checkin_id" json:"checkin_id"`

	// ✅ unique (session, student) — guard otoritatif idempotensi check-in
	CheckInSessionID uuid.UUID  `gorm:"type:uuid;not null;column:checkin_session_id;uniqueIndex:uq_checkins_session_student;index" json:"checkin_session_id"`
	CheckInStudentID uuid.UUID  `gorm:"type:uuid;not null;column:checkin_student_id;uniqueIndex:uq_checkins_session_student;index" json:"checkin_student_id"`
	CheckInDeviceID  *uuid.UUID `gorm:"type:uuid;column:checkin_device_id" json:"checkin_device_id,omitempty"`

	CheckInStatus CheckInStatus `gorm:"size:20;not null;default:pending;column:checkin_status;index" json:"checkin_status"`

	CheckInCheckedInAt time.Time `gorm:"not null;column:checkin_checked_in_at;autoCreateTime;index" json:"checkin_checked_in_at"`

	// Geolocation
	CheckInLatitude               *float64 `gorm:"column:checkin_latitude"                  json:"checkin_latitude,omitempty"`
	CheckInLongitude              *float64 `gorm:"column:checkin_longitude"                 json:"checkin_longitude,omitempty"`
	CheckInLocationAccuracyMeters *float64 `gorm:"column:checkin_location_accuracy_meters"  json:"checkin_location_accuracy_meters,omitempty"`
	CheckInDistanceFromVenue      *float64 `gorm:"column:checkin_distance_from_venue_meters" json:"checkin_distance_from_venue_meters,omitempty"`

	// Liveness
	CheckInLivenessPassed *bool    `gorm:"column:checkin_liveness_passed" json:"checkin_liveness_passed,omitempty"`
	CheckInLivenessScore  *float64 `gorm:"column:checkin_liveness_score"  json:"checkin_liveness_score,omitempty"`

	// Face match
	CheckInFaceMatchPassed *bool    `gorm:"column:checkin_face_match_passed" json:"checkin_face_match_passed,omitempty"`
	CheckInFaceMatchScore  *float64 `gorm:"column:checkin_face_match_score"  json:"checkin_face_match_score,omitempty"`

	// Risk assessment (ringkasan; breakdown di risk_factors JSON)
	CheckInRiskScore       float64        `gorm:"not null;default:0;column:checkin_risk_score;index" json:"checkin_risk_score"`
	CheckInRiskFactors     datatypes.JSON `gorm:"column:checkin_risk_factors"                        json:"checkin_risk_factors,omitempty"`
	CheckInRecommendations pq.StringArray `gorm:"type:text[];column:checkin_recommendations"         json:"checkin_recommendations,omitempty"`

	// Appeal
	CheckInAppealReason *string    `gorm:"type:text;column:checkin_appeal_reason" json:"checkin_appeal_reason,omitempty"`
	CheckInAppealedAt   *time.Time `gorm:"column:checkin_appealed_at"             json:"checkin_appealed_at,omitempty"`

	// Review
	CheckInReviewedByID *uuid.UUID `gorm:"type:uuid;column:checkin_reviewed_by_id" json:"checkin_reviewed_by_id,omitempty"`
	CheckInReviewedAt   *time.Time `gorm:"column:checkin_reviewed_at"              json:"checkin_reviewed_at,omitempty"`
	CheckInReviewNotes  *string    `gorm:"type:text;column:checkin_review_notes"   json:"checkin_review_notes,omitempty"`
}

func (CheckInModel) TableName() string { return "checkins" }
