// file: internals/features/attendance/checkins/dto/checkin_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"absensiku_backend/internals/features/attendance/checkins/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateCheckInRequest struct {
	CheckInSessionID uuid.UUID `json:"checkin_session_id" validate:"required"`

	CheckInLatitude               *float64 `json:"checkin_latitude,omitempty" validate:"omitempty,latitude"`
	CheckInLongitude              *float64 `json:"checkin_longitude,omitempty" validate:"omitempty,longitude"`
	CheckInLocationAccuracyMeters *float64 `json:"checkin_location_accuracy_meters,omitempty" validate:"omitempty,gte=0"`

	CheckInDeviceFingerprint *string `json:"checkin_device_fingerprint,omitempty" validate:"omitempty,max=255"`

	// Frame base64 untuk liveness + face match (boleh data URL)
	CheckInLivenessPayload *string `json:"checkin_liveness_payload,omitempty"`
}

type AppealCheckInRequest struct {
	CheckInAppealReason string `json:"checkin_appeal_reason" validate:"required,min=10,max=2000"`
}

func (r *AppealCheckInRequest) Normalize() {
	r.CheckInAppealReason = strings.TrimSpace(r.CheckInAppealReason)
}

type ReviewCheckInRequest struct {
	CheckInStatus      string  `json:"checkin_status" validate:"required,oneof=approved rejected"`
	CheckInReviewNotes *string `json:"checkin_review_notes,omitempty" validate:"omitempty,max=2000"`
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type CheckInResponse struct {
	CheckInID        uuid.UUID  `json:"checkin_id"`
	CheckInSessionID uuid.UUID  `json:"checkin_session_id"`
	CheckInStudentID uuid.UUID  `json:"checkin_student_id"`
	CheckInDeviceID  *uuid.UUID `json:"checkin_device_id,omitempty"`

	CheckInStatus      model.CheckInStatus `json:"checkin_status"`
	CheckInCheckedInAt time.Time           `json:"checkin_checked_in_at"`

	CheckInDistanceFromVenue *float64 `json:"checkin_distance_from_venue_meters,omitempty"`
	CheckInLivenessPassed    *bool    `json:"checkin_liveness_passed,omitempty"`
	CheckInLivenessScore     *float64 `json:"checkin_liveness_score,omitempty"`
	CheckInFaceMatchPassed   *bool    `json:"checkin_face_match_passed,omitempty"`
	CheckInFaceMatchScore    *float64 `json:"checkin_face_match_score,omitempty"`

	CheckInRiskScore       float64        `json:"checkin_risk_score"`
	CheckInRiskFactors     datatypes.JSON `json:"checkin_risk_factors,omitempty"`
	CheckInRecommendations []string       `json:"checkin_recommendations,omitempty"`

	CheckInAppealReason *string    `json:"checkin_appeal_reason,omitempty"`
	CheckInAppealedAt   *time.Time `json:"checkin_appealed_at,omitempty"`
	CheckInReviewedByID *uuid.UUID `json:"checkin_reviewed_by_id,omitempty"`
	CheckInReviewedAt   *time.Time `json:"checkin_reviewed_at,omitempty"`
	CheckInReviewNotes  *string    `json:"checkin_review_notes,omitempty"`
}

func NewCheckInResponse(m *model.CheckInModel) *CheckInResponse {
	return &CheckInResponse{
		CheckInID:                m.CheckInID,
		CheckInSessionID:         m.CheckInSessionID,
		CheckInStudentID:         m.CheckInStudentID,
		CheckInDeviceID:          m.CheckInDeviceID,
		CheckInStatus:            m.CheckInStatus,
		CheckInCheckedInAt:       m.CheckInCheckedInAt,
		CheckInDistanceFromVenue: m.CheckInDistanceFromVenue,
		CheckInLivenessPassed:    m.CheckInLivenessPassed,
		CheckInLivenessScore:     m.CheckInLivenessScore,
		CheckInFaceMatchPassed:   m.CheckInFaceMatchPassed,
		CheckInFaceMatchScore:    m.CheckInFaceMatchScore,
		CheckInRiskScore:         m.CheckInRiskScore,
		CheckInRiskFactors:       m.CheckInRiskFactors,
		CheckInRecommendations:   m.CheckInRecommendations,
		CheckInAppealReason:      m.CheckInAppealReason,
		CheckInAppealedAt:        m.CheckInAppealedAt,
		CheckInReviewedByID:      m.CheckInReviewedByID,
		CheckInReviewedAt:        m.CheckInReviewedAt,
		CheckInReviewNotes:       m.CheckInReviewNotes,
	}
}

func NewCheckInResponses(list []model.CheckInModel) []*CheckInResponse {
	out := make([]*CheckInResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCheckInResponse(&list[i]))
	}
	return out
}
