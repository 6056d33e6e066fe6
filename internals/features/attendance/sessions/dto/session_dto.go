// file: internals/features/attendance/sessions/dto/session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/sessions/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateSessionRequest struct {
	SessionCourseID    uuid.UUID `json:"session_course_id" validate:"required"`
	SessionName        string    `json:"session_name" validate:"required,min=3,max=255"`
	SessionType        string    `json:"session_type" validate:"omitempty,oneof=lecture lab exam seminar"`
	SessionDescription *string   `json:"session_description,omitempty" validate:"omitempty,max=2000"`

	SessionScheduledStart time.Time `json:"session_scheduled_start" validate:"required"`
	SessionScheduledEnd   time.Time `json:"session_scheduled_end" validate:"required"`

	// Optional — kalau kosong dipakai default relatif ke scheduled_start
	SessionCheckinOpensAt  *time.Time `json:"session_checkin_opens_at,omitempty"`
	SessionCheckinClosesAt *time.Time `json:"session_checkin_closes_at,omitempty"`

	// Venue override (default ikut course)
	SessionVenueLatitude        *float64 `json:"session_venue_latitude,omitempty" validate:"omitempty,latitude"`
	SessionVenueLongitude       *float64 `json:"session_venue_longitude,omitempty" validate:"omitempty,longitude"`
	SessionVenueName            *string  `json:"session_venue_name,omitempty" validate:"omitempty,max=255"`
	SessionGeofenceRadiusMeters *float64 `json:"session_geofence_radius_meters,omitempty" validate:"omitempty,gt=0,lte=10000"`

	// Security policy
	SessionRequireLivenessCheck *bool    `json:"session_require_liveness_check,omitempty"`
	SessionRequireFaceMatch     *bool    `json:"session_require_face_match,omitempty"`
	SessionRiskThreshold        *float64 `json:"session_risk_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

func (r *CreateSessionRequest) Normalize() {
	r.SessionName = strings.TrimSpace(r.SessionName)
	if r.SessionType == "" {
		r.SessionType = "lecture"
	}
}

func (r *CreateSessionRequest) ToModel(instructorID uuid.UUID) *model.SessionModel {
	m := &model.SessionModel{
		SessionCourseID:             r.SessionCourseID,
		SessionInstructorID:         instructorID,
		SessionName:                 r.SessionName,
		SessionType:                 r.SessionType,
		SessionDescription:          r.SessionDescription,
		SessionScheduledStart:       r.SessionScheduledStart,
		SessionScheduledEnd:         r.SessionScheduledEnd,
		SessionStatus:               model.SessionStatusScheduled,
		SessionVenueLatitude:        r.SessionVenueLatitude,
		SessionVenueLongitude:       r.SessionVenueLongitude,
		SessionVenueName:            r.SessionVenueName,
		SessionGeofenceRadiusMeters: r.SessionGeofenceRadiusMeters,
		SessionRequireLivenessCheck: true,
		SessionRiskThreshold:        r.SessionRiskThreshold,
	}
	if r.SessionRequireLivenessCheck != nil {
		m.SessionRequireLivenessCheck = *r.SessionRequireLivenessCheck
	}
	if r.SessionRequireFaceMatch != nil {
		m.SessionRequireFaceMatch = *r.SessionRequireFaceMatch
	}
	if r.SessionCheckinOpensAt != nil {
		m.SessionCheckinOpensAt = *r.SessionCheckinOpensAt
	}
	if r.SessionCheckinClosesAt != nil {
		m.SessionCheckinClosesAt = *r.SessionCheckinClosesAt
	}
	return m
}

type UpdateSessionRequest struct {
	SessionName        *string `json:"session_name,omitempty" validate:"omitempty,min=3,max=255"`
	SessionType        *string `json:"session_type,omitempty" validate:"omitempty,oneof=lecture lab exam seminar"`
	SessionDescription *string `json:"session_description,omitempty" validate:"omitempty,max=2000"`

	SessionScheduledStart  *time.Time `json:"session_scheduled_start,omitempty"`
	SessionScheduledEnd    *time.Time `json:"session_scheduled_end,omitempty"`
	SessionCheckinOpensAt  *time.Time `json:"session_checkin_opens_at,omitempty"`
	SessionCheckinClosesAt *time.Time `json:"session_checkin_closes_at,omitempty"`

	SessionVenueLatitude        *float64 `json:"session_venue_latitude,omitempty" validate:"omitempty,latitude"`
	SessionVenueLongitude       *float64 `json:"session_venue_longitude,omitempty" validate:"omitempty,longitude"`
	SessionVenueName            *string  `json:"session_venue_name,omitempty" validate:"omitempty,max=255"`
	SessionGeofenceRadiusMeters *float64 `json:"session_geofence_radius_meters,omitempty" validate:"omitempty,gt=0,lte=10000"`

	SessionRequireLivenessCheck *bool    `json:"session_require_liveness_check,omitempty"`
	SessionRequireFaceMatch     *bool    `json:"session_require_face_match,omitempty"`
	SessionRiskThreshold        *float64 `json:"session_risk_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// MergedSchedule menggabungkan jadwal existing dengan field yang dikirim.
// Partial update divalidasi ulang atas hasil merge ini supaya edit satu
// field tidak bisa membalik window (closes <= opens, end <= start).
func (r *UpdateSessionRequest) MergedSchedule(m *model.SessionModel) (start, end, opens, closes time.Time, startChanged bool) {
	start, end = m.SessionScheduledStart, m.SessionScheduledEnd
	opens, closes = m.SessionCheckinOpensAt, m.SessionCheckinClosesAt
	if r.SessionScheduledStart != nil {
		start = *r.SessionScheduledStart
		startChanged = true
	}
	if r.SessionScheduledEnd != nil {
		end = *r.SessionScheduledEnd
	}
	if r.SessionCheckinOpensAt != nil {
		opens = *r.SessionCheckinOpensAt
	}
	if r.SessionCheckinClosesAt != nil {
		closes = *r.SessionCheckinClosesAt
	}
	return start, end, opens, closes, startChanged
}

// BuildUpdateMap — hanya field yang dikirim yang di-update.
func (r *UpdateSessionRequest) BuildUpdateMap() map[string]interface{} {
	up := make(map[string]interface{})
	if r.SessionName != nil {
		up["session_name"] = strings.TrimSpace(*r.SessionName)
	}
	if r.SessionType != nil {
		up["session_type"] = *r.SessionType
	}
	if r.SessionDescription != nil {
		up["session_description"] = *r.SessionDescription
	}
	if r.SessionScheduledStart != nil {
		up["session_scheduled_start"] = *r.SessionScheduledStart
	}
	if r.SessionScheduledEnd != nil {
		up["session_scheduled_end"] = *r.SessionScheduledEnd
	}
	if r.SessionCheckinOpensAt != nil {
		up["session_checkin_opens_at"] = *r.SessionCheckinOpensAt
	}
	if r.SessionCheckinClosesAt != nil {
		up["session_checkin_closes_at"] = *r.SessionCheckinClosesAt
	}
	if r.SessionVenueLatitude != nil {
		up["session_venue_latitude"] = *r.SessionVenueLatitude
	}
	if r.SessionVenueLongitude != nil {
		up["session_venue_longitude"] = *r.SessionVenueLongitude
	}
	if r.SessionVenueName != nil {
		up["session_venue_name"] = *r.SessionVenueName
	}
	if r.SessionGeofenceRadiusMeters != nil {
		up["session_geofence_radius_meters"] = *r.SessionGeofenceRadiusMeters
	}
	if r.SessionRequireLivenessCheck != nil {
		up["session_require_liveness_check"] = *r.SessionRequireLivenessCheck
	}
	if r.SessionRequireFaceMatch != nil {
		up["session_require_face_match"] = *r.SessionRequireFaceMatch
	}
	if r.SessionRiskThreshold != nil {
		up["session_risk_threshold"] = *r.SessionRiskThreshold
	}
	return up
}

type TransitionSessionRequest struct {
	SessionStatus string `json:"session_status" validate:"required,oneof=active closed cancelled"`
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type SessionResponse struct {
	SessionID           uuid.UUID `json:"session_id"`
	SessionCourseID     uuid.UUID `json:"session_course_id"`
	SessionInstructorID uuid.UUID `json:"session_instructor_id"`

	SessionName        string  `json:"session_name"`
	SessionType        string  `json:"session_type"`
	SessionDescription *string `json:"session_description,omitempty"`

	SessionScheduledStart  time.Time `json:"session_scheduled_start"`
	SessionScheduledEnd    time.Time `json:"session_scheduled_end"`
	SessionCheckinOpensAt  time.Time `json:"session_checkin_opens_at"`
	SessionCheckinClosesAt time.Time `json:"session_checkin_closes_at"`

	SessionStatus model.SessionStatus `json:"session_status"`

	SessionVenueLatitude        *float64 `json:"session_venue_latitude,omitempty"`
	SessionVenueLongitude       *float64 `json:"session_venue_longitude,omitempty"`
	SessionVenueName            *string  `json:"session_venue_name,omitempty"`
	SessionGeofenceRadiusMeters *float64 `json:"session_geofence_radius_meters,omitempty"`

	SessionRequireLivenessCheck bool     `json:"session_require_liveness_check"`
	SessionRequireFaceMatch     bool     `json:"session_require_face_match"`
	SessionRiskThreshold        *float64 `json:"session_risk_threshold,omitempty"`

	SessionCreatedAt time.Time `json:"session_created_at"`
}

func NewSessionResponse(m *model.SessionModel) *SessionResponse {
	return &SessionResponse{
		SessionID:                   m.SessionID,
		SessionCourseID:             m.SessionCourseID,
		SessionInstructorID:         m.SessionInstructorID,
		SessionName:                 m.SessionName,
		SessionType:                 m.SessionType,
		SessionDescription:          m.SessionDescription,
		SessionScheduledStart:       m.SessionScheduledStart,
		SessionScheduledEnd:         m.SessionScheduledEnd,
		SessionCheckinOpensAt:       m.SessionCheckinOpensAt,
		SessionCheckinClosesAt:      m.SessionCheckinClosesAt,
		SessionStatus:               m.SessionStatus,
		SessionVenueLatitude:        m.SessionVenueLatitude,
		SessionVenueLongitude:       m.SessionVenueLongitude,
		SessionVenueName:            m.SessionVenueName,
		SessionGeofenceRadiusMeters: m.SessionGeofenceRadiusMeters,
		SessionRequireLivenessCheck: m.SessionRequireLivenessCheck,
		SessionRequireFaceMatch:     m.SessionRequireFaceMatch,
		SessionRiskThreshold:        m.SessionRiskThreshold,
		SessionCreatedAt:            m.SessionCreatedAt,
	}
}

func NewSessionResponses(list []model.SessionModel) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(list))
	for i := range list {
		out = append(out, NewSessionResponse(&list[i]))
	}
	return out
}
