package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus — lifecycle sesi kelas.
// scheduled → active → closed; {scheduled, active} → cancelled.
// closed & cancelled terminal.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusClosed    SessionStatus = "closed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusActive, SessionStatusClosed, SessionStatusCancelled:
		return true
	}
	return false
}

func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusClosed || s == SessionStatusCancelled
}

type SessionModel struct {
	SessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`

	SessionCourseID     uuid.UUID `gorm:"type:uuid;not null;column:session_course_id;index"     json:"session_course_id"`
	SessionInstructorID uuid.UUID `gorm:"type:uuid;not null;column:session_instructor_id;index" json:"session_instructor_id"`

	SessionName        string  `gorm:"size:255;not null;column:session_name"               json:"session_name"`
	SessionType        string  `gorm:"size:50;not null;default:lecture;column:session_type" json:"session_type"`
	SessionDescription *string `gorm:"type:text;column:session_description"                 json:"session_description,omitempty"`

	// Scheduling
	SessionScheduledStart  time.Time `gorm:"not null;column:session_scheduled_start;index" json:"session_scheduled_start"`
	SessionScheduledEnd    time.Time `gorm:"not null;column:session_scheduled_end"         json:"session_scheduled_end"`
	SessionCheckinOpensAt  time.Time `gorm:"not null;column:session_checkin_opens_at;index"  json:"session_checkin_opens_at"`
	SessionCheckinClosesAt time.Time `gorm:"not null;column:session_checkin_closes_at;index" json:"session_checkin_closes_at"`

	SessionStatus SessionStatus `gorm:"size:20;not null;default:scheduled;column:session_status;index" json:"session_status"`

	// Venue (bisa override default course)
	SessionVenueLatitude        *float64 `gorm:"column:session_venue_latitude"         json:"session_venue_latitude,omitempty"`
	SessionVenueLongitude       *float64 `gorm:"column:session_venue_longitude"        json:"session_venue_longitude,omitempty"`
	SessionVenueName            *string  `gorm:"size:255;column:session_venue_name"    json:"session_venue_name,omitempty"`
	SessionGeofenceRadiusMeters *float64 `gorm:"column:session_geofence_radius_meters" json:"session_geofence_radius_meters,omitempty"`

	// Security policy
	SessionRequireLivenessCheck bool     `gorm:"not null;default:true;column:session_require_liveness_check"  json:"session_require_liveness_check"`
	SessionRequireFaceMatch     bool     `gorm:"not null;default:false;column:session_require_face_match"     json:"session_require_face_match"`
	SessionRiskThreshold        *float64 `gorm:"column:session_risk_threshold"                                json:"session_risk_threshold,omitempty"`

	SessionCreatedAt time.Time  `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt *time.Time `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at,omitempty"`
}

func (SessionModel) TableName() string { return "sessions" }
