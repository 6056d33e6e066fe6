package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseModel struct {
	CourseID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`

	CourseCode         string    `gorm:"size:20;not null;uniqueIndex;column:course_code" json:"course_code"`
	CourseName         string    `gorm:"size:255;not null;column:course_name"            json:"course_name"`
	CourseInstructorID uuid.UUID `gorm:"type:uuid;not null;column:course_instructor_id;index" json:"course_instructor_id"`

	// Default venue — dipakai session kalau venue tidak diisi saat create
	CourseVenueLatitude        *float64 `gorm:"column:course_venue_latitude"         json:"course_venue_latitude,omitempty"`
	CourseVenueLongitude       *float64 `gorm:"column:course_venue_longitude"        json:"course_venue_longitude,omitempty"`
	CourseVenueName            *string  `gorm:"size:255;column:course_venue_name"    json:"course_venue_name,omitempty"`
	CourseGeofenceRadiusMeters *float64 `gorm:"column:course_geofence_radius_meters" json:"course_geofence_radius_meters,omitempty"`
	CourseRiskThreshold        *float64 `gorm:"column:course_risk_threshold"         json:"course_risk_threshold,omitempty"`

	CourseCreatedAt time.Time  `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt *time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
