// file: internals/features/courses/dto/course_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/courses/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateCourseRequest struct {
	CourseCode string `json:"course_code" validate:"required,min=2,max=20"`
	CourseName string `json:"course_name" validate:"required,min=3,max=255"`

	// Default venue untuk sesi-sesi course ini
	CourseVenueLatitude        *float64 `json:"course_venue_latitude,omitempty" validate:"omitempty,latitude"`
	CourseVenueLongitude       *float64 `json:"course_venue_longitude,omitempty" validate:"omitempty,longitude"`
	CourseVenueName            *string  `json:"course_venue_name,omitempty" validate:"omitempty,max=255"`
	CourseGeofenceRadiusMeters *float64 `json:"course_geofence_radius_meters,omitempty" validate:"omitempty,gt=0,lte=10000"`
	CourseRiskThreshold        *float64 `json:"course_risk_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

func (r *CreateCourseRequest) Normalize() {
	r.CourseCode = strings.ToUpper(strings.TrimSpace(r.CourseCode))
	r.CourseName = strings.TrimSpace(r.CourseName)
}

func (r *CreateCourseRequest) ToModel(instructorID uuid.UUID) *model.CourseModel {
	return &model.CourseModel{
		CourseCode:                 r.CourseCode,
		CourseName:                 r.CourseName,
		CourseInstructorID:         instructorID,
		CourseVenueLatitude:        r.CourseVenueLatitude,
		CourseVenueLongitude:       r.CourseVenueLongitude,
		CourseVenueName:            r.CourseVenueName,
		CourseGeofenceRadiusMeters: r.CourseGeofenceRadiusMeters,
		CourseRiskThreshold:        r.CourseRiskThreshold,
	}
}

type EnrollStudentRequest struct {
	EnrollmentStudentID uuid.UUID `json:"enrollment_student_id" validate:"required"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type CourseResponse struct {
	CourseID           uuid.UUID `json:"course_id"`
	CourseCode         string    `json:"course_code"`
	CourseName         string    `json:"course_name"`
	CourseInstructorID uuid.UUID `json:"course_instructor_id"`

	CourseVenueLatitude        *float64 `json:"course_venue_latitude,omitempty"`
	CourseVenueLongitude       *float64 `json:"course_venue_longitude,omitempty"`
	CourseVenueName            *string  `json:"course_venue_name,omitempty"`
	CourseGeofenceRadiusMeters *float64 `json:"course_geofence_radius_meters,omitempty"`
	CourseRiskThreshold        *float64 `json:"course_risk_threshold,omitempty"`

	CourseCreatedAt time.Time `json:"course_created_at"`
}

func NewCourseResponse(m *model.CourseModel) *CourseResponse {
	return &CourseResponse{
		CourseID:                   m.CourseID,
		CourseCode:                 m.CourseCode,
		CourseName:                 m.CourseName,
		CourseInstructorID:         m.CourseInstructorID,
		CourseVenueLatitude:        m.CourseVenueLatitude,
		CourseVenueLongitude:       m.CourseVenueLongitude,
		CourseVenueName:            m.CourseVenueName,
		CourseGeofenceRadiusMeters: m.CourseGeofenceRadiusMeters,
		CourseRiskThreshold:        m.CourseRiskThreshold,
		CourseCreatedAt:            m.CourseCreatedAt,
	}
}

func NewCourseResponses(list []model.CourseModel) []*CourseResponse {
	out := make([]*CourseResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCourseResponse(&list[i]))
	}
	return out
}

type EnrollmentResponse struct {
	EnrollmentID        uuid.UUID `json:"enrollment_id"`
	EnrollmentStudentID uuid.UUID `json:"enrollment_student_id"`
	EnrollmentCourseID  uuid.UUID `json:"enrollment_course_id"`
	EnrollmentIsActive  bool      `json:"enrollment_is_active"`
	EnrollmentCreatedAt time.Time `json:"enrollment_created_at"`
}

func NewEnrollmentResponse(m *model.EnrollmentModel) *EnrollmentResponse {
	return &EnrollmentResponse{
		EnrollmentID:        m.EnrollmentID,
		EnrollmentStudentID: m.EnrollmentStudentID,
		EnrollmentCourseID:  m.EnrollmentCourseID,
		EnrollmentIsActive:  m.EnrollmentIsActive,
		EnrollmentCreatedAt: m.EnrollmentCreatedAt,
	}
}
