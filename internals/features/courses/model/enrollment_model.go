package model

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_id" json:"enrollment_id"`

	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;column:enrollment_student_id;uniqueIndex:uq_enrollment_student_course" json:"enrollment_student_id"`
	EnrollmentCourseID  uuid.UUID `gorm:"type:uuid;not null;column:enrollment_course_id;uniqueIndex:uq_enrollment_student_course"  json:"enrollment_course_id"`

	EnrollmentIsActive bool `gorm:"not null;default:true;column:enrollment_is_active" json:"enrollment_is_active"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
