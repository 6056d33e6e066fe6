package database

import (
	"log"

	checkinModel "absensiku_backend/internals/features/attendance/checkins/model"
	deviceModel "absensiku_backend/internals/features/attendance/devices/model"
	sessionModel "absensiku_backend/internals/features/attendance/sessions/model"
	auditModel "absensiku_backend/internals/features/audit/model"
	courseModel "absensiku_backend/internals/features/courses/model"
	userModel "absensiku_backend/internals/features/users/model"
)

// MigrateModels — auto-migrate skema. Unique index (session, student) di
// checkins ikut terbentuk di sini; itu guard idempotensi check-in.
func MigrateModels() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&courseModel.EnrollmentModel{},
		&sessionModel.SessionModel{},
		&deviceModel.DeviceModel{},
		&checkinModel.CheckInModel{},
		&auditModel.AuditLogModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrate: %v", err)
	}
	log.Println("✅ Skema ter-migrate.")
}
