// file: internals/features/attendance/checkins/route/checkin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/checkins/controller"
	"absensiku_backend/internals/features/attendance/checkins/service"
	auditsvc "absensiku_backend/internals/features/audit/service"
	"absensiku_backend/internals/features/verification"
	"absensiku_backend/internals/middlewares"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// CheckInRoutes — mount di router yang SUDAH di belakang AuthMiddleware.
func CheckInRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, verifier verification.Client, audit *auditsvc.Recorder) {
	engine := service.NewDecisionEngine(db, verifier, audit)
	appeals := service.NewAppealService(db, audit)
	ctl := controller.NewCheckInController(db, v, engine, appeals)

	g := api.Group("/checkins")

	// jalur utama — dibatasi per user, burst duplikat tetap kejaring unique index
	g.Post("/", middlewares.CheckInRateLimiter(),
		authMid.OnlyRoles(constants.RoleErrorStudent("check-in"), constants.StudentOnly...),
		ctl.Create)

	g.Get("/my-checkins", ctl.ListMine)
	g.Get("/flagged",
		authMid.OnlyRoles(constants.RoleErrorInstructor("review check-in"), constants.InstructorAndAbove...),
		ctl.ListFlagged)
	g.Get("/session/:session_id",
		authMid.OnlyRoles(constants.RoleErrorInstructor("daftar kehadiran"), constants.InstructorAndAbove...),
		ctl.ListBySession)
	g.Get("/:id", ctl.GetByID)

	// appeal milik student; review milik instructor/TA/admin
	g.Post("/:id/appeal",
		authMid.OnlyRoles(constants.RoleErrorStudent("appeal"), constants.StudentOnly...),
		ctl.Appeal)
	g.Post("/:id/review",
		authMid.OnlyRoles(constants.RoleErrorInstructor("review check-in"), constants.InstructorAndAbove...),
		ctl.Review)
}
