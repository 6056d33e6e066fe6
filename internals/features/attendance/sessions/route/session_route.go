// file: internals/features/attendance/sessions/route/session_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/sessions/controller"
	"absensiku_backend/internals/features/attendance/sessions/service"
	auditsvc "absensiku_backend/internals/features/audit/service"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// SessionRoutes — mount di router yang SUDAH di belakang AuthMiddleware.
func SessionRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, audit *auditsvc.Recorder) {
	lifecycle := service.NewLifecycleService(db, audit)
	ctl := controller.NewSessionController(db, v, lifecycle, audit)

	g := api.Group("/sessions")

	// semua role boleh baca
	g.Get("/", ctl.List)
	g.Get("/active", ctl.ListActive)
	g.Get("/:id", ctl.GetByID)

	// tulis hanya instructor/admin
	manage := authMid.OnlyRoles(constants.RoleErrorInstructor("sesi"),
		constants.RoleInstructor, constants.RoleAdmin)
	g.Post("/", manage, ctl.Create)
	g.Patch("/:id", manage, ctl.Update)
	g.Patch("/:id/status", manage, ctl.Transition)
	g.Delete("/:id", manage, ctl.Delete)
}
