// file: internals/features/courses/route/course_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/courses/controller"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// CourseRoutes — mount di router yang SUDAH di belakang AuthMiddleware.
func CourseRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := controller.NewCourseController(db, v)

	g := api.Group("/courses")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)

	manage := authMid.OnlyRoles(constants.RoleErrorInstructor("course"),
		constants.RoleInstructor, constants.RoleAdmin)
	g.Post("/", manage, ctl.Create)
	g.Post("/:id/enroll", manage, ctl.Enroll)
	g.Delete("/:id/enroll/:student_id", manage, ctl.Unenroll)
}
