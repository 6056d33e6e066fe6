// file: internals/features/attendance/devices/route/device_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/devices/controller"
	auditsvc "absensiku_backend/internals/features/audit/service"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// DeviceRoutes — mount di router yang SUDAH di belakang AuthMiddleware.
func DeviceRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, audit *auditsvc.Recorder) {
	ctl := controller.NewDeviceController(db, v, audit)

	g := api.Group("/devices")
	g.Post("/register", ctl.Register)
	g.Get("/my-devices", ctl.ListMine)
	g.Delete("/:id", ctl.Deactivate)

	// trust level hanya boleh diubah admin
	g.Patch("/:id",
		authMid.OnlyRoles(constants.RoleErrorAdmin("device trust"), constants.AdminOnly...),
		ctl.UpdateTrust)
}
