// file: internals/features/audit/route/audit_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/audit/controller"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// AuditRoutes — read-only, admin only.
func AuditRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuditController(db)

	g := api.Group("/audit",
		authMid.OnlyRoles(constants.RoleErrorAdmin("audit log"), constants.AdminOnly...))
	g.Get("/", ctl.List)
}
