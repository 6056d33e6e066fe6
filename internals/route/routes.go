// file: internals/route/routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	checkinRoute "absensiku_backend/internals/features/attendance/checkins/route"
	deviceRoute "absensiku_backend/internals/features/attendance/devices/route"
	sessionRoute "absensiku_backend/internals/features/attendance/sessions/route"
	auditRoute "absensiku_backend/internals/features/audit/route"
	auditsvc "absensiku_backend/internals/features/audit/service"
	courseRoute "absensiku_backend/internals/features/courses/route"
	authRoute "absensiku_backend/internals/features/users/auth/route"
	"absensiku_backend/internals/features/verification"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// SetupRoutes merakit seluruh surface HTTP.
// Satu verifier & satu audit recorder dibagikan ke semua feature.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()
	verifier := verification.NewHTTPClient(configs.FaceServiceURL, configs.FaceServiceTimeout)
	audit := auditsvc.NewRecorder(db)

	api := app.Group("/api")

	// publik (register/login) + /auth/me dsb di dalamnya
	authRoute.AuthRoutes(api, db, v, verifier, audit)

	// sisanya wajib JWT
	protected := api.Group("", authMid.AuthMiddleware(db))
	courseRoute.CourseRoutes(protected, db, v)
	sessionRoute.SessionRoutes(protected, db, v, audit)
	checkinRoute.CheckInRoutes(protected, db, v, verifier, audit)
	deviceRoute.DeviceRoutes(protected, db, v, audit)
	auditRoute.AuditRoutes(protected, db)
}
