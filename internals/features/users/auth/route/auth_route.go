// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditsvc "absensiku_backend/internals/features/audit/service"
	"absensiku_backend/internals/features/users/auth/controller"
	"absensiku_backend/internals/features/users/auth/service"
	"absensiku_backend/internals/features/verification"
	"absensiku_backend/internals/middlewares"
	authMid "absensiku_backend/internals/middlewares/auth"
)

// AuthRoutes — register/login publik (dengan limiter), sisanya di belakang JWT.
func AuthRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, verifier verification.Client, audit *auditsvc.Recorder) {
	svc := service.NewAuthService(db, verifier, audit)
	ctl := controller.NewAuthController(db, v, svc)

	g := api.Group("/auth")
	g.Post("/register", middlewares.LoginRateLimiter(), ctl.Register)
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	g.Post("/login-google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)

	protected := g.Group("", authMid.AuthMiddleware(db))
	protected.Get("/me", ctl.Me)
	protected.Post("/face/enroll", ctl.EnrollFace)
}
