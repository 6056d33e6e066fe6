// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/users/auth/dto"
	"absensiku_backend/internals/features/users/auth/service"
	userModel "absensiku_backend/internals/features/users/model"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/errs"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.AuthService
}

func NewAuthController(db *gorm.DB, v *validator.Validate, svc *service.AuthService) *AuthController {
	return &AuthController{DB: db, Validate: v, Service: svc}
}

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := ctl.Service.Register(c.Context(), req.UserEmail, req.UserPassword, req.UserFullName)
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registration successful", dto.NewUserResponse(u))
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, token, err := ctl.Service.Login(c.Context(), req.UserEmail, req.UserPassword, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.Success(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(u),
	})
}

func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.LoginGoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, token, err := ctl.Service.LoginGoogle(c.Context(), req.IDToken, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.Success(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(u),
	})
}

// Me — profil user login.
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var u userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", userID).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DomainError(c, errs.NotFound("User"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", dto.NewUserResponse(&u))
}

// EnrollFace — daftarkan wajah untuk face match saat check-in.
func (ctl *AuthController) EnrollFace(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EnrollFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := ctl.Service.EnrollFace(c.Context(), userID, req.FaceImage, req.Consent)
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.Success(c, "Face enrolled", dto.NewUserResponse(u))
}
