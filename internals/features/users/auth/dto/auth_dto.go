// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/users/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type RegisterRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email,max=255"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
	UserFullName string `json:"user_full_name" validate:"required,min=3,max=255"`
}

func (r *RegisterRequest) Normalize() {
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
	r.UserFullName = strings.TrimSpace(r.UserFullName)
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
}

type LoginGoogleRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type EnrollFaceRequest struct {
	// Frame base64 (boleh data URL)
	FaceImage string `json:"face_image" validate:"required"`
	// Consent eksplisit wajib sebelum template dibuat
	Consent bool `json:"consent" validate:"required"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	UserEmail        string    `json:"user_email"`
	UserFullName     string    `json:"user_full_name"`
	UserRole         string    `json:"user_role"`
	UserIsActive     bool      `json:"user_is_active"`
	UserFaceEnrolled bool      `json:"user_face_enrolled"`
	UserCreatedAt    time.Time `json:"user_created_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:           m.UserID,
		UserEmail:        m.UserEmail,
		UserFullName:     m.UserFullName,
		UserRole:         m.UserRole,
		UserIsActive:     m.UserIsActive,
		UserFaceEnrolled: m.UserFaceEnrolled,
		UserCreatedAt:    m.UserCreatedAt,
	}
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}
