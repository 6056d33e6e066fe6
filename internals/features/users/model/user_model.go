package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserEmail        string `gorm:"size:255;not null;uniqueIndex;column:user_email" json:"user_email"`
	UserPasswordHash string `gorm:"size:100;not null;column:user_password_hash"     json:"-"`
	UserFullName     string `gorm:"size:255;not null;column:user_full_name"         json:"user_full_name"`

	// student | ta | instructor | admin
	UserRole     string `gorm:"size:20;not null;default:student;column:user_role" json:"user_role"`
	UserIsActive bool   `gorm:"not null;default:true;column:user_is_active"       json:"user_is_active"`

	UserGoogleID *string `gorm:"size:255;uniqueIndex;column:user_google_id" json:"-"`

	// Face enrollment (template disimpan di face service, kita hanya pegang hash)
	UserFaceEnrolled      bool    `gorm:"not null;default:false;column:user_face_enrolled" json:"user_face_enrolled"`
	UserFaceEmbeddingHash *string `gorm:"size:64;column:user_face_embedding_hash"          json:"-"`

	UserCreatedAt time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
