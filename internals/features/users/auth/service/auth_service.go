// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/constants"
	auditsvc "absensiku_backend/internals/features/audit/service"
	userModel "absensiku_backend/internals/features/users/model"
	"absensiku_backend/internals/features/verification"
	"absensiku_backend/internals/helpers/errs"
)

const accessTTLDefault = 24 * time.Hour

type AuthService struct {
	DB       *gorm.DB
	Verifier verification.Client
	Audit    *auditsvc.Recorder
}

func NewAuthService(db *gorm.DB, verifier verification.Client, audit *auditsvc.Recorder) *AuthService {
	return &AuthService{DB: db, Verifier: verifier, Audit: audit}
}

/* ==========================
   Password & Token helpers
========================== */

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func buildAccessClaims(u *userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       u.UserID.String(),
		"user_id":   u.UserID.String(),
		"email":     u.UserEmail,
		"full_name": u.UserFullName,
		"role":      u.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

// SignAccessToken menerbitkan JWT HS256 untuk user aktif.
func SignAccessToken(u *userModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errs.New(errs.KindInternal, "jwt_secret_missing", "JWT_SECRET belum diset")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, time.Now().UTC()))
	return token.SignedString([]byte(secret))
}

/* ==========================
   REGISTER
========================== */

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*userModel.UserModel, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, errs.Internal(err)
	}

	u := userModel.UserModel{
		UserEmail:        email,
		UserPasswordHash: hash,
		UserFullName:     fullName,
		UserRole:         constants.RoleStudent,
		UserIsActive:     true,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return nil, errs.New(errs.KindConflict, "email_taken", "Email already registered")
		}
		return nil, errs.Internal(err)
	}

	if err := s.Audit.Record(ctx, auditsvc.Entry{
		UserID:       &u.UserID,
		Action:       auditsvc.ActionAuthRegister,
		ResourceType: auditsvc.ResourceUser,
		ResourceID:   &u.UserID,
		Success:      true,
	}); err != nil {
		log.Printf("[ERROR] audit register: %v", err)
	}

	return &u, nil
}

/* ==========================
   LOGIN (email + password)
========================== */

func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*userModel.UserModel, string, error) {
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("user_email = ?", email).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordLogin(ctx, nil, ip, userAgent, false, "unknown_email")
			return nil, "", errs.New(errs.KindAuthorization, "invalid_credentials", "Email atau password salah")
		}
		return nil, "", errs.Internal(err)
	}

	if !CheckPassword(u.UserPasswordHash, password) {
		s.recordLogin(ctx, &u.UserID, ip, userAgent, false, "bad_password")
		return nil, "", errs.New(errs.KindAuthorization, "invalid_credentials", "Email atau password salah")
	}
	if !u.UserIsActive {
		return nil, "", errs.Forbidden("Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	token, err := SignAccessToken(&u)
	if err != nil {
		return nil, "", errs.Internal(err)
	}

	s.recordLogin(ctx, &u.UserID, ip, userAgent, true, "")
	return &u, token, nil
}

/* ==========================
   LOGIN GOOGLE
========================== */

func (s *AuthService) LoginGoogle(ctx context.Context, idToken, ip, userAgent string) (*userModel.UserModel, string, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, "", errs.New(errs.KindAuthorization, "invalid_google_token", "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	googleID := claimSet.Sub

	var u userModel.UserModel
	err = s.DB.WithContext(ctx).
		Where("user_google_id = ?", googleID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// belum pernah login Google — link by email atau buat user baru
		err = s.DB.WithContext(ctx).
			Where("user_email = ?", email).
			First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = userModel.UserModel{
				UserEmail:        email,
				UserPasswordHash: generateDummyPassword(),
				UserFullName:     claimSet.Name,
				UserRole:         constants.RoleStudent,
				UserIsActive:     true,
				UserGoogleID:     &googleID,
			}
			if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
				return nil, "", errs.Internal(err)
			}
		} else if err != nil {
			return nil, "", errs.Internal(err)
		} else {
			if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
				Where("user_id = ?", u.UserID).
				Update("user_google_id", googleID).Error; err != nil {
				return nil, "", errs.Internal(err)
			}
			u.UserGoogleID = &googleID
		}
	} else if err != nil {
		return nil, "", errs.Internal(err)
	}

	if !u.UserIsActive {
		return nil, "", errs.Forbidden("Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	token, err := SignAccessToken(&u)
	if err != nil {
		return nil, "", errs.Internal(err)
	}

	s.recordLogin(ctx, &u.UserID, ip, userAgent, true, "google")
	return &u, token, nil
}

/* ==========================
   FACE ENROLLMENT
========================== */

// EnrollFace mendaftarkan wajah user ke face service. Template tinggal
// di sana; kita hanya menyimpan hash-nya.
func (s *AuthService) EnrollFace(ctx context.Context, userID uuid.UUID, image string, consent bool) (*userModel.UserModel, error) {
	if !consent {
		return nil, errs.Validation("consent is required for face enrollment")
	}

	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User")
		}
		return nil, errs.Internal(err)
	}

	res, err := s.Verifier.Enroll(ctx, image, consent)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errs.Validation("face enrollment failed, try a clearer photo")
	}

	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"user_face_enrolled":       true,
			"user_face_embedding_hash": res.TemplateHash,
		}).Error; err != nil {
		return nil, errs.Internal(err)
	}
	u.UserFaceEnrolled = true
	u.UserFaceEmbeddingHash = &res.TemplateHash

	if err := s.Audit.Record(ctx, auditsvc.Entry{
		UserID:       &userID,
		Action:       auditsvc.ActionFaceEnroll,
		ResourceType: auditsvc.ResourceUser,
		ResourceID:   &userID,
		Details:      map[string]interface{}{"quality_score": res.QualityScore},
		Success:      true,
	}); err != nil {
		log.Printf("[ERROR] audit face enroll: %v", err)
	}

	return &u, nil
}

func (s *AuthService) recordLogin(ctx context.Context, userID *uuid.UUID, ip, userAgent string, success bool, reason string) {
	details := map[string]interface{}{}
	if reason != "" {
		details["reason"] = reason
	}
	if err := s.Audit.Record(ctx, auditsvc.Entry{
		UserID:       userID,
		Action:       auditsvc.ActionAuthLogin,
		ResourceType: auditsvc.ResourceUser,
		ResourceID:   userID,
		IPAddress:    ip,
		UserAgent:    userAgent,
		Details:      details,
		Success:      success,
	}); err != nil {
		log.Printf("[ERROR] audit login: %v", err)
	}
}

// Akun Google tidak punya password lokal; isi hash acak yang tidak
// mungkin cocok dengan input manapun.
func generateDummyPassword() string {
	h, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()+uuid.NewString()), bcrypt.MinCost)
	return string(h)
}
