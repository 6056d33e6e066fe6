package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/checkins/model"
	sessionModel "absensiku_backend/internals/features/attendance/sessions/model"
	auditsvc "absensiku_backend/internals/features/audit/service"
	courseModel "absensiku_backend/internals/features/courses/model"
	"absensiku_backend/internals/helpers/errs"
)

// Banding hanya boleh dalam window tetap sejak checked_in_at.
const AppealWindow = 7 * 24 * time.Hour

/* =========================================================
 * Aturan pure — dites tanpa DB
 * ========================================================= */

// CanAppeal: hanya owner, hanya rejected/flagged, sekali saja, dalam window.
func CanAppeal(ci *model.CheckInModel, studentID uuid.UUID, now time.Time) error {
	if ci.CheckInStudentID != studentID {
		return errs.Forbidden("Only the check-in owner can appeal")
	}
	if ci.CheckInAppealedAt != nil || ci.CheckInAppealReason != nil {
		return errs.ErrAlreadyAppealed
	}
	if !ci.CheckInStatus.CanBeAppealed() {
		return errs.New(errs.KindConflict, "not_appealable",
			"Can only appeal rejected or flagged check-ins")
	}
	if now.Sub(ci.CheckInCheckedInAt) > AppealWindow {
		return errs.ErrAppealWindowExpired
	}
	return nil
}

// CanReview: review hanya flagged/appealed; setelah review, terminal.
func CanReview(ci *model.CheckInModel) error {
	if ci.CheckInReviewedAt != nil {
		return errs.New(errs.KindConflict, "already_reviewed",
			"Check-in has already been reviewed")
	}
	if !ci.CheckInStatus.CanBeReviewed() {
		return errs.New(errs.KindConflict, "not_reviewable",
			"Can only review flagged or appealed check-ins")
	}
	return nil
}

/* =========================================================
 * AppealService
 * ========================================================= */

type AppealService struct {
	DB    *gorm.DB
	Audit *auditsvc.Recorder
}

func NewAppealService(db *gorm.DB, audit *auditsvc.Recorder) *AppealService {
	return &AppealService{DB: db, Audit: audit}
}

func (s *AppealService) loadCheckIn(ctx context.Context, checkinID uuid.UUID) (*model.CheckInModel, error) {
	var ci model.CheckInModel
	if err := s.DB.WithContext(ctx).
		Where("checkin_id = ?", checkinID).
		First(&ci).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Check-in")
		}
		return nil, errs.Internal(err)
	}
	return &ci, nil
}

// Appeal mengajukan banding atas check-in non-approved.
// Update di-guard kondisi yang sama di sisi server supaya dua appeal
// bersamaan tidak dua-duanya lolos.
func (s *AppealService) Appeal(ctx context.Context, checkinID, studentID uuid.UUID, reason string) (*model.CheckInModel, error) {
	ci, err := s.loadCheckIn(ctx, checkinID)
	if err != nil {
		return nil, err
	}
	if err := CanAppeal(ci, studentID, time.Now().UTC()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).Model(&model.CheckInModel{}).
		Where("checkin_id = ? AND checkin_appealed_at IS NULL AND checkin_status IN ?",
			checkinID, []model.CheckInStatus{model.CheckInStatusRejected, model.CheckInStatusFlagged}).
		Updates(map[string]interface{}{
			"checkin_status":        model.CheckInStatusAppealed,
			"checkin_appeal_reason": reason,
			"checkin_appealed_at":   now,
		})
	if res.Error != nil {
		return nil, errs.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrAlreadyAppealed
	}

	ci.CheckInStatus = model.CheckInStatusAppealed
	ci.CheckInAppealReason = &reason
	ci.CheckInAppealedAt = &now

	if err := s.Audit.Record(ctx, auditsvc.Entry{
		UserID:       &studentID,
		Action:       auditsvc.ActionCheckInAppeal,
		ResourceType: auditsvc.ResourceCheckIn,
		ResourceID:   &checkinID,
		Details:      map[string]interface{}{"session_id": ci.CheckInSessionID},
		Success:      true,
	}); err != nil {
		log.Printf("[ERROR] audit appeal: %v", err)
	}

	return ci, nil
}

// ReviewerContext — siapa yang me-review.
type ReviewerContext struct {
	UserID uuid.UUID
	Role   string
}

// Review memfinalkan check-in flagged/appealed menjadi approved/rejected.
// Scoping: admin bebas; instructor harus pemilik course; TA harus punya
// enrollment aktif di course yang sama.
func (s *AppealService) Review(ctx context.Context, checkinID uuid.UUID, reviewer ReviewerContext, target model.CheckInStatus, notes *string) (*model.CheckInModel, error) {
	if target != model.CheckInStatusApproved && target != model.CheckInStatusRejected {
		return nil, errs.Validation("status must be approved or rejected")
	}

	ci, err := s.loadCheckIn(ctx, checkinID)
	if err != nil {
		return nil, err
	}
	if err := CanReview(ci); err != nil {
		return nil, err
	}

	var session sessionModel.SessionModel
	if err := s.DB.WithContext(ctx).
		Where("session_id = ?", ci.CheckInSessionID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Session")
		}
		return nil, errs.Internal(err)
	}
	if err := s.authorizeReviewer(ctx, reviewer, &session); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).Model(&model.CheckInModel{}).
		Where("checkin_id = ? AND checkin_reviewed_at IS NULL AND checkin_status IN ?",
			checkinID, []model.CheckInStatus{model.CheckInStatusFlagged, model.CheckInStatusAppealed}).
		Updates(map[string]interface{}{
			"checkin_status":         target,
			"checkin_reviewed_by_id": reviewer.UserID,
			"checkin_reviewed_at":    now,
			"checkin_review_notes":   notes,
		})
	if res.Error != nil {
		return nil, errs.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.New(errs.KindConflict, "already_reviewed",
			"Check-in has already been reviewed")
	}

	ci.CheckInStatus = target
	ci.CheckInReviewedByID = &reviewer.UserID
	ci.CheckInReviewedAt = &now
	ci.CheckInReviewNotes = notes

	if err := s.Audit.Record(ctx, auditsvc.Entry{
		UserID:       &reviewer.UserID,
		Action:       auditsvc.ActionCheckInReview,
		ResourceType: auditsvc.ResourceCheckIn,
		ResourceID:   &checkinID,
		Details: map[string]interface{}{
			"session_id": ci.CheckInSessionID,
			"decision":   target,
		},
		Success: true,
	}); err != nil {
		log.Printf("[ERROR] audit review: %v", err)
	}

	return ci, nil
}

func (s *AppealService) authorizeReviewer(ctx context.Context, reviewer ReviewerContext, session *sessionModel.SessionModel) error {
	switch reviewer.Role {
	case constants.RoleAdmin:
		return nil
	case constants.RoleInstructor:
		var course courseModel.CourseModel
		if err := s.DB.WithContext(ctx).
			Where("course_id = ?", session.SessionCourseID).
			First(&course).Error; err != nil {
			return errs.Internal(err)
		}
		if course.CourseInstructorID != reviewer.UserID {
			return errs.Forbidden("You must be the instructor for this course")
		}
		return nil
	case constants.RoleTA:
		var n int64
		if err := s.DB.WithContext(ctx).Model(&courseModel.EnrollmentModel{}).
			Where("enrollment_student_id = ? AND enrollment_course_id = ? AND enrollment_is_active = TRUE",
				reviewer.UserID, session.SessionCourseID).
			Count(&n).Error; err != nil {
			return errs.Internal(err)
		}
		if n == 0 {
			return errs.Forbidden("TA is not assigned to this course")
		}
		return nil
	default:
		return errs.Forbidden("Insufficient permissions")
	}
}

// Deteksi unique violation Postgres (kode "23505")
func isUniqueViolation(err error) bool {
	// tanpa import pgx/pgconn biar portable: cek substring
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
