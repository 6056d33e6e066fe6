package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/sessions/model"
	auditsvc "absensiku_backend/internals/features/audit/service"
	"absensiku_backend/internals/helpers/errs"
)

// Default window check-in relatif ke scheduled_start.
const (
	DefaultCheckinOpensBefore = 15 * time.Minute
	DefaultCheckinClosesAfter = 30 * time.Minute
)

// Edge yang legal. closed & cancelled tidak punya jalur keluar.
var allowedTransitions = map[model.SessionStatus][]model.SessionStatus{
	model.SessionStatusScheduled: {model.SessionStatusActive, model.SessionStatusCancelled},
	model.SessionStatusActive:    {model.SessionStatusClosed, model.SessionStatusCancelled},
}

// CanTransition cek legalitas edge state machine.
func CanTransition(from, to model.SessionStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CanAcceptCheckIn: satu-satunya gerbang yang dikonsultasi decision engine.
// Dievaluasi saat request, tidak dicache — window bisa tutup di tengah burst.
func CanAcceptCheckIn(s *model.SessionModel, now time.Time) bool {
	if s.SessionStatus != model.SessionStatusActive {
		return false
	}
	return !now.Before(s.SessionCheckinOpensAt) && !now.After(s.SessionCheckinClosesAt)
}

// ValidateSchedule — validasi saat create.
func ValidateSchedule(scheduledStart, scheduledEnd, opensAt, closesAt, now time.Time) error {
	if !scheduledStart.After(now) {
		return errs.Validation("scheduled_start must be in the future")
	}
	if !scheduledEnd.After(scheduledStart) {
		return errs.Validation("scheduled_end must be after scheduled_start")
	}
	if !closesAt.After(opensAt) {
		return errs.Validation("checkin_closes_at must be after checkin_opens_at")
	}
	return nil
}

// ValidateScheduleUpdate memvalidasi jadwal HASIL MERGE partial update.
// Relasi antar-field selalu dicek ulang; aturan strictly-future hanya
// berlaku kalau scheduled_start ikut diubah, supaya edit field lain pada
// sesi yang start-nya sudah lewat tidak tertolak percuma.
func ValidateScheduleUpdate(scheduledStart, scheduledEnd, opensAt, closesAt, now time.Time, startChanged bool) error {
	if startChanged && !scheduledStart.After(now) {
		return errs.Validation("scheduled_start must be in the future")
	}
	if !scheduledEnd.After(scheduledStart) {
		return errs.Validation("scheduled_end must be after scheduled_start")
	}
	if !closesAt.After(opensAt) {
		return errs.Validation("checkin_closes_at must be after checkin_opens_at")
	}
	return nil
}

// DefaultCheckinWindow melengkapi window kalau caller tidak mengisi.
func DefaultCheckinWindow(scheduledStart time.Time) (opensAt, closesAt time.Time) {
	return scheduledStart.Add(-DefaultCheckinOpensBefore), scheduledStart.Add(DefaultCheckinClosesAfter)
}

/* =========================================================
 * LifecycleService — transisi status dengan compare-and-swap
 * ========================================================= */

type LifecycleService struct {
	DB    *gorm.DB
	Audit *auditsvc.Recorder
}

func NewLifecycleService(db *gorm.DB, audit *auditsvc.Recorder) *LifecycleService {
	return &LifecycleService{DB: db, Audit: audit}
}

// Transition memindahkan session ke target status.
// Write di-guard status saat ini di sisi server (CAS): dua instructor
// menutup sesi yang sama secara bersamaan → salah satu dapat conflict.
func (s *LifecycleService) Transition(ctx context.Context, sessionID uuid.UUID, target model.SessionStatus, actorID uuid.UUID) (*model.SessionModel, error) {
	if !target.IsValid() {
		return nil, errs.Validation("unknown session status: %s", target)
	}

	var session model.SessionModel
	if err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("Session")
		}
		return nil, errs.Internal(err)
	}

	current := session.SessionStatus
	if !CanTransition(current, target) {
		return nil, errs.ErrInvalidTransition
	}

	res := s.DB.WithContext(ctx).Model(&model.SessionModel{}).
		Where("session_id = ? AND session_status = ?", sessionID, current).
		Update("session_status", target)
	if res.Error != nil {
		return nil, errs.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		// status berubah di antara read dan write
		return nil, errs.ErrInvalidTransition
	}
	session.SessionStatus = target

	if err := s.Audit.Record(ctx, auditsvc.Entry{
		UserID:       &actorID,
		Action:       auditsvc.ActionSessionTransition,
		ResourceType: auditsvc.ResourceSession,
		ResourceID:   &sessionID,
		Details: map[string]interface{}{
			"from": current,
			"to":   target,
		},
		Success: true,
	}); err != nil {
		log.Printf("[ERROR] audit transition: %v", err)
	}

	return &session, nil
}
