package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/checkins/model"
	"absensiku_backend/internals/helpers/errs"
)

func baseCheckIn(studentID uuid.UUID, status model.CheckInStatus, checkedInAt time.Time) *model.CheckInModel {
	return &model.CheckInModel{
		CheckInID:          uuid.New(),
		CheckInSessionID:   uuid.New(),
		CheckInStudentID:   studentID,
		CheckInStatus:      status,
		CheckInCheckedInAt: checkedInAt,
	}
}

func TestCanAppeal(t *testing.T) {
	student := uuid.New()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reason := "wrong location reading"

	tests := []struct {
		name    string
		checkin func() *model.CheckInModel
		student uuid.UUID
		wantErr error
	}{
		{
			name:    "rejected within window",
			checkin: func() *model.CheckInModel { return baseCheckIn(student, model.CheckInStatusRejected, now.Add(-time.Hour)) },
			student: student,
			wantErr: nil,
		},
		{
			name:    "flagged within window",
			checkin: func() *model.CheckInModel { return baseCheckIn(student, model.CheckInStatusFlagged, now.Add(-24*time.Hour)) },
			student: student,
			wantErr: nil,
		},
		{
			name:    "not the owner",
			checkin: func() *model.CheckInModel { return baseCheckIn(student, model.CheckInStatusRejected, now.Add(-time.Hour)) },
			student: uuid.New(),
			wantErr: errs.Forbidden("Only the check-in owner can appeal"),
		},
		{
			name: "already appealed",
			checkin: func() *model.CheckInModel {
				ci := baseCheckIn(student, model.CheckInStatusAppealed, now.Add(-time.Hour))
				at := now.Add(-30 * time.Minute)
				ci.CheckInAppealedAt = &at
				ci.CheckInAppealReason = &reason
				return ci
			},
			student: student,
			wantErr: errs.ErrAlreadyAppealed,
		},
		{
			name:    "approved not appealable",
			checkin: func() *model.CheckInModel { return baseCheckIn(student, model.CheckInStatusApproved, now.Add(-time.Hour)) },
			student: student,
			wantErr: errs.New(errs.KindConflict, "not_appealable", ""),
		},
		{
			name:    "pending not appealable",
			checkin: func() *model.CheckInModel { return baseCheckIn(student, model.CheckInStatusPending, now.Add(-time.Hour)) },
			student: student,
			wantErr: errs.New(errs.KindConflict, "not_appealable", ""),
		},
		{
			name: "window expired",
			checkin: func() *model.CheckInModel {
				return baseCheckIn(student, model.CheckInStatusRejected, now.Add(-AppealWindow-time.Minute))
			},
			student: student,
			wantErr: errs.ErrAppealWindowExpired,
		},
		{
			name: "exactly at window edge still allowed",
			checkin: func() *model.CheckInModel {
				return baseCheckIn(student, model.CheckInStatusRejected, now.Add(-AppealWindow))
			},
			student: student,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAppeal(tt.checkin(), tt.student, now)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CanAppeal() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("CanAppeal() = nil, want error %v", tt.wantErr)
			}
			if errors.Is(tt.wantErr, errs.ErrAlreadyAppealed) || errors.Is(tt.wantErr, errs.ErrAppealWindowExpired) {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CanAppeal() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if errs.CodeOf(err) != errs.CodeOf(tt.wantErr) {
				t.Errorf("CanAppeal() code = %q, want %q", errs.CodeOf(err), errs.CodeOf(tt.wantErr))
			}
		})
	}
}

func TestCanReview(t *testing.T) {
	student := uuid.New()
	now := time.Now().UTC()

	t.Run("flagged reviewable", func(t *testing.T) {
		ci := baseCheckIn(student, model.CheckInStatusFlagged, now)
		if err := CanReview(ci); err != nil {
			t.Errorf("CanReview(flagged) = %v, want nil", err)
		}
	})

	t.Run("appealed reviewable", func(t *testing.T) {
		ci := baseCheckIn(student, model.CheckInStatusAppealed, now)
		if err := CanReview(ci); err != nil {
			t.Errorf("CanReview(appealed) = %v, want nil", err)
		}
	})

	t.Run("approved not reviewable", func(t *testing.T) {
		ci := baseCheckIn(student, model.CheckInStatusApproved, now)
		if err := CanReview(ci); err == nil {
			t.Error("CanReview(approved) = nil, want error")
		}
	})

	t.Run("review is terminal", func(t *testing.T) {
		ci := baseCheckIn(student, model.CheckInStatusAppealed, now)
		reviewed := now.Add(-time.Minute)
		ci.CheckInReviewedAt = &reviewed
		err := CanReview(ci)
		if err == nil {
			t.Fatal("CanReview(reviewed) = nil, want error")
		}
		if errs.CodeOf(err) != "already_reviewed" {
			t.Errorf("code = %q, want already_reviewed", errs.CodeOf(err))
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg duplicate key", errors.New(`ERROR: duplicate key value violates unique constraint "uq_checkins_session_student" (SQLSTATE 23505)`), true},
		{"plain sqlstate", errors.New("sqlstate 23505"), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
