package dto

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/sessions/model"
	"absensiku_backend/internals/features/attendance/sessions/service"
)

// PATCH yang cuma membawa closes_at tidak boleh bisa membalik window:
// hasil merge wajib gagal validasi jadwal.
func TestMergedSchedulePartialEditCannotInvertWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	m := &model.SessionModel{
		SessionScheduledStart:  start,
		SessionScheduledEnd:    start.Add(90 * time.Minute),
		SessionCheckinOpensAt:  start.Add(-15 * time.Minute),
		SessionCheckinClosesAt: start.Add(30 * time.Minute),
	}

	badCloses := m.SessionCheckinOpensAt.Add(-time.Minute)
	req := UpdateSessionRequest{SessionCheckinClosesAt: &badCloses}

	s, e, o, c, startChanged := req.MergedSchedule(m)
	if startChanged {
		t.Fatal("startChanged = true, scheduled_start was not sent")
	}
	if !s.Equal(m.SessionScheduledStart) || !e.Equal(m.SessionScheduledEnd) || !o.Equal(m.SessionCheckinOpensAt) {
		t.Error("merge changed fields that were not sent")
	}
	if !c.Equal(badCloses) {
		t.Errorf("closes = %v, want %v", c, badCloses)
	}

	if err := service.ValidateScheduleUpdate(s, e, o, c, now, startChanged); err == nil {
		t.Fatal("inverted window passed schedule validation")
	}
}

func TestMergedScheduleMarksStartChanged(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	m := &model.SessionModel{
		SessionScheduledStart:  start,
		SessionScheduledEnd:    start.Add(90 * time.Minute),
		SessionCheckinOpensAt:  start.Add(-15 * time.Minute),
		SessionCheckinClosesAt: start.Add(30 * time.Minute),
	}

	newStart := start.Add(time.Hour)
	newEnd := newStart.Add(90 * time.Minute)
	newOpens := newStart.Add(-15 * time.Minute)
	newCloses := newStart.Add(30 * time.Minute)
	req := UpdateSessionRequest{
		SessionScheduledStart:  &newStart,
		SessionScheduledEnd:    &newEnd,
		SessionCheckinOpensAt:  &newOpens,
		SessionCheckinClosesAt: &newCloses,
	}

	s, e, o, c, startChanged := req.MergedSchedule(m)
	if !startChanged {
		t.Fatal("startChanged = false, scheduled_start was sent")
	}
	if err := service.ValidateScheduleUpdate(s, e, o, c, now, startChanged); err != nil {
		t.Fatalf("full reschedule rejected: %v", err)
	}
}

// risk_threshold 0 valid (semua check-in ter-flag); di atas 1 tidak.
func TestRiskThresholdBoundsInclusive(t *testing.T) {
	v := validator.New()
	zero := 0.0
	over := 1.1

	base := func() CreateSessionRequest {
		start := time.Now().Add(time.Hour)
		return CreateSessionRequest{
			SessionCourseID:       uuid.New(),
			SessionName:           "Kalkulus Pekan 1",
			SessionScheduledStart: start,
			SessionScheduledEnd:   start.Add(90 * time.Minute),
		}
	}

	req := base()
	req.SessionRiskThreshold = &zero
	if err := v.Struct(&req); err != nil {
		t.Fatalf("risk_threshold 0 rejected: %v", err)
	}

	req = base()
	req.SessionRiskThreshold = &over
	if err := v.Struct(&req); err == nil {
		t.Fatal("risk_threshold > 1 accepted")
	}

	up := UpdateSessionRequest{SessionRiskThreshold: &zero}
	if err := v.Struct(&up); err != nil {
		t.Fatalf("update risk_threshold 0 rejected: %v", err)
	}
}
