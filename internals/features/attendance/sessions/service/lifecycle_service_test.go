package service

import (
	"testing"
	"time"

	"absensiku_backend/internals/features/attendance/sessions/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to model.SessionStatus
		want     bool
	}{
		{model.SessionStatusScheduled, model.SessionStatusActive, true},
		{model.SessionStatusScheduled, model.SessionStatusCancelled, true},
		{model.SessionStatusActive, model.SessionStatusClosed, true},
		{model.SessionStatusActive, model.SessionStatusCancelled, true},

		// skip aktivasi tidak boleh
		{model.SessionStatusScheduled, model.SessionStatusClosed, false},
		// terminal tidak punya jalur keluar
		{model.SessionStatusClosed, model.SessionStatusActive, false},
		{model.SessionStatusClosed, model.SessionStatusCancelled, false},
		{model.SessionStatusCancelled, model.SessionStatusActive, false},
		{model.SessionStatusCancelled, model.SessionStatusScheduled, false},
		// self-transition bukan edge
		{model.SessionStatusActive, model.SessionStatusActive, false},
		{model.SessionStatusScheduled, model.SessionStatusScheduled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"→"+string(tt.to), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanAcceptCheckIn(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	opens, closes := DefaultCheckinWindow(start)

	session := func(status model.SessionStatus) *model.SessionModel {
		return &model.SessionModel{
			SessionStatus:          status,
			SessionCheckinOpensAt:  opens,
			SessionCheckinClosesAt: closes,
		}
	}

	tests := []struct {
		name   string
		status model.SessionStatus
		now    time.Time
		want   bool
	}{
		{"active inside window", model.SessionStatusActive, start, true},
		{"active at opens edge", model.SessionStatusActive, opens, true},
		{"active at closes edge", model.SessionStatusActive, closes, true},
		{"active before window", model.SessionStatusActive, opens.Add(-time.Second), false},
		{"active after window", model.SessionStatusActive, closes.Add(time.Second), false},
		{"scheduled never accepts", model.SessionStatusScheduled, start, false},
		{"closed never accepts", model.SessionStatusClosed, start, false},
		{"cancelled never accepts", model.SessionStatusCancelled, start, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAcceptCheckIn(session(tt.status), tt.now); got != tt.want {
				t.Errorf("CanAcceptCheckIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)
	opens, closes := DefaultCheckinWindow(start)

	tests := []struct {
		name                       string
		start, end, opens, closes  time.Time
		wantErr                    bool
	}{
		{"valid", start, end, opens, closes, false},
		{"start in past", now.Add(-time.Hour), end, opens, closes, true},
		{"start equals now", now, end, opens, closes, true},
		{"end before start", start, start.Add(-time.Minute), opens, closes, true},
		{"window inverted", start, end, closes, opens, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.start, tt.end, tt.opens, tt.closes, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultCheckinWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	opens, closes := DefaultCheckinWindow(start)
	if got := start.Sub(opens); got != DefaultCheckinOpensBefore {
		t.Errorf("opens %v before start, want %v", got, DefaultCheckinOpensBefore)
	}
	if got := closes.Sub(start); got != DefaultCheckinClosesAfter {
		t.Errorf("closes %v after start, want %v", got, DefaultCheckinClosesAfter)
	}
}

func TestSessionStatusTerminal(t *testing.T) {
	if !model.SessionStatusClosed.IsTerminal() || !model.SessionStatusCancelled.IsTerminal() {
		t.Error("closed and cancelled must be terminal")
	}
	if model.SessionStatusScheduled.IsTerminal() || model.SessionStatusActive.IsTerminal() {
		t.Error("scheduled and active must not be terminal")
	}
}

func TestValidateScheduleUpdate(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	end := start.Add(90 * time.Minute)
	opens := start.Add(-15 * time.Minute)
	closes := start.Add(30 * time.Minute)

	tests := []struct {
		name          string
		start, end    time.Time
		opens, closes time.Time
		startChanged  bool
		wantErr       bool
	}{
		{"valid merge", start, end, opens, closes, true, false},
		{"closes before opens", start, end, opens, opens.Add(-time.Minute), false, true},
		{"closes equals opens", start, end, opens, opens, false, true},
		{"end before start", start, start.Add(-time.Minute), opens, closes, false, true},
		{"unchanged past start tolerated", now.Add(-time.Hour), now.Add(time.Hour),
			now.Add(-75 * time.Minute), now.Add(-30 * time.Minute), false, false},
		{"changed start must be future", now.Add(-time.Hour), now.Add(time.Hour), opens, closes, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScheduleUpdate(tt.start, tt.end, tt.opens, tt.closes, now, tt.startChanged)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScheduleUpdate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
