package service

import (
	"context"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/audit/model"
)

// Nama action yang dicatat. Satu tempat supaya filter di endpoint audit konsisten.
const (
	ActionCheckInDecision   = "checkin.decision"
	ActionCheckInAppeal     = "checkin.appeal"
	ActionCheckInReview     = "checkin.review"
	ActionSessionCreate     = "session.create"
	ActionSessionTransition = "session.transition"
	ActionSessionDelete     = "session.delete"
	ActionDeviceRegister    = "device.register"
	ActionAuthLogin         = "auth.login"
	ActionAuthRegister      = "auth.register"
	ActionFaceEnroll        = "face.enroll"
)

const (
	ResourceCheckIn = "checkin"
	ResourceSession = "session"
	ResourceDevice  = "device"
	ResourceUser    = "user"
)

// Recorder menulis audit log. Append-only: tidak ada method update/delete.
type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

type Entry struct {
	UserID       *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	IPAddress    string
	UserAgent    string
	Details      interface{} // di-serialize ke JSON
	Success      bool
}

// Record menulis satu entry. Error dikembalikan untuk di-log caller;
// kegagalan audit tidak boleh membatalkan operasi utamanya.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	row := model.AuditLogModel{
		AuditLogUserID:     e.UserID,
		AuditLogAction:     e.Action,
		AuditLogResourceID: e.ResourceID,
		AuditLogSuccess:    e.Success,
	}
	if e.ResourceType != "" {
		rt := e.ResourceType
		row.AuditLogResourceType = &rt
	}
	if e.IPAddress != "" {
		ip := e.IPAddress
		row.AuditLogIPAddress = &ip
	}
	if e.UserAgent != "" {
		ua := e.UserAgent
		row.AuditLogUserAgent = &ua
	}
	if e.Details != nil {
		raw, err := sonic.Marshal(e.Details)
		if err != nil {
			log.Printf("[WARN] audit: gagal marshal details (%s): %v", e.Action, err)
		} else {
			row.AuditLogDetails = datatypes.JSON(raw)
		}
	}

	return r.DB.WithContext(ctx).Create(&row).Error
}

// RecordAsync untuk jalur non-kritis: tulis di goroutine, log kalau gagal.
func (r *Recorder) RecordAsync(e Entry) {
	go func() {
		if err := r.Record(context.Background(), e); err != nil {
			log.Printf("[ERROR] audit: gagal tulis entry %s: %v", e.Action, err)
		}
	}()
}
