package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"absensiku_backend/internals/features/audit/model"
)

func openAuditDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(`CREATE TABLE audit_logs (
		audit_log_id TEXT NOT NULL,
		audit_log_user_id TEXT,
		audit_log_action TEXT NOT NULL,
		audit_log_resource_type TEXT,
		audit_log_resource_id TEXT,
		audit_log_ip_address TEXT,
		audit_log_user_agent TEXT,
		audit_log_details TEXT,
		audit_log_success BOOLEAN NOT NULL DEFAULT 1,
		audit_log_timestamp DATETIME
	)`).Error; err != nil {
		t.Fatalf("ddl: %v", err)
	}
	return db
}

func TestRecordWritesEntry(t *testing.T) {
	db := openAuditDB(t)
	rec := NewRecorder(db)
	userID := uuid.New()
	resID := uuid.New()

	err := rec.Record(context.Background(), Entry{
		UserID:       &userID,
		Action:       ActionCheckInDecision,
		ResourceType: ResourceCheckIn,
		ResourceID:   &resID,
		IPAddress:    "10.0.0.1",
		UserAgent:    "go-test",
		Details:      map[string]interface{}{"status": "approved"},
		Success:      true,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	var row model.AuditLogModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if row.AuditLogAction != ActionCheckInDecision {
		t.Errorf("action = %s, want %s", row.AuditLogAction, ActionCheckInDecision)
	}
	if row.AuditLogUserID == nil || *row.AuditLogUserID != userID {
		t.Errorf("user_id = %v, want %s", row.AuditLogUserID, userID)
	}
	if row.AuditLogIPAddress == nil || *row.AuditLogIPAddress != "10.0.0.1" {
		t.Errorf("ip = %v, want 10.0.0.1", row.AuditLogIPAddress)
	}
	if len(row.AuditLogDetails) == 0 {
		t.Error("details not persisted")
	}
	if !row.AuditLogSuccess {
		t.Error("success flag lost")
	}
}

// RecordAsync menulis di background; entry harus muncul tanpa caller
// menunggu secara eksplisit.
func TestRecordAsyncEventuallyWrites(t *testing.T) {
	db := openAuditDB(t)
	rec := NewRecorder(db)

	rec.RecordAsync(Entry{
		Action:       ActionDeviceRegister,
		ResourceType: ResourceDevice,
		Success:      true,
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		var n int64
		if err := db.Model(&model.AuditLogModel{}).Count(&n).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if n == 1 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("async entry not written within 2s")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
