package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogModel append-only: tidak ada updated_at dan tidak ada
// jalur update/delete di service manapun.
type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_log_id" json:"audit_log_id"`

	AuditLogUserID *uuid.UUID `gorm:"type:uuid;column:audit_log_user_id;index" json:"audit_log_user_id,omitempty"`

	AuditLogAction       string     `gorm:"size:100;not null;column:audit_log_action;index" json:"audit_log_action"`
	AuditLogResourceType *string    `gorm:"size:50;column:audit_log_resource_type;index"    json:"audit_log_resource_type,omitempty"`
	AuditLogResourceID   *uuid.UUID `gorm:"type:uuid;column:audit_log_resource_id;index"    json:"audit_log_resource_id,omitempty"`

	AuditLogIPAddress *string `gorm:"size:45;column:audit_log_ip_address"   json:"audit_log_ip_address,omitempty"`
	AuditLogUserAgent *string `gorm:"size:500;column:audit_log_user_agent"  json:"audit_log_user_agent,omitempty"`

	AuditLogDetails datatypes.JSON `gorm:"column:audit_log_details" json:"audit_log_details,omitempty"`
	AuditLogSuccess bool           `gorm:"not null;default:true;column:audit_log_success" json:"audit_log_success"`

	AuditLogTimestamp time.Time `gorm:"not null;column:audit_log_timestamp;autoCreateTime;index" json:"audit_log_timestamp"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
