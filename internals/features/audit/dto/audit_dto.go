// file: internals/features/audit/dto/audit_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"absensiku_backend/internals/features/audit/model"
)

type AuditLogResponse struct {
	AuditLogID uuid.UUID `json:"audit_log_id"`

	AuditLogUserID       *uuid.UUID `json:"audit_log_user_id,omitempty"`
	AuditLogAction       string     `json:"audit_log_action"`
	AuditLogResourceType *string    `json:"audit_log_resource_type,omitempty"`
	AuditLogResourceID   *uuid.UUID `json:"audit_log_resource_id,omitempty"`

	AuditLogIPAddress *string `json:"audit_log_ip_address,omitempty"`
	AuditLogUserAgent *string `json:"audit_log_user_agent,omitempty"`

	AuditLogDetails datatypes.JSON `json:"audit_log_details,omitempty"`
	AuditLogSuccess bool           `json:"audit_log_success"`

	AuditLogTimestamp time.Time `json:"audit_log_timestamp"`
}

func NewAuditLogResponse(m *model.AuditLogModel) *AuditLogResponse {
	return &AuditLogResponse{
		AuditLogID:           m.AuditLogID,
		AuditLogUserID:       m.AuditLogUserID,
		AuditLogAction:       m.AuditLogAction,
		AuditLogResourceType: m.AuditLogResourceType,
		AuditLogResourceID:   m.AuditLogResourceID,
		AuditLogIPAddress:    m.AuditLogIPAddress,
		AuditLogUserAgent:    m.AuditLogUserAgent,
		AuditLogDetails:      m.AuditLogDetails,
		AuditLogSuccess:      m.AuditLogSuccess,
		AuditLogTimestamp:    m.AuditLogTimestamp,
	}
}

func NewAuditLogResponses(list []model.AuditLogModel) []*AuditLogResponse {
	out := make([]*AuditLogResponse, 0, len(list))
	for i := range list {
		out = append(out, NewAuditLogResponse(&list[i]))
	}
	return out
}
