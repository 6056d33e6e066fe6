// file: internals/features/attendance/devices/dto/device_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/devices/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type RegisterDeviceRequest struct {
	DeviceFingerprint string  `json:"device_fingerprint" validate:"required,min=16,max=64"`
	DeviceName        *string `json:"device_name,omitempty" validate:"omitempty,max=255"`
	DevicePlatform    *string `json:"device_platform,omitempty" validate:"omitempty,oneof=android ios web desktop"`
	DevicePublicKey   string  `json:"device_public_key" validate:"required"`
}

func (r *RegisterDeviceRequest) Normalize() {
	r.DeviceFingerprint = strings.TrimSpace(r.DeviceFingerprint)
	r.DevicePublicKey = strings.TrimSpace(r.DevicePublicKey)
}

func (r *RegisterDeviceRequest) ToModel(userID uuid.UUID) *model.DeviceModel {
	return &model.DeviceModel{
		DeviceUserID:      userID,
		DeviceFingerprint: r.DeviceFingerprint,
		DeviceName:        r.DeviceName,
		DevicePlatform:    r.DevicePlatform,
		DevicePublicKey:   r.DevicePublicKey,
		DeviceTrustScore:  model.DeviceTrustLow,
		DeviceIsActive:    true,
	}
}

type UpdateDeviceTrustRequest struct {
	DeviceIsTrusted  *bool   `json:"device_is_trusted,omitempty"`
	DeviceTrustScore *string `json:"device_trust_score,omitempty" validate:"omitempty,oneof=low medium high"`
	DeviceIsActive   *bool   `json:"device_is_active,omitempty"`
}

func (r *UpdateDeviceTrustRequest) BuildUpdateMap() map[string]interface{} {
	up := make(map[string]interface{})
	if r.DeviceIsTrusted != nil {
		up["device_is_trusted"] = *r.DeviceIsTrusted
	}
	if r.DeviceTrustScore != nil {
		up["device_trust_score"] = *r.DeviceTrustScore
		// is_trusted mengikuti klasifikasi
		up["device_is_trusted"] = *r.DeviceTrustScore == model.DeviceTrustHigh
	}
	if r.DeviceIsActive != nil {
		up["device_is_active"] = *r.DeviceIsActive
	}
	return up
}

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type DeviceResponse struct {
	DeviceID     uuid.UUID `json:"device_id"`
	DeviceUserID uuid.UUID `json:"device_user_id"`

	DeviceFingerprint string  `json:"device_fingerprint"`
	DeviceName        *string `json:"device_name,omitempty"`
	DevicePlatform    *string `json:"device_platform,omitempty"`

	DeviceIsTrusted  bool   `json:"device_is_trusted"`
	DeviceTrustScore string `json:"device_trust_score"`
	DeviceIsActive   bool   `json:"device_is_active"`

	DeviceFirstSeenAt   time.Time `json:"device_first_seen_at"`
	DeviceLastSeenAt    time.Time `json:"device_last_seen_at"`
	DeviceTotalCheckins int       `json:"device_total_checkins"`
}

func NewDeviceResponse(m *model.DeviceModel) *DeviceResponse {
	return &DeviceResponse{
		DeviceID:            m.DeviceID,
		DeviceUserID:        m.DeviceUserID,
		DeviceFingerprint:   m.DeviceFingerprint,
		DeviceName:          m.DeviceName,
		DevicePlatform:      m.DevicePlatform,
		DeviceIsTrusted:     m.DeviceIsTrusted,
		DeviceTrustScore:    m.DeviceTrustScore,
		DeviceIsActive:      m.DeviceIsActive,
		DeviceFirstSeenAt:   m.DeviceFirstSeenAt,
		DeviceLastSeenAt:    m.DeviceLastSeenAt,
		DeviceTotalCheckins: m.DeviceTotalCheckins,
	}
}

func NewDeviceResponses(list []model.DeviceModel) []*DeviceResponse {
	out := make([]*DeviceResponse, 0, len(list))
	for i := range list {
		out = append(out, NewDeviceResponse(&list[i]))
	}
	return out
}
