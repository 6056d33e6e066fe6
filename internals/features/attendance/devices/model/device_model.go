package model

import (
	"time"

	"github.com/google/uuid"
)

// Trust score kasar dari perilaku historis device.
const (
	DeviceTrustLow    = "low"
	DeviceTrustMedium = "medium"
	DeviceTrustHigh   = "high"
)

type DeviceModel struct {
	DeviceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:device_id" json:"device_id"`

	DeviceUserID uuid.UUID `gorm:"type:uuid;not null;column:device_user_id;index" json:"device_user_id"`

	DeviceFingerprint string  `gorm:"size:64;not null;uniqueIndex;column:device_fingerprint" json:"device_fingerprint"`
	DeviceName        *string `gorm:"size:255;column:device_name"                            json:"device_name,omitempty"`
	DevicePlatform    *string `gorm:"size:50;column:device_platform"                         json:"device_platform,omitempty"`

	DevicePublicKey string `gorm:"type:text;not null;column:device_public_key" json:"-"`

	DeviceIsTrusted  bool   `gorm:"not null;default:false;column:device_is_trusted;index" json:"device_is_trusted"`
	DeviceTrustScore string `gorm:"size:20;not null;default:low;column:device_trust_score" json:"device_trust_score"`

	DeviceIsActive bool `gorm:"not null;default:true;column:device_is_active;index" json:"device_is_active"`

	DeviceFirstSeenAt   time.Time `gorm:"column:device_first_seen_at;autoCreateTime" json:"device_first_seen_at"`
	DeviceLastSeenAt    time.Time `gorm:"column:device_last_seen_at;autoUpdateTime"  json:"device_last_seen_at"`
	DeviceTotalCheckins int       `gorm:"not null;default:0;column:device_total_checkins" json:"device_total_checkins"`
}

func (DeviceModel) TableName() string { return "devices" }

// SignalScore memetakan trust classification ke sinyal [0,1]
// untuk risk combiner (higher = more trustworthy).
func (d *DeviceModel) SignalScore() float64 {
	switch d.DeviceTrustScore {
	case DeviceTrustHigh:
		return 0.9
	case DeviceTrustMedium:
		return 0.6
	default:
		return 0.3
	}
}
