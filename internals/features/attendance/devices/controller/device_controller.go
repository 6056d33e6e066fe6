// file: internals/features/attendance/devices/controller/device_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"absensiku_backend/internals/features/attendance/devices/dto"
	"absensiku_backend/internals/features/attendance/devices/model"
	auditsvc "absensiku_backend/internals/features/audit/service"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/errs"
)

type DeviceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditsvc.Recorder
}

func NewDeviceController(db *gorm.DB, v *validator.Validate, audit *auditsvc.Recorder) *DeviceController {
	return &DeviceController{DB: db, Validate: v, Audit: audit}
}

/* =======================================================
   REGISTER (upsert by fingerprint)
   ======================================================= */

func (ctl *DeviceController) Register(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(userID)

	// Re-register device yang sama = refresh metadata, bukan duplikat.
	// Trust score TIDAK di-reset: itu milik histori, bukan request.
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "device_fingerprint"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"device_name", "device_platform", "device_public_key", "device_is_active",
			}),
		}).
		Create(m).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var saved model.DeviceModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("device_fingerprint = ?", m.DeviceFingerprint).
		First(&saved).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}
	if saved.DeviceUserID != userID {
		// fingerprint sudah terikat ke user lain
		return helper.DomainError(c, errs.New(errs.KindConflict, "device_claimed",
			"Device is already registered to another account"))
	}

	// non-kritis: catat di background, response tidak menunggu audit
	ctl.Audit.RecordAsync(auditsvc.Entry{
		UserID:       &userID,
		Action:       auditsvc.ActionDeviceRegister,
		ResourceType: auditsvc.ResourceDevice,
		ResourceID:   &saved.DeviceID,
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
		Success:      true,
	})

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Device terdaftar", dto.NewDeviceResponse(&saved))
}

/* =======================================================
   READ / UPDATE / DELETE
   ======================================================= */

func (ctl *DeviceController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var list []model.DeviceModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("device_user_id = ?", userID).
		Order("device_last_seen_at DESC").
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", dto.NewDeviceResponses(list))
}

// UpdateTrust — admin menandai trust level device.
func (ctl *DeviceController) UpdateTrust(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Device ID tidak valid")
	}

	var req dto.UpdateDeviceTrustRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	up := req.BuildUpdateMap()
	if len(up) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.DeviceModel{}).
		Where("device_id = ?", id).
		Updates(up)
	if res.Error != nil {
		return helper.DomainError(c, errs.Internal(res.Error))
	}
	if res.RowsAffected == 0 {
		return helper.DomainError(c, errs.NotFound("Device"))
	}

	var m model.DeviceModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("device_id = ?", id).
		First(&m).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "Device trust diperbarui", dto.NewDeviceResponse(&m))
}

// Deactivate — soft: device nonaktif tidak dipakai sebagai sinyal lagi.
func (ctl *DeviceController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Device ID tidak valid")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.DeviceModel{}).
		Where("device_id = ? AND device_user_id = ?", id, userID).
		Update("device_is_active", false)
	if res.Error != nil {
		return helper.DomainError(c, errs.Internal(res.Error))
	}
	if res.RowsAffected == 0 {
		return helper.DomainError(c, errs.NotFound("Device"))
	}

	return helper.Success(c, "Device dinonaktifkan", nil)
}
