// file: internals/features/audit/controller/audit_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/audit/dto"
	"absensiku_backend/internals/features/audit/model"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/errs"
)

// Read-only: audit log tidak punya endpoint tulis/ubah/hapus.
type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// List — admin only; filter via querystring.
func (ctl *AuditController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	db := ctl.DB.WithContext(c.Context()).Model(&model.AuditLogModel{})

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
		}
		db = db.Where("audit_log_user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		db = db.Where("audit_log_action = ?", action)
	}
	if rt := c.Query("resource_type"); rt != "" {
		db = db.Where("audit_log_resource_type = ?", rt)
	}
	if raw := c.Query("resource_id"); raw != "" {
		resourceID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "resource_id tidak valid")
		}
		db = db.Where("audit_log_resource_id = ?", resourceID)
	}
	if raw := c.Query("success"); raw != "" {
		db = db.Where("audit_log_success = ?", raw == "true")
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "from harus RFC3339")
		}
		db = db.Where("audit_log_timestamp >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "to harus RFC3339")
		}
		db = db.Where("audit_log_timestamp <= ?", to)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var list []model.AuditLogModel
	if err := db.Order("audit_log_timestamp DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", fiber.Map{
		"audit_logs": dto.NewAuditLogResponses(list),
		"pagination": helper.BuildPagination(p, total, len(list)),
	})
}
