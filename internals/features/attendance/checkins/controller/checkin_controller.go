// file: internals/features/attendance/checkins/controller/checkin_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/checkins/dto"
	"absensiku_backend/internals/features/attendance/checkins/model"
	"absensiku_backend/internals/features/attendance/checkins/service"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/errs"
)

type CheckInController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Engine   *service.DecisionEngine
	Appeals  *service.AppealService
}

func NewCheckInController(db *gorm.DB, v *validator.Validate, engine *service.DecisionEngine, appeals *service.AppealService) *CheckInController {
	return &CheckInController{DB: db, Validate: v, Engine: engine, Appeals: appeals}
}

/* =======================================================
   CREATE — jalur utama check-in
   ======================================================= */

func (ctl *CheckInController) Create(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Engine.Process(c.Context(), service.CheckInInput{
		SessionID:              req.CheckInSessionID,
		StudentID:              studentID,
		Latitude:               req.CheckInLatitude,
		Longitude:              req.CheckInLongitude,
		LocationAccuracyMeters: req.CheckInLocationAccuracyMeters,
		DeviceFingerprint:      req.CheckInDeviceFingerprint,
		LivenessPayload:        req.CheckInLivenessPayload,
		IPAddress:              c.IP(),
		UserAgent:              c.Get("User-Agent"),
	})
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Check-in diproses", dto.NewCheckInResponse(row))
}

/* =======================================================
   READ
   ======================================================= */

func (ctl *CheckInController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Check-in ID tidak valid")
	}

	var m model.CheckInModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("checkin_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DomainError(c, errs.NotFound("Check-in"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}

	// Student hanya boleh lihat miliknya sendiri
	role, _ := helper.GetRoleFromToken(c)
	if constants.HasRole(role, constants.StudentOnly) {
		userID, _ := helper.GetUserIDFromToken(c)
		if m.CheckInStudentID != userID {
			return helper.DomainError(c, errs.Forbidden("Not your check-in"))
		}
	}

	return helper.Success(c, "OK", dto.NewCheckInResponse(&m))
}

// ListMine — riwayat check-in milik user login.
func (ctl *CheckInController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.Context()).Model(&model.CheckInModel{}).
		Where("checkin_student_id = ?", studentID)
	if status := c.Query("status"); status != "" {
		if !model.CheckInStatus(status).IsValid() {
			return helper.Error(c, fiber.StatusBadRequest, "status tidak valid")
		}
		db = db.Where("checkin_status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var list []model.CheckInModel
	if err := db.Order("checkin_checked_in_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", fiber.Map{
		"checkins":   dto.NewCheckInResponses(list),
		"pagination": helper.BuildPagination(p, total, len(list)),
	})
}

// ListBySession — untuk instructor/TA melihat kehadiran satu sesi.
func (ctl *CheckInController) ListBySession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Session ID tidak valid")
	}
	p := helper.ResolvePaging(c, 50, 200)

	db := ctl.DB.WithContext(c.Context()).Model(&model.CheckInModel{}).
		Where("checkin_session_id = ?", sessionID)
	if status := c.Query("status"); status != "" {
		if !model.CheckInStatus(status).IsValid() {
			return helper.Error(c, fiber.StatusBadRequest, "status tidak valid")
		}
		db = db.Where("checkin_status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var list []model.CheckInModel
	if err := db.Order("checkin_checked_in_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", fiber.Map{
		"checkins":   dto.NewCheckInResponses(list),
		"pagination": helper.BuildPagination(p, total, len(list)),
	})
}

// ListFlagged — antrian review: flagged + appealed, terlama dulu.
func (ctl *CheckInController) ListFlagged(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.Context()).Model(&model.CheckInModel{}).
		Where("checkin_status IN ?", []model.CheckInStatus{
			model.CheckInStatusFlagged, model.CheckInStatusAppealed,
		})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var list []model.CheckInModel
	if err := db.Order("checkin_checked_in_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", fiber.Map{
		"checkins":   dto.NewCheckInResponses(list),
		"pagination": helper.BuildPagination(p, total, len(list)),
	})
}

/* =======================================================
   APPEAL & REVIEW
   ======================================================= */

func (ctl *CheckInController) Appeal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Check-in ID tidak valid")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AppealCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Appeals.Appeal(c.Context(), id, studentID, req.CheckInAppealReason)
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.Success(c, "Appeal diajukan", dto.NewCheckInResponse(m))
}

func (ctl *CheckInController) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Check-in ID tidak valid")
	}
	reviewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ReviewCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Appeals.Review(c.Context(), id,
		service.ReviewerContext{UserID: reviewerID, Role: role},
		model.CheckInStatus(req.CheckInStatus), req.CheckInReviewNotes)
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.Success(c, "Review tersimpan", dto.NewCheckInResponse(m))
}
