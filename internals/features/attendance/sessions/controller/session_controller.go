// file: internals/features/attendance/sessions/controller/session_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/sessions/dto"
	"absensiku_backend/internals/features/attendance/sessions/model"
	"absensiku_backend/internals/features/attendance/sessions/service"
	auditsvc "absensiku_backend/internals/features/audit/service"
	courseModel "absensiku_backend/internals/features/courses/model"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/errs"
)

type SessionController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Lifecycle *service.LifecycleService
	Audit     *auditsvc.Recorder
}

func NewSessionController(db *gorm.DB, v *validator.Validate, lifecycle *service.LifecycleService, audit *auditsvc.Recorder) *SessionController {
	return &SessionController{DB: db, Validate: v, Lifecycle: lifecycle, Audit: audit}
}

/* =======================================================
   CREATE
   ======================================================= */

func (ctl *SessionController) Create(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Course harus ada; instructor non-admin harus pemiliknya
	var course courseModel.CourseModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("course_id = ?", req.SessionCourseID).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DomainError(c, errs.NotFound("Course"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}
	role, _ := helper.GetRoleFromToken(c)
	if role != constants.RoleAdmin && course.CourseInstructorID != instructorID {
		return helper.DomainError(c, errs.Forbidden("You must be the instructor for this course"))
	}

	m := req.ToModel(instructorID)

	// Window default relatif ke scheduled_start kalau tidak dikirim
	if req.SessionCheckinOpensAt == nil || req.SessionCheckinClosesAt == nil {
		opens, closes := service.DefaultCheckinWindow(m.SessionScheduledStart)
		if req.SessionCheckinOpensAt == nil {
			m.SessionCheckinOpensAt = opens
		}
		if req.SessionCheckinClosesAt == nil {
			m.SessionCheckinClosesAt = closes
		}
	}

	if err := service.ValidateSchedule(
		m.SessionScheduledStart, m.SessionScheduledEnd,
		m.SessionCheckinOpensAt, m.SessionCheckinClosesAt,
		time.Now().UTC(),
	); err != nil {
		return helper.DomainError(c, err)
	}

	// Venue fallback: course default
	if m.SessionVenueLatitude == nil && m.SessionVenueLongitude == nil {
		m.SessionVenueLatitude = course.CourseVenueLatitude
		m.SessionVenueLongitude = course.CourseVenueLongitude
		if m.SessionVenueName == nil {
			m.SessionVenueName = course.CourseVenueName
		}
	}
	if m.SessionGeofenceRadiusMeters == nil {
		m.SessionGeofenceRadiusMeters = course.CourseGeofenceRadiusMeters
	}
	if m.SessionRiskThreshold == nil {
		m.SessionRiskThreshold = course.CourseRiskThreshold
	}

	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	if err := ctl.Audit.Record(c.Context(), auditsvc.Entry{
		UserID:       &instructorID,
		Action:       auditsvc.ActionSessionCreate,
		ResourceType: auditsvc.ResourceSession,
		ResourceID:   &m.SessionID,
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
		Details:      map[string]interface{}{"course_id": m.SessionCourseID},
		Success:      true,
	}); err != nil {
		log.Printf("[ERROR] audit session create: %v", err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session berhasil dibuat", dto.NewSessionResponse(m))
}

/* =======================================================
   READ
   ======================================================= */

func (ctl *SessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Session ID tidak valid")
	}

	var m model.SessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("session_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DomainError(c, errs.NotFound("Session"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", dto.NewSessionResponse(&m))
}

// List: filter course_id / status / instructor, default urut jadwal terdekat.
func (ctl *SessionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.Context()).Model(&model.SessionModel{})

	if raw := c.Query("course_id"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		db = db.Where("session_course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		if !model.SessionStatus(status).IsValid() {
			return helper.Error(c, fiber.StatusBadRequest, "status tidak valid")
		}
		db = db.Where("session_status = ?", status)
	}
	if raw := c.Query("instructor_id"); raw != "" {
		instructorID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "instructor_id tidak valid")
		}
		db = db.Where("session_instructor_id = ?", instructorID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var list []model.SessionModel
	if err := db.Order("session_scheduled_start ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", fiber.Map{
		"sessions":   dto.NewSessionResponses(list),
		"pagination": helper.BuildPagination(p, total, len(list)),
	})
}

// ListActive — sesi yang window check-in-nya sedang terbuka.
func (ctl *SessionController) ListActive(c *fiber.Ctx) error {
	now := time.Now().UTC()

	var list []model.SessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("session_status = ? AND session_checkin_opens_at <= ? AND session_checkin_closes_at >= ?",
			model.SessionStatusActive, now, now).
		Order("session_checkin_closes_at ASC").
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", dto.NewSessionResponses(list))
}

/* =======================================================
   UPDATE / TRANSITION / DELETE
   ======================================================= */

func (ctl *SessionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Session ID tidak valid")
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.loadOwnedSession(c, id)
	if err != nil {
		return helper.DomainError(c, err)
	}
	// Edit hanya selama masih scheduled; sesi yang sudah jalan diubah
	// lewat endpoint status (close/cancel), bukan di-edit isinya.
	if m.SessionStatus != model.SessionStatusScheduled {
		return helper.DomainError(c, errs.New(errs.KindConflict, "session_not_editable",
			"Only scheduled sessions can be edited"))
	}

	// Validasi ulang jadwal atas hasil merge, bukan per-field:
	// PATCH yang cuma membawa closes_at tidak boleh membalik window.
	start, end, opens, closes, startChanged := req.MergedSchedule(m)
	if err := service.ValidateScheduleUpdate(start, end, opens, closes, time.Now().UTC(), startChanged); err != nil {
		return helper.DomainError(c, err)
	}

	up := req.BuildUpdateMap()
	if len(up) == 0 {
		return helper.Success(c, "Tidak ada perubahan", dto.NewSessionResponse(m))
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&model.SessionModel{}).
		Where("session_id = ?", id).
		Updates(up).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("session_id = ?", id).
		First(m).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "Session berhasil diperbarui", dto.NewSessionResponse(m))
}

// Transition — PATCH /:id/status (scheduled→active→closed, cancel).
func (ctl *SessionController) Transition(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Session ID tidak valid")
	}

	var req dto.TransitionSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if _, err := ctl.loadOwnedSession(c, id); err != nil {
		return helper.DomainError(c, err)
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	m, err := ctl.Lifecycle.Transition(c.Context(), id, model.SessionStatus(req.SessionStatus), actorID)
	if err != nil {
		return helper.DomainError(c, err)
	}

	return helper.Success(c, "Status session berhasil diubah", dto.NewSessionResponse(m))
}

// Delete hanya untuk sesi yang belum pernah aktif.
func (ctl *SessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Session ID tidak valid")
	}

	m, err := ctl.loadOwnedSession(c, id)
	if err != nil {
		return helper.DomainError(c, err)
	}
	if m.SessionStatus != model.SessionStatusScheduled {
		return helper.DomainError(c, errs.New(errs.KindConflict, "session_started",
			"Only scheduled sessions can be deleted; close or cancel instead"))
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("session_id = ?", id).
		Delete(&model.SessionModel{}).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	actorID, _ := helper.GetUserIDFromToken(c)
	if err := ctl.Audit.Record(c.Context(), auditsvc.Entry{
		UserID:       &actorID,
		Action:       auditsvc.ActionSessionDelete,
		ResourceType: auditsvc.ResourceSession,
		ResourceID:   &id,
		Success:      true,
	}); err != nil {
		log.Printf("[ERROR] audit session delete: %v", err)
	}

	return helper.Success(c, "Session berhasil dihapus", nil)
}

// loadOwnedSession: admin bebas; selain itu harus instructor pemilik sesi.
func (ctl *SessionController) loadOwnedSession(c *fiber.Ctx, id uuid.UUID) (*model.SessionModel, error) {
	var m model.SessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("session_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Session")
		}
		return nil, errs.Internal(err)
	}

	role, _ := helper.GetRoleFromToken(c)
	if role == constants.RoleAdmin {
		return &m, nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, errs.Forbidden("Unauthorized")
	}
	if m.SessionInstructorID != userID {
		return nil, errs.Forbidden("You must be the instructor for this session")
	}
	return &m, nil
}
