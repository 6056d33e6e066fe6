// file: internals/features/courses/controller/course_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/courses/dto"
	"absensiku_backend/internals/features/courses/model"
	userModel "absensiku_backend/internals/features/users/model"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/helpers/errs"
)

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseController(db *gorm.DB, v *validator.Validate) *CourseController {
	return &CourseController{DB: db, Validate: v}
}

func (ctl *CourseController) Create(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(instructorID)
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.DomainError(c, errs.New(errs.KindConflict, "course_code_taken",
				"Course code already exists"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course berhasil dibuat", dto.NewCourseResponse(m))
}

func (ctl *CourseController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.Context()).Model(&model.CourseModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		s := "%" + strings.ToLower(search) + "%"
		db = db.Where("(LOWER(course_name) LIKE ? OR LOWER(course_code) LIKE ?)", s, s)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	var list []model.CourseModel
	if err := db.Order("course_code ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&list).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", fiber.Map{
		"courses":    dto.NewCourseResponses(list),
		"pagination": helper.BuildPagination(p, total, len(list)),
	})
}

func (ctl *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var m model.CourseModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("course_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DomainError(c, errs.NotFound("Course"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.Success(c, "OK", dto.NewCourseResponse(&m))
}

// Enroll — instructor pemilik course (atau admin) mendaftarkan student.
// Upsert: enroll ulang student yang pernah di-deactivate mengaktifkan lagi.
func (ctl *CourseController) Enroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var req dto.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, derr := ctl.loadOwnedCourse(c, courseID)
	if derr != nil {
		return helper.DomainError(c, derr)
	}

	var student userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ? AND user_is_active = TRUE", req.EnrollmentStudentID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DomainError(c, errs.NotFound("Student"))
		}
		return helper.DomainError(c, errs.Internal(err))
	}

	m := model.EnrollmentModel{
		EnrollmentStudentID: req.EnrollmentStudentID,
		EnrollmentCourseID:  course.CourseID,
		EnrollmentIsActive:  true,
	}
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_student_id"}, {Name: "enrollment_course_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"enrollment_is_active": true}),
		}).
		Create(&m).Error; err != nil {
		return helper.DomainError(c, errs.Internal(err))
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student terdaftar di course", dto.NewEnrollmentResponse(&m))
}

// Unenroll — soft: enrollment nonaktif memblokir check-in berikutnya.
func (ctl *CourseController) Unenroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Course ID tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Student ID tidak valid")
	}

	if _, derr := ctl.loadOwnedCourse(c, courseID); derr != nil {
		return helper.DomainError(c, derr)
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.EnrollmentModel{}).
		Where("enrollment_course_id = ? AND enrollment_student_id = ?", courseID, studentID).
		Update("enrollment_is_active", false)
	if res.Error != nil {
		return helper.DomainError(c, errs.Internal(res.Error))
	}
	if res.RowsAffected == 0 {
		return helper.DomainError(c, errs.NotFound("Enrollment"))
	}

	return helper.Success(c, "Enrollment dinonaktifkan", nil)
}

func (ctl *CourseController) loadOwnedCourse(c *fiber.Ctx, id uuid.UUID) (*model.CourseModel, error) {
	var m model.CourseModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("course_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Course")
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
	if m.CourseInstructorID != userID {
		return nil, errs.Forbidden("You must be the instructor for this course")
	}
	return &m, nil
}
