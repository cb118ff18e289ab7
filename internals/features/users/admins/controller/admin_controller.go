// internals/features/users/admins/controller/admin_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	courseModel "unihomework_backend/internals/features/courses/model"
	courseService "unihomework_backend/internals/features/courses/service"
	adminDTO "unihomework_backend/internals/features/users/admins/dto"
	adminModel "unihomework_backend/internals/features/users/admins/model"
	studentDTO "unihomework_backend/internals/features/users/students/dto"
	studentModel "unihomework_backend/internals/features/users/students/model"
	teacherDTO "unihomework_backend/internals/features/users/teachers/dto"
	staffModel "unihomework_backend/internals/features/users/teachers/model"
	helper "unihomework_backend/internals/helpers"
	authMw "unihomework_backend/internals/middlewares/auth"
)

type AdminController struct {
	DB *gorm.DB
}

func (h *AdminController) loadAdmin(c *fiber.Ctx) (*adminModel.AdminModel, error) {
	id, err := authMw.UserID(c)
	if err != nil {
		return nil, err
	}
	var admin adminModel.AdminModel
	if err := h.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "admin not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load admin")
	}
	return &admin, nil
}

// GET /api/admins/me
func (h *AdminController) Me(c *fiber.Ctx) error {
	admin, err := h.loadAdmin(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", adminDTO.FromAdminModel(*admin))
}

// PATCH /api/admins/me
func (h *AdminController) UpdateMe(c *fiber.Ctx) error {
	admin, err := h.loadAdmin(c)
	if err != nil {
		return err
	}

	var patch adminDTO.AdminPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(patch); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if patch.Name != nil {
		admin.Name = *patch.Name
	}
	if patch.Phone != nil {
		admin.Phone = patch.Phone
	}
	if err := h.DB.Save(admin).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile")
	}
	return helper.JsonUpdated(c, "profile updated", adminDTO.FromAdminModel(*admin))
}

// PATCH /api/admins/me/password
func (h *AdminController) UpdatePassword(c *fiber.Ctx) error {
	admin, err := h.loadAdmin(c)
	if err != nil {
		return err
	}

	var req adminDTO.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.OldPassword == req.NewPassword {
		return fiber.NewError(fiber.StatusBadRequest, "new password must differ from the old one")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.OldPassword)) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "old password is wrong")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}
	if err := h.DB.Model(admin).Update("password", string(hashed)).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update password")
	}
	return helper.JsonUpdated(c, "password changed, please log in again", nil)
}

// GET /api/admins/teachers
func (h *AdminController) ListTeachers(c *fiber.Ctx) error {
	var staffs []staffModel.StaffModel
	if err := h.DB.Where("role = ?", staffModel.StaffRoleTeacher).
		Order("id").Find(&staffs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list teachers")
	}
	out := make([]teacherDTO.TeacherResponse, 0, len(staffs))
	for _, s := range staffs {
		out = append(out, teacherDTO.FromStaffModel(s))
	}
	return helper.JsonList(c, "", out, len(out))
}

// GET /api/admins/students
func (h *AdminController) ListStudents(c *fiber.Ctx) error {
	var students []studentModel.StudentModel
	if err := h.DB.Order("id").Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list students")
	}
	out := make([]studentDTO.StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, studentDTO.FromStudentModel(s))
	}
	return helper.JsonList(c, "", out, len(out))
}

// GET /api/admins/courses
func (h *AdminController) ListCourses(c *fiber.Ctx) error {
	courses, err := courseService.ListAllCourses(h.DB)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", courses, len(courses))
}

// POST /api/admins/courses/:course_id/approve
func (h *AdminController) ApproveCourse(c *fiber.Ctx) error {
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}

	var req adminDTO.ApproveCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := courseService.ApproveCourse(h.DB, courseID, *req.Approve)
	if err != nil {
		return err
	}
	msg := "course approved"
	if !*req.Approve {
		msg = "course rejected"
	}
	return helper.JsonUpdated(c, msg, course)
}

// DELETE /api/admins/users/:user_type/:user_id
// Relations are removed in the same transaction as the account row so a
// failed delete never leaves orphans behind.
func (h *AdminController) DeleteUser(c *fiber.Ctx) error {
	userType := c.Params("user_type")
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}

	switch userType {
	case constants.RoleStudent:
		err = h.deleteStudent(userID)
	case constants.RoleTeacher:
		err = h.deleteTeacher(userID)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "user_type must be student or teacher")
	}
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, userType+" deleted", fiber.Map{"id": userID})
}

func (h *AdminController) deleteStudent(id uint) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var student studentModel.StudentModel
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load student")
		}
		if err := tx.Where("student_id = ?", id).
			Delete(&courseModel.StudentCourseModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove enrollments")
		}
		if err := tx.Delete(&student).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete student")
		}
		return nil
	})
}

func (h *AdminController) deleteTeacher(id uint) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var staff staffModel.StaffModel
		if err := tx.Where("id = ? AND role = ?", id, staffModel.StaffRoleTeacher).
			First(&staff).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "teacher not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load teacher")
		}
		if err := tx.Where("staff_id = ?", id).
			Delete(&courseModel.StaffCourseModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove teaching relations")
		}
		if err := tx.Delete(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete teacher")
		}
		return nil
	})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return uint(v), nil
}
