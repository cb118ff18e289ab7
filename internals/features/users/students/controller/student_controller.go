// internals/features/users/students/controller/student_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihomework_backend/internals/configs"
	"unihomework_backend/internals/constants"
	courseService "unihomework_backend/internals/features/courses/service"
	hwModel "unihomework_backend/internals/features/homeworks/model"
	homeworkService "unihomework_backend/internals/features/homeworks/service"
	uploadService "unihomework_backend/internals/features/uploads/service"
	studentDTO "unihomework_backend/internals/features/users/students/dto"
	studentModel "unihomework_backend/internals/features/users/students/model"
	helper "unihomework_backend/internals/helpers"
	authMw "unihomework_backend/internals/middlewares/auth"
)

type StudentController struct {
	DB *gorm.DB
}

func (h *StudentController) loadStudent(c *fiber.Ctx) (*studentModel.StudentModel, error) {
	id, err := authMw.UserID(c)
	if err != nil {
		return nil, err
	}
	var student studentModel.StudentModel
	if err := h.DB.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load student")
	}
	return &student, nil
}

// GET /api/students/me
func (h *StudentController) Me(c *fiber.Ctx) error {
	student, err := h.loadStudent(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", studentDTO.FromStudentModel(*student))
}

// PATCH /api/students/me
func (h *StudentController) UpdateMe(c *fiber.Ctx) error {
	student, err := h.loadStudent(c)
	if err != nil {
		return err
	}

	var patch studentDTO.StudentPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(patch); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Email != nil {
		student.Email = patch.Email
	}
	if patch.Phone != nil {
		student.Phone = patch.Phone
	}
	if err := h.DB.Save(student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile")
	}
	return helper.JsonUpdated(c, "profile updated", studentDTO.FromStudentModel(*student))
}

// PATCH /api/students/me/password
func (h *StudentController) UpdatePassword(c *fiber.Ctx) error {
	student, err := h.loadStudent(c)
	if err != nil {
		return err
	}

	var req studentDTO.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.OldPassword == req.NewPassword {
		return fiber.NewError(fiber.StatusBadRequest, "new password must differ from the old one")
	}
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.OldPassword)) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "old password is wrong")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}
	if err := h.DB.Model(student).Update("password", string(hashed)).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update password")
	}
	return helper.JsonUpdated(c, "password changed, please log in again", nil)
}

// GET /api/students/me/courses
func (h *StudentController) ListCourses(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courses, err := courseService.ListCoursesForStudent(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", courses, len(courses))
}

// POST /api/students/me/courses
func (h *StudentController) EnrollCourse(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}

	var req studentDTO.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := courseService.Enroll(h.DB, id, req.CourseCode)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "enrolled", course)
}

// GET /api/students/me/courses/:course_id/homeworks
func (h *StudentController) ListCourseHomeworks(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}

	hws, err := homeworkService.ListHomeworksForStudent(h.DB, id, courseID)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", hws, len(hws))
}

// GET /api/students/me/homeworks/:homework_id/submission
func (h *StudentController) GetSubmission(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}

	var hw hwModel.HomeworkModel
	if err := h.DB.First(&hw, homeworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "homework not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load homework")
	}

	sub, err := homeworkService.GetSubmission(h.DB, id, hw.CourseID, homeworkID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", sub)
}

// POST /api/students/me/homeworks/:homework_id/submission
func (h *StudentController) SubmitHomework(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}

	var req studentDTO.SubmitHomeworkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	sub, resubmitted, err := homeworkService.SubmitHomework(h.DB, id, homeworkID, req.TextContent, req.ImageURLs)
	if err != nil {
		return err
	}
	msg := "homework submitted"
	if resubmitted {
		msg = "homework resubmitted"
	}
	return helper.JsonCreated(c, msg, sub)
}

// POST /api/students/me/homeworks/:homework_id/upload-image
// Multipart field "file", repeatable. Each call fully replaces the previous
// image set for this (student, homework).
func (h *StudentController) UploadSubmissionImages(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}

	var hw hwModel.HomeworkModel
	if err := h.DB.First(&hw, homeworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "homework not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load homework")
	}

	enrolled, err := courseService.IsEnrolled(h.DB, id, hw.CourseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return fiber.NewError(fiber.StatusForbidden, "not enrolled in this course")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}
	files := form.File["file"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no file provided")
	}

	destDir, err := uploadService.ResolveStoragePath(hw.CourseID, hw.CourseHwNo, constants.ResourceSubmit, id)
	if err != nil {
		return err
	}
	rels, err := uploadService.ReplaceSubmissionImages(files, configs.UploadDir, destDir)
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(rels))
	for _, rel := range rels {
		urls = append(urls, uploadService.PublicURL(rel))
	}
	return helper.JsonCreated(c, "images uploaded", fiber.Map{"image_urls": urls})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be a number")
	}
	return uint(v), nil
}
