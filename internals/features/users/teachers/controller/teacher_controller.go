// internals/features/users/teachers/controller/teacher_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihomework_backend/internals/configs"
	"unihomework_backend/internals/constants"
	courseModel "unihomework_backend/internals/features/courses/model"
	courseService "unihomework_backend/internals/features/courses/service"
	hwModel "unihomework_backend/internals/features/homeworks/model"
	homeworkService "unihomework_backend/internals/features/homeworks/service"
	uploadService "unihomework_backend/internals/features/uploads/service"
	teacherDTO "unihomework_backend/internals/features/users/teachers/dto"
	staffModel "unihomework_backend/internals/features/users/teachers/model"
	helper "unihomework_backend/internals/helpers"
	authMw "unihomework_backend/internals/middlewares/auth"
)

type TeacherController struct {
	DB *gorm.DB
}

func (h *TeacherController) loadTeacher(c *fiber.Ctx) (*staffModel.StaffModel, error) {
	id, err := authMw.UserID(c)
	if err != nil {
		return nil, err
	}
	var staff staffModel.StaffModel
	if err := h.DB.Where("id = ? AND role = ?", id, staffModel.StaffRoleTeacher).
		First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "teacher not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load teacher")
	}
	return &staff, nil
}

// requireCourseTeacher checks the teaching relation before any course-scoped
// operation.
func (h *TeacherController) requireCourseTeacher(teacherID, courseID uint) error {
	teaches, err := courseService.IsTeacherOf(h.DB, teacherID, courseID)
	if err != nil {
		return err
	}
	if !teaches {
		return fiber.NewError(fiber.StatusForbidden, "no teaching relation with this course")
	}
	return nil
}

// GET /api/teachers/me
func (h *TeacherController) Me(c *fiber.Ctx) error {
	staff, err := h.loadTeacher(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", teacherDTO.FromStaffModel(*staff))
}

// PATCH /api/teachers/me
func (h *TeacherController) UpdateMe(c *fiber.Ctx) error {
	staff, err := h.loadTeacher(c)
	if err != nil {
		return err
	}

	var patch teacherDTO.TeacherPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(patch); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if patch.Name != nil {
		staff.Name = *patch.Name
	}
	if patch.Email != nil {
		staff.Email = patch.Email
	}
	if patch.Phone != nil {
		staff.Phone = patch.Phone
	}
	if err := h.DB.Save(staff).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile")
	}
	return helper.JsonUpdated(c, "profile updated", teacherDTO.FromStaffModel(*staff))
}

// PATCH /api/teachers/me/password
func (h *TeacherController) UpdatePassword(c *fiber.Ctx) error {
	staff, err := h.loadTeacher(c)
	if err != nil {
		return err
	}

	var req teacherDTO.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.OldPassword == req.NewPassword {
		return fiber.NewError(fiber.StatusBadRequest, "new password must differ from the old one")
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.OldPassword)) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "old password is wrong")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}
	if err := h.DB.Model(staff).Update("password", string(hashed)).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update password")
	}
	return helper.JsonUpdated(c, "password changed, please log in again", nil)
}

// GET /api/teachers/me/courses
func (h *TeacherController) ListCourses(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courses, err := courseService.ListCoursesForStaff(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", courses, len(courses))
}

// POST /api/teachers/me/courses
func (h *TeacherController) CreateCourse(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}

	var req teacherDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course := courseModel.CourseModel{
		CourseCode:  req.CourseCode,
		CourseName:  req.CourseName,
		Description: req.Description,
		Semester:    req.Semester,
	}
	if err := courseService.CreateCourse(h.DB, id, &course); err != nil {
		return err
	}
	return helper.JsonCreated(c, "course created, pending review", course)
}

// PATCH /api/teachers/me/courses/:course_id
func (h *TeacherController) UpdateCourse(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	var patch courseService.CoursePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(patch); err != nil {
		return helper.JsonValidationError(c, err)
	}

	course, err := courseService.UpdateCourse(h.DB, courseID, patch)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "course updated", course)
}

// GET /api/teachers/me/courses/:course_id/homeworks
func (h *TeacherController) ListHomeworks(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	hws, err := homeworkService.ListHomeworks(h.DB, courseID)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", hws, len(hws))
}

// POST /api/teachers/me/courses/:course_id/homeworks
func (h *TeacherController) CreateHomework(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	var req teacherDTO.CreateHomeworkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hw, err := homeworkService.CreateHomework(h.DB, courseID, id, homeworkService.CreateHomeworkInput{
		Title:      req.Title,
		Content:    req.Content,
		ImageURLs:  req.ImageURLs,
		Type:       req.Type,
		Deadline:   req.Deadline,
		CourseHwNo: req.CourseHwNo,
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "homework created", hw)
}

// PUT /api/teachers/me/courses/:course_id/homeworks/:homework_id
func (h *TeacherController) UpdateHomework(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	var patch homeworkService.HomeworkPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(patch); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hw, err := homeworkService.UpdateHomework(h.DB, courseID, homeworkID, patch)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "homework updated", hw)
}

// DELETE /api/teachers/me/courses/:course_id/homeworks/:homework_id
func (h *TeacherController) DeleteHomework(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	if err := homeworkService.DeleteHomework(h.DB, courseID, homeworkID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "homework deleted", nil)
}

// GET /api/teachers/me/courses/:course_id/homeworks/:homework_id/submissions
func (h *TeacherController) ListSubmissions(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	subs, err := homeworkService.ListSubmissions(h.DB, courseID, homeworkID)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", subs, len(subs))
}

// POST /api/teachers/me/submissions/:submission_id/grade
func (h *TeacherController) GradeSubmission(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	submissionID, err := paramUint(c, "submission_id")
	if err != nil {
		return err
	}

	var req teacherDTO.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	grading, err := homeworkService.GradeSubmission(h.DB, submissionID, id, *req.Score, req.AnnotationData)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "submission graded", grading)
}

// GET /api/teachers/me/courses/:course_id/students
func (h *TeacherController) ListCourseStudents(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	students, err := courseService.ListCourseStudents(h.DB, courseID)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", students, len(students))
}

// POST /api/teachers/me/courses/:course_id/homeworks/:homework_id/upload-image
// Multipart field "file", repeatable. Files land in the course/hw post dir.
func (h *TeacherController) UploadPostImages(c *fiber.Ctx) error {
	id, err := authMw.UserID(c)
	if err != nil {
		return err
	}
	courseID, err := paramUint(c, "course_id")
	if err != nil {
		return err
	}
	homeworkID, err := paramUint(c, "homework_id")
	if err != nil {
		return err
	}
	if err := h.requireCourseTeacher(id, courseID); err != nil {
		return err
	}

	var hw hwModel.HomeworkModel
	if err := h.DB.Where("id = ? AND course_id = ?", homeworkID, courseID).First(&hw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "homework not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load homework")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}
	files := form.File["file"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no file provided")
	}

	destDir, err := uploadService.ResolveStoragePath(courseID, hw.CourseHwNo, constants.ResourcePost, 0)
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		rel, err := uploadService.SaveUpload(fh, configs.UploadDir, destDir)
		if err != nil {
			return err
		}
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
