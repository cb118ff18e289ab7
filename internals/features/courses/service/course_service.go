// internals/features/courses/service/course_service.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	courseModel "unihomework_backend/internals/features/courses/model"
)

// TaughtCourse pairs a course with the staff member's role in it.
type TaughtCourse struct {
	Course courseModel.CourseModel `json:"course"`
	Role   string                  `json:"role"`
}

// CoursePatch lists the fields a teacher may change. Status is deliberately
// absent: lifecycle transitions belong to the admin approval flow.
type CoursePatch struct {
	CourseName  *string `json:"course_name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Semester    *string `json:"semester" validate:"omitempty,min=1,max=20"`
}

// CreateCourse inserts a pending course and the creator's teaching relation
// in one transaction.
func CreateCourse(db *gorm.DB, teacherID uint, course *courseModel.CourseModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&courseModel.CourseModel{}).
			Where("course_code = ?", course.CourseCode).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check course code")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "course code already exists")
		}

		course.Status = courseModel.CourseStatusPending
		if err := tx.Create(course).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "course code already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create course")
		}

		rel := courseModel.StaffCourseModel{
			StaffID:  teacherID,
			CourseID: course.ID,
			Role:     constants.CourseRoleLead,
		}
		if err := tx.Create(&rel).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to link teacher to course")
		}
		return nil
	})
}

// UpdateCourse applies a teacher patch field by field.
func UpdateCourse(db *gorm.DB, courseID uint, patch CoursePatch) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "course not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load course")
	}

	if patch.CourseName != nil {
		course.CourseName = *patch.CourseName
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Semester != nil {
		course.Semester = *patch.Semester
	}

	if err := db.Save(&course).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to update course")
	}
	return &course, nil
}

// ApproveCourse resolves a pending course to approved or rejected. Courses
// already resolved cannot be re-reviewed.
func ApproveCourse(db *gorm.DB, courseID uint, approve bool) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "course not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load course")
		}
		if course.Status != courseModel.CourseStatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "course is already "+course.Status)
		}

		if approve {
			course.Status = courseModel.CourseStatusApproved
		} else {
			course.Status = courseModel.CourseStatusRejected
		}
		if err := tx.Save(&course).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update course status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListCoursesForStaff returns the courses a staff member teaches, with the
// role recorded on the relation.
func ListCoursesForStaff(db *gorm.DB, staffID uint) ([]TaughtCourse, error) {
	var rels []courseModel.StaffCourseModel
	if err := db.Where("staff_id = ?", staffID).Order("id").Find(&rels).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list teaching relations")
	}

	out := make([]TaughtCourse, 0, len(rels))
	for _, rel := range rels {
		var course courseModel.CourseModel
		if err := db.First(&course, rel.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load course")
		}
		out = append(out, TaughtCourse{Course: course, Role: rel.Role})
	}
	return out, nil
}

// ListAllCourses returns every course, pending ones included.
func ListAllCourses(db *gorm.DB) ([]courseModel.CourseModel, error) {
	var courses []courseModel.CourseModel
	if err := db.Order("id").Find(&courses).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list courses")
	}
	return courses, nil
}
