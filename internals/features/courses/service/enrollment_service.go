// internals/features/courses/service/enrollment_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "unihomework_backend/internals/features/courses/model"
	studentModel "unihomework_backend/internals/features/users/students/model"
)

// EnrolledCourse pairs a course with the moment the student joined it.
type EnrolledCourse struct {
	Course     courseModel.CourseModel `json:"course"`
	EnrollTime time.Time               `json:"enroll_time"`
}

// CourseStudent is one roster entry for a course.
type CourseStudent struct {
	ID         uint      `json:"id"`
	StudentNo  string    `json:"student_no"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	EnrollTime time.Time `json:"enroll_time"`
}

// Enroll registers a student into a course by its code. The course must exist
// and be approved, and the (student, course) pair must not already exist.
// A unique-constraint violation on commit is mapped to the same conflict.
func Enroll(db *gorm.DB, studentID uint, courseCode string) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_code = ?", courseCode).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "course not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to look up course")
		}

		if course.Status != courseModel.CourseStatusApproved {
			return fiber.NewError(fiber.StatusBadRequest, "course is not open for enrollment")
		}

		var cnt int64
		if err := tx.Model(&courseModel.StudentCourseModel{}).
			Where("student_id = ? AND course_id = ?", studentID, course.ID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check enrollment")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "already enrolled in this course")
		}

		rel := courseModel.StudentCourseModel{
			StudentID:  studentID,
			CourseID:   course.ID,
			EnrollTime: time.Now().UTC(),
		}
		if err := tx.Create(&rel).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "already enrolled in this course")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to enroll")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListCoursesForStudent returns the student's courses with enroll timestamps,
// in insertion order.
func ListCoursesForStudent(db *gorm.DB, studentID uint) ([]EnrolledCourse, error) {
	var rels []courseModel.StudentCourseModel
	if err := db.Where("student_id = ?", studentID).Order("id").Find(&rels).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list enrollments")
	}

	out := make([]EnrolledCourse, 0, len(rels))
	for _, rel := range rels {
		var course courseModel.CourseModel
		if err := db.First(&course, rel.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load course")
		}
		out = append(out, EnrolledCourse{Course: course, EnrollTime: rel.EnrollTime})
	}
	return out, nil
}

// IsEnrolled reports whether the student has an enrollment relation.
func IsEnrolled(db *gorm.DB, studentID, courseID uint) (bool, error) {
	var cnt int64
	if err := db.Model(&courseModel.StudentCourseModel{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&cnt).Error; err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "failed to check enrollment")
	}
	return cnt > 0, nil
}

// IsTeacherOf reports whether the staff member has a teaching relation with
// the course.
func IsTeacherOf(db *gorm.DB, staffID, courseID uint) (bool, error) {
	var cnt int64
	if err := db.Model(&courseModel.StaffCourseModel{}).
		Where("staff_id = ? AND course_id = ?", staffID, courseID).
		Count(&cnt).Error; err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "failed to check teaching relation")
	}
	return cnt > 0, nil
}

// ListCourseStudents returns the roster of a course with enroll timestamps.
func ListCourseStudents(db *gorm.DB, courseID uint) ([]CourseStudent, error) {
	var rels []courseModel.StudentCourseModel
	if err := db.Where("course_id = ?", courseID).Order("id").Find(&rels).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list enrollments")
	}

	out := make([]CourseStudent, 0, len(rels))
	for _, rel := range rels {
		var s studentModel.StudentModel
		if err := db.First(&s, rel.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load student")
		}
		out = append(out, CourseStudent{
			ID:         s.ID,
			StudentNo:  s.StudentNo,
			Name:       s.Name,
			Email:      s.Email,
			Phone:      s.Phone,
			EnrollTime: rel.EnrollTime,
		})
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
