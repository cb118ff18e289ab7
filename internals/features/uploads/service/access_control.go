// internals/features/uploads/service/access_control.go
package service

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	courseService "unihomework_backend/internals/features/courses/service"
)

// DenyReason is a stable machine-readable reason for refusing file access.
type DenyReason string

const (
	ReasonInvalidPathFormat      DenyReason = "invalid-path-format"
	ReasonInvalidPathParams      DenyReason = "invalid-path-params"
	ReasonUnsupportedResource    DenyReason = "unsupported-resource-type"
	ReasonInvalidSubmitStudentID DenyReason = "invalid-submit-student-id"
	ReasonNotCourseTeacher       DenyReason = "not-course-teacher"
	ReasonStudentPostForbidden   DenyReason = "student-post-forbidden"
	ReasonStudentWrongOwner      DenyReason = "student-wrong-owner"
	ReasonInvalidIdentity        DenyReason = "invalid-identity"
)

// DeniedError is returned for every refused access, carrying the HTTP status
// the handler should respond with.
type DeniedError struct {
	Reason DenyReason
	Status int
}

func (e *DeniedError) Error() string { return string(e.Reason) }

func deny(status int, reason DenyReason) *DeniedError {
	return &DeniedError{Reason: reason, Status: status}
}

// AuthorizeFileAccess decides whether the requester may read an uploaded file
// at the given relative path. Paths look like
//
//	course/{course_id}/hw/{hw_no}/post/...
//	course/{course_id}/hw/{hw_no}/submit/student/{student_id}/...
//
// Staff with a teaching relation for the course may read both post and submit
// resources. Students may only read their own submit resources.
func AuthorizeFileAccess(db *gorm.DB, role string, userID uint, path string) error {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 5 || parts[0] != "course" {
		return deny(fiber.StatusBadRequest, ReasonInvalidPathFormat)
	}

	courseID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return deny(fiber.StatusBadRequest, ReasonInvalidPathParams)
	}
	if _, err := strconv.Atoi(parts[3]); err != nil {
		return deny(fiber.StatusBadRequest, ReasonInvalidPathParams)
	}

	resourceType := parts[4]
	if resourceType != constants.ResourcePost && resourceType != constants.ResourceSubmit {
		return deny(fiber.StatusBadRequest, ReasonUnsupportedResource)
	}

	var submitStudentID uint64
	if resourceType == constants.ResourceSubmit {
		if len(parts) < 7 || parts[5] != "student" {
			return deny(fiber.StatusBadRequest, ReasonInvalidPathFormat)
		}
		submitStudentID, err = strconv.ParseUint(parts[6], 10, 32)
		if err != nil {
			return deny(fiber.StatusBadRequest, ReasonInvalidSubmitStudentID)
		}
	}

	switch role {
	case constants.RoleTeacher:
		teaches, err := courseService.IsTeacherOf(db, userID, uint(courseID))
		if err != nil {
			return err
		}
		if !teaches {
			return deny(fiber.StatusForbidden, ReasonNotCourseTeacher)
		}
		// Course staff read both post and every student's submit resources.
		return nil

	case constants.RoleStudent:
		if resourceType == constants.ResourcePost {
			return deny(fiber.StatusForbidden, ReasonStudentPostForbidden)
		}
		if uint(submitStudentID) != userID {
			return deny(fiber.StatusForbidden, ReasonStudentWrongOwner)
		}
		return nil

	default:
		return deny(fiber.StatusForbidden, ReasonInvalidIdentity)
	}
}
