// internals/features/courses/service/course_service_test.go
package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "unihomework_backend/internals/features/courses/model"
	studentModel "unihomework_backend/internals/features/users/students/model"
	staffModel "unihomework_backend/internals/features/users/teachers/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&studentModel.StudentModel{},
		&staffModel.StaffModel{},
		&courseModel.CourseModel{},
		&courseModel.StudentCourseModel{},
		&courseModel.StaffCourseModel{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, id uint, no string) {
	t.Helper()
	require.NoError(t, db.Create(&studentModel.StudentModel{
		ID: id, StudentNo: no, Name: "student " + no, Password: "x",
	}).Error)
}

func seedTeacher(t *testing.T, db *gorm.DB, id uint, no string) {
	t.Helper()
	require.NoError(t, db.Create(&staffModel.StaffModel{
		ID: id, StaffNo: no, Name: "teacher " + no, Role: staffModel.StaffRoleTeacher, Password: "x",
	}).Error)
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

func TestCreateCourseLinksTeacherAsLead(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")

	course := courseModel.CourseModel{
		CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1",
	}
	require.NoError(t, CreateCourse(db, 7, &course))
	assert.Equal(t, courseModel.CourseStatusPending, course.Status)

	teaches, err := IsTeacherOf(db, 7, course.ID)
	require.NoError(t, err)
	assert.True(t, teaches)

	taught, err := ListCoursesForStaff(db, 7)
	require.NoError(t, err)
	require.Len(t, taught, 1)
	assert.Equal(t, "lead", taught[0].Role)
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")

	first := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1"}
	require.NoError(t, CreateCourse(db, 7, &first))

	dup := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Other", Semester: "2026S1"}
	err := CreateCourse(db, 7, &dup)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestApproveCourseOnlyFromPending(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")

	course := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1"}
	require.NoError(t, CreateCourse(db, 7, &course))

	approved, err := ApproveCourse(db, course.ID, true)
	require.NoError(t, err)
	assert.Equal(t, courseModel.CourseStatusApproved, approved.Status)

	// A resolved course cannot be re-reviewed.
	_, err = ApproveCourse(db, course.ID, false)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestApproveCourseReject(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")

	course := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1"}
	require.NoError(t, CreateCourse(db, 7, &course))

	rejected, err := ApproveCourse(db, course.ID, false)
	require.NoError(t, err)
	assert.Equal(t, courseModel.CourseStatusRejected, rejected.Status)
}

func TestApproveCourseNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := ApproveCourse(db, 999, true)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestEnroll(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")
	seedStudent(t, db, 9, "S-9")

	course := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1"}
	require.NoError(t, CreateCourse(db, 7, &course))

	// Pending courses refuse enrollment.
	_, err := Enroll(db, 9, "CS101")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	_, err = ApproveCourse(db, course.ID, true)
	require.NoError(t, err)

	enrolled, err := Enroll(db, 9, "CS101")
	require.NoError(t, err)
	assert.Equal(t, course.ID, enrolled.ID)

	ok, err := IsEnrolled(db, 9, course.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Enrolling twice conflicts.
	_, err = Enroll(db, 9, "CS101")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := openTestDB(t)
	seedStudent(t, db, 9, "S-9")

	_, err := Enroll(db, 9, "NOPE")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestEnrollRejectedCourse(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")
	seedStudent(t, db, 9, "S-9")

	course := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1"}
	require.NoError(t, CreateCourse(db, 7, &course))
	_, err := ApproveCourse(db, course.ID, false)
	require.NoError(t, err)

	_, err = Enroll(db, 9, "CS101")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestListCoursesForStudentInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")
	seedStudent(t, db, 9, "S-9")

	for _, code := range []string{"CS300", "CS100", "CS200"} {
		course := courseModel.CourseModel{CourseCode: code, CourseName: code, Semester: "2026S1"}
		require.NoError(t, CreateCourse(db, 7, &course))
		_, err := ApproveCourse(db, course.ID, true)
		require.NoError(t, err)
		_, err = Enroll(db, 9, code)
		require.NoError(t, err)
	}

	courses, err := ListCoursesForStudent(db, 9)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	// Enrollment order, not course-code order.
	assert.Equal(t, "CS300", courses[0].Course.CourseCode)
	assert.Equal(t, "CS100", courses[1].Course.CourseCode)
	assert.Equal(t, "CS200", courses[2].Course.CourseCode)
}

func TestListCourseStudents(t *testing.T) {
	db := openTestDB(t)
	seedTeacher(t, db, 7, "T-7")
	seedStudent(t, db, 9, "S-9")
	seedStudent(t, db, 10, "S-10")

	course := courseModel.CourseModel{CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1"}
	require.NoError(t, CreateCourse(db, 7, &course))
	_, err := ApproveCourse(db, course.ID, true)
	require.NoError(t, err)
	_, err = Enroll(db, 9, "CS101")
	require.NoError(t, err)
	_, err = Enroll(db, 10, "CS101")
	require.NoError(t, err)

	roster, err := ListCourseStudents(db, course.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "S-9", roster[0].StudentNo)
	assert.Equal(t, "S-10", roster[1].StudentNo)
}
