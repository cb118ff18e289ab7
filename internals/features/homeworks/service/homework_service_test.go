// internals/features/homeworks/service/homework_service_test.go
package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModel "unihomework_backend/internals/features/courses/model"
	hwModel "unihomework_backend/internals/features/homeworks/model"
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
		&hwModel.HomeworkModel{},
		&hwModel.SubmissionModel{},
		&hwModel.GradingModel{},
	))
	return db
}

// seedCourse creates an approved course taught by staff 7 with student 9
// enrolled.
func seedCourse(t *testing.T, db *gorm.DB) *courseModel.CourseModel {
	t.Helper()
	require.NoError(t, db.Create(&staffModel.StaffModel{
		ID: 7, StaffNo: "T-7", Name: "teacher", Role: staffModel.StaffRoleTeacher, Password: "x",
	}).Error)
	require.NoError(t, db.Create(&studentModel.StudentModel{
		ID: 9, StudentNo: "S-9", Name: "student", Password: "x",
	}).Error)
	course := &courseModel.CourseModel{
		CourseCode: "CS101", CourseName: "Intro", Semester: "2026S1",
		Status: courseModel.CourseStatusApproved,
	}
	require.NoError(t, db.Create(course).Error)
	require.NoError(t, db.Create(&courseModel.StaffCourseModel{
		StaffID: 7, CourseID: course.ID, Role: "lead",
	}).Error)
	require.NoError(t, db.Create(&courseModel.StudentCourseModel{
		StudentID: 9, CourseID: course.ID, EnrollTime: time.Now().UTC(),
	}).Error)
	return course
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	return fe.Code
}

func futureDeadline() string {
	return time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339)
}

func TestParseDeadline(t *testing.T) {
	for _, s := range []string{"2026-09-01T12:00:00Z", "2026-09-01T12:00:00"} {
		_, err := ParseDeadline(s)
		assert.NoError(t, err, "layout %s", s)
	}
	_, err := ParseDeadline("next tuesday")
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestCreateHomework(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)

	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "read chapter 1",
		Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, hw.CourseHwNo)
	assert.Equal(t, uint(7), hw.PublisherID)

	// Same sequence number in the same course conflicts.
	_, err = CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1 again", Content: "x",
		Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestCreateHomeworkInvalidType(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)

	bad := "essay"
	_, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Type: &bad,
		Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestListHomeworksForStudent(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)

	past := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	_, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "late", Content: "x", Deadline: past, CourseHwNo: 1,
	})
	require.NoError(t, err)
	_, err = CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "open", Content: "x", Deadline: futureDeadline(), CourseHwNo: 2,
	})
	require.NoError(t, err)

	hws, err := ListHomeworksForStudent(db, 9, course.ID)
	require.NoError(t, err)
	require.Len(t, hws, 2)
	// Deadline order: the overdue one comes first.
	assert.Equal(t, "late", hws[0].Title)
	assert.True(t, hws[0].IsOverdue)
	assert.Equal(t, "open", hws[1].Title)
	assert.False(t, hws[1].IsOverdue)

	// Not enrolled means no listing at all.
	_, err = ListHomeworksForStudent(db, 10, course.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestSubmitHomework(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)

	// Empty submission is refused.
	_, _, err = SubmitHomework(db, 9, hw.ID, "  ", nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	sub, resubmitted, err := SubmitHomework(db, 9, hw.ID, "my answer", nil)
	require.NoError(t, err)
	assert.False(t, resubmitted)
	assert.Equal(t, "my answer", sub.TextContent)

	// A second submit overwrites the same row.
	sub2, resubmitted, err := SubmitHomework(db, 9, hw.ID, "fixed answer", []string{"/uploads/a.png"})
	require.NoError(t, err)
	assert.True(t, resubmitted)
	assert.Equal(t, sub.ID, sub2.ID)
	assert.Equal(t, "fixed answer", sub2.TextContent)

	var cnt int64
	require.NoError(t, db.Model(&hwModel.SubmissionModel{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestSubmitHomeworkGuards(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)

	_, _, err = SubmitHomework(db, 9, 999, "answer", nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	// Student 10 is not enrolled.
	require.NoError(t, db.Create(&studentModel.StudentModel{
		ID: 10, StudentNo: "S-10", Name: "other", Password: "x",
	}).Error)
	_, _, err = SubmitHomework(db, 10, hw.ID, "answer", nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestGetSubmissionThreeTierGuard(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)

	// Not enrolled.
	_, err = GetSubmission(db, 10, course.ID, hw.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	// Homework belongs to another course.
	other := &courseModel.CourseModel{
		CourseCode: "CS202", CourseName: "Other", Semester: "2026S1",
		Status: courseModel.CourseStatusApproved,
	}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&courseModel.StudentCourseModel{
		StudentID: 9, CourseID: other.ID, EnrollTime: time.Now().UTC(),
	}).Error)
	_, err = GetSubmission(db, 9, other.ID, hw.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	// Enrolled, homework matches, but nothing submitted yet.
	_, err = GetSubmission(db, 9, course.ID, hw.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	_, _, err = SubmitHomework(db, 9, hw.ID, "answer", nil)
	require.NoError(t, err)
	sub, err := GetSubmission(db, 9, course.ID, hw.ID)
	require.NoError(t, err)
	assert.Equal(t, "answer", sub.TextContent)
}

func TestGradeSubmission(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)
	sub, _, err := SubmitHomework(db, 9, hw.ID, "answer", nil)
	require.NoError(t, err)

	_, err = GradeSubmission(db, sub.ID, 7, 101, nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	_, err = GradeSubmission(db, 999, 7, 80, nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	grading, err := GradeSubmission(db, sub.ID, 7, 80, json.RawMessage(`{"page":1}`))
	require.NoError(t, err)
	assert.Equal(t, 80, grading.Score)
	assert.Equal(t, uint(7), grading.GraderID)

	var got hwModel.SubmissionModel
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.True(t, got.IsGraded)
}

func TestRegradeKeepsOriginalGrader(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)
	sub, _, err := SubmitHomework(db, 9, hw.ID, "answer", nil)
	require.NoError(t, err)

	first, err := GradeSubmission(db, sub.ID, 7, 60, nil)
	require.NoError(t, err)

	second, err := GradeSubmission(db, sub.ID, 8, 90, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 90, second.Score)
	// Grader of record stays the first one.
	assert.Equal(t, uint(7), second.GraderID)
}

func TestResubmissionResetsGradedFlagButKeepsGrading(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)
	sub, _, err := SubmitHomework(db, 9, hw.ID, "answer", nil)
	require.NoError(t, err)
	_, err = GradeSubmission(db, sub.ID, 7, 60, nil)
	require.NoError(t, err)

	_, resubmitted, err := SubmitHomework(db, 9, hw.ID, "better answer", nil)
	require.NoError(t, err)
	assert.True(t, resubmitted)

	var got hwModel.SubmissionModel
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.False(t, got.IsGraded)

	// The grading row survives and reappears on the next grade.
	var gradings int64
	require.NoError(t, db.Model(&hwModel.GradingModel{}).Count(&gradings).Error)
	assert.Equal(t, int64(1), gradings)
}

func TestListSubmissions(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)
	sub, _, err := SubmitHomework(db, 9, hw.ID, "answer", nil)
	require.NoError(t, err)

	rows, err := ListSubmissions(db, course.ID, hw.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "S-9", rows[0].StudentNo)
	assert.Nil(t, rows[0].Grading)

	_, err = GradeSubmission(db, sub.ID, 7, 75, nil)
	require.NoError(t, err)

	rows, err = ListSubmissions(db, course.ID, hw.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Grading)
	assert.Equal(t, 75, rows[0].Grading.Score)

	// Homework id under the wrong course is not found.
	_, err = ListSubmissions(db, course.ID+1, hw.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestUpdateAndDeleteHomework(t *testing.T) {
	db := openTestDB(t)
	course := seedCourse(t, db)
	hw, err := CreateHomework(db, course.ID, 7, CreateHomeworkInput{
		Title: "HW1", Content: "x", Deadline: futureDeadline(), CourseHwNo: 1,
	})
	require.NoError(t, err)

	newTitle := "HW1 revised"
	updated, err := UpdateHomework(db, course.ID, hw.ID, HomeworkPatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "HW1 revised", updated.Title)

	// Wrong course id cannot touch the homework.
	_, err = UpdateHomework(db, course.ID+1, hw.ID, HomeworkPatch{Title: &newTitle})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))

	require.NoError(t, DeleteHomework(db, course.ID, hw.ID))
	err = DeleteHomework(db, course.ID, hw.ID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}
