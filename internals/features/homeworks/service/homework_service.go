// internals/features/homeworks/service/homework_service.go
package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	courseService "unihomework_backend/internals/features/courses/service"
	hwModel "unihomework_backend/internals/features/homeworks/model"
)

// Accepted deadline layouts, tried in order.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// CreateHomeworkInput carries the teacher-supplied fields of a new homework.
type CreateHomeworkInput struct {
	Title      string
	Content    string
	ImageURLs  []string
	Type       *string
	Deadline   string
	CourseHwNo int
}

// HomeworkWithOverdue annotates a homework with the derived overdue flag.
type HomeworkWithOverdue struct {
	hwModel.HomeworkModel
	IsOverdue bool `json:"is_overdue"`
}

// HomeworkPatch lists the fields a teacher may change on an existing homework.
type HomeworkPatch struct {
	Title     *string   `json:"title" validate:"omitempty,min=1,max=255"`
	Content   *string   `json:"content"`
	ImageURLs *[]string `json:"image_urls"`
	Deadline  *string   `json:"deadline"`
}

// ParseDeadline parses a homework deadline timestamp.
func ParseDeadline(s string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid deadline format")
}

func marshalURLs(urls []string) (datatypes.JSON, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid image_urls")
	}
	return datatypes.JSON(b), nil
}

// CreateHomework persists a homework under a course. The per-course sequence
// number must be unused within that course.
func CreateHomework(db *gorm.DB, courseID, publisherID uint, in CreateHomeworkInput) (*hwModel.HomeworkModel, error) {
	deadline, err := ParseDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}

	if in.Type != nil && *in.Type != hwModel.HomeworkTypeShort && *in.Type != hwModel.HomeworkTypeLong {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid homework type")
	}

	urls, err := marshalURLs(in.ImageURLs)
	if err != nil {
		return nil, err
	}

	hw := hwModel.HomeworkModel{
		CourseID:    courseID,
		PublisherID: publisherID,
		CourseHwNo:  in.CourseHwNo,
		Title:       in.Title,
		Content:     in.Content,
		ImageURLs:   urls,
		Type:        in.Type,
		Deadline:    deadline,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&hwModel.HomeworkModel{}).
			Where("course_id = ? AND course_hw_no = ?", courseID, in.CourseHwNo).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check homework number")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "homework number already used in this course")
		}

		if err := tx.Create(&hw).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "homework number already used in this course")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create homework")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

// ListHomeworks returns a course's homeworks ordered by their per-course
// sequence number.
func ListHomeworks(db *gorm.DB, courseID uint) ([]hwModel.HomeworkModel, error) {
	var hws []hwModel.HomeworkModel
	if err := db.Where("course_id = ?", courseID).Order("course_hw_no").Find(&hws).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list homeworks")
	}
	return hws, nil
}

// ListHomeworksForStudent returns the homeworks of a course the student is
// enrolled in, ordered by deadline, each annotated with is_overdue.
func ListHomeworksForStudent(db *gorm.DB, studentID, courseID uint) ([]HomeworkWithOverdue, error) {
	enrolled, err := courseService.IsEnrolled(db, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fiber.NewError(fiber.StatusForbidden, "not enrolled in this course")
	}

	var hws []hwModel.HomeworkModel
	if err := db.Where("course_id = ?", courseID).Order("deadline").Find(&hws).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list homeworks")
	}

	now := time.Now().UTC()
	out := make([]HomeworkWithOverdue, 0, len(hws))
	for _, hw := range hws {
		out = append(out, HomeworkWithOverdue{
			HomeworkModel: hw,
			IsOverdue:     now.After(hw.Deadline),
		})
	}
	return out, nil
}

// UpdateHomework applies a patch to a homework that must belong to the course.
func UpdateHomework(db *gorm.DB, courseID, homeworkID uint, patch HomeworkPatch) (*hwModel.HomeworkModel, error) {
	var hw hwModel.HomeworkModel
	if err := db.Where("id = ? AND course_id = ?", homeworkID, courseID).First(&hw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "homework not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load homework")
	}

	if patch.Title != nil {
		hw.Title = *patch.Title
	}
	if patch.Content != nil {
		hw.Content = *patch.Content
	}
	if patch.ImageURLs != nil {
		urls, err := marshalURLs(*patch.ImageURLs)
		if err != nil {
			return nil, err
		}
		hw.ImageURLs = urls
	}
	if patch.Deadline != nil {
		deadline, err := ParseDeadline(*patch.Deadline)
		if err != nil {
			return nil, err
		}
		hw.Deadline = deadline
	}

	if err := db.Save(&hw).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to update homework")
	}
	return &hw, nil
}

// DeleteHomework removes a homework (and, by cascade, its submissions).
func DeleteHomework(db *gorm.DB, courseID, homeworkID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var hw hwModel.HomeworkModel
		if err := tx.Where("id = ? AND course_id = ?", homeworkID, courseID).First(&hw).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "homework not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load homework")
		}
		if err := tx.Delete(&hw).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete homework")
		}
		return nil
	})
}

// SubmitHomework records a student's submission. A second submission for the
// same homework overwrites the first and resets its graded flag; the returned
// bool reports whether this was a resubmission.
func SubmitHomework(db *gorm.DB, studentID, homeworkID uint, textContent string, imageURLs []string) (*hwModel.SubmissionModel, bool, error) {
	if strings.TrimSpace(textContent) == "" && len(imageURLs) == 0 {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, "submission needs text or images")
	}

	var hw hwModel.HomeworkModel
	if err := db.First(&hw, homeworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fiber.NewError(fiber.StatusNotFound, "homework not found")
		}
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "failed to load homework")
	}

	enrolled, err := courseService.IsEnrolled(db, studentID, hw.CourseID)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, fiber.NewError(fiber.StatusForbidden, "not enrolled in this course")
	}

	urls, err := marshalURLs(imageURLs)
	if err != nil {
		return nil, false, err
	}

	var sub hwModel.SubmissionModel
	resubmitted := false

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("student_id = ? AND homework_id = ?", studentID, homeworkID).First(&sub).Error
		switch {
		case err == nil:
			resubmitted = true
			sub.TextContent = textContent
			sub.ImageURLs = urls
			sub.SubmitTime = time.Now().UTC()
			sub.IsGraded = false
			if err := tx.Save(&sub).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to update submission")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub = hwModel.SubmissionModel{
				HomeworkID:  homeworkID,
				StudentID:   studentID,
				TextContent: textContent,
				ImageURLs:   urls,
				SubmitTime:  time.Now().UTC(),
			}
			if err := tx.Create(&sub).Error; err != nil {
				if isUniqueViolation(err) {
					return fiber.NewError(fiber.StatusConflict, "submission already exists")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "failed to create submission")
			}
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to look up submission")
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &sub, resubmitted, nil
}

// GetSubmission fetches the student's own submission under a three-tier
// guard: enrollment, homework/course binding, then submission existence.
func GetSubmission(db *gorm.DB, studentID, courseID, homeworkID uint) (*hwModel.SubmissionModel, error) {
	enrolled, err := courseService.IsEnrolled(db, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fiber.NewError(fiber.StatusForbidden, "not enrolled in this course")
	}

	var cnt int64
	if err := db.Model(&hwModel.HomeworkModel{}).
		Where("id = ? AND course_id = ?", homeworkID, courseID).
		Count(&cnt).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to check homework")
	}
	if cnt == 0 {
		return nil, fiber.NewError(fiber.StatusForbidden, "homework does not belong to this course")
	}

	var sub hwModel.SubmissionModel
	if err := db.Where("student_id = ? AND homework_id = ?", studentID, homeworkID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "no submission yet")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load submission")
	}
	return &sub, nil
}

// SubmissionWithGrading is a teacher-facing view of one student submission.
type SubmissionWithGrading struct {
	hwModel.SubmissionModel
	StudentNo   string                `json:"student_no"`
	StudentName string                `json:"student_name"`
	Grading     *hwModel.GradingModel `json:"grading,omitempty"`
}

// ListSubmissions returns all submissions of a homework (which must belong
// to the course), each with its grading when the submission is graded.
func ListSubmissions(db *gorm.DB, courseID, homeworkID uint) ([]SubmissionWithGrading, error) {
	var cnt int64
	if err := db.Model(&hwModel.HomeworkModel{}).
		Where("id = ? AND course_id = ?", homeworkID, courseID).
		Count(&cnt).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to check homework")
	}
	if cnt == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "homework not found in this course")
	}

	var subs []hwModel.SubmissionModel
	if err := db.Preload("Student").
		Where("homework_id = ?", homeworkID).Order("id").Find(&subs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to list submissions")
	}

	out := make([]SubmissionWithGrading, 0, len(subs))
	for _, sub := range subs {
		row := SubmissionWithGrading{SubmissionModel: sub}
		if sub.Student != nil {
			row.StudentNo = sub.Student.StudentNo
			row.StudentName = sub.Student.Name
		}
		if sub.IsGraded {
			var g hwModel.GradingModel
			if err := db.Where("submission_id = ?", sub.ID).First(&g).Error; err == nil {
				row.Grading = &g
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load grading")
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// GradeSubmission upserts the single grading row of a submission and marks
// the submission graded. On regrade the score, annotation and timestamp are
// replaced; the original grader id is kept.
func GradeSubmission(db *gorm.DB, submissionID, graderID uint, score int, annotation json.RawMessage) (*hwModel.GradingModel, error) {
	if score < 0 || score > 100 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "score must be an integer between 0 and 100")
	}

	var grading hwModel.GradingModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var sub hwModel.SubmissionModel
		if err := tx.First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "submission not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load submission")
		}

		var ann datatypes.JSON
		if len(annotation) > 0 {
			ann = datatypes.JSON(annotation)
		}

		err := tx.Where("submission_id = ?", submissionID).First(&grading).Error
		switch {
		case err == nil:
			grading.Score = score
			grading.AnnotationData = ann
			grading.GradeTime = time.Now().UTC()
			if err := tx.Save(&grading).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to update grading")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			grading = hwModel.GradingModel{
				SubmissionID:   submissionID,
				GraderID:       graderID,
				Score:          score,
				AnnotationData: ann,
				GradeTime:      time.Now().UTC(),
			}
			if err := tx.Create(&grading).Error; err != nil {
				if isUniqueViolation(err) {
					return fiber.NewError(fiber.StatusConflict, "submission already graded")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "failed to create grading")
			}
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to look up grading")
		}

		if err := tx.Model(&sub).Update("is_graded", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to mark submission graded")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &grading, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
