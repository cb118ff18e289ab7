// internals/features/homeworks/model/submission_model.go
package model

import (
	"time"

	"gorm.io/datatypes"

	studentModel "unihomework_backend/internals/features/users/students/model"
)

// SubmissionModel is unique per (student, homework). A resubmission
// overwrites this row and resets IsGraded instead of inserting a second one.
type SubmissionModel struct {
	ID          uint           `gorm:"column:id;primaryKey" json:"id"`
	HomeworkID  uint           `gorm:"column:homework_id;not null;uniqueIndex:uq_student_homework" json:"homework_id"`
	StudentID   uint           `gorm:"column:student_id;not null;uniqueIndex:uq_student_homework" json:"student_id"`
	TextContent string         `gorm:"column:text_content;type:text" json:"text_content"`
	ImageURLs   datatypes.JSON `gorm:"column:image_urls" json:"image_urls,omitempty"`
	SubmitTime  time.Time      `gorm:"column:submit_time;not null;autoCreateTime" json:"submit_time"`
	IsGraded    bool           `gorm:"column:is_graded;not null;default:false" json:"is_graded"`

	Homework *HomeworkModel             `gorm:"foreignKey:HomeworkID;constraint:OnDelete:CASCADE" json:"-"`
	Student  *studentModel.StudentModel `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

func (SubmissionModel) TableName() string { return "homework_submissions" }
