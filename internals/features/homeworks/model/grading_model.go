// internals/features/homeworks/model/grading_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// GradingModel holds at most one row per submission. A resubmission after
// grading flips the submission's IsGraded back to false but keeps this row.
type GradingModel struct {
	ID             uint           `gorm:"column:id;primaryKey" json:"id"`
	SubmissionID   uint           `gorm:"column:submission_id;not null;uniqueIndex" json:"submission_id"`
	GraderID       uint           `gorm:"column:grader_id;not null" json:"grader_id"`
	Score          int            `gorm:"column:score;not null" json:"score"`
	AnnotationData datatypes.JSON `gorm:"column:annotation_data" json:"annotation_data,omitempty"`
	AIFeedback     *string        `gorm:"column:ai_feedback;type:text" json:"ai_feedback,omitempty"`
	GradeTime      time.Time      `gorm:"column:grade_time;not null;autoCreateTime" json:"grade_time"`

	Submission *SubmissionModel `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GradingModel) TableName() string { return "homework_gradings" }
