// internals/features/homeworks/model/homework_model.go
package model

import (
	"time"

	"gorm.io/datatypes"

	courseModel "unihomework_backend/internals/features/courses/model"
)

// Homework type tag.
const (
	HomeworkTypeShort = "short"
	HomeworkTypeLong  = "long"
)

// HomeworkModel belongs to exactly one course. CourseHwNo is the per-course
// sequence number, unique within the course and distinct from the row id.
type HomeworkModel struct {
	ID          uint           `gorm:"column:id;primaryKey" json:"id"`
	CourseID    uint           `gorm:"column:course_id;not null;uniqueIndex:uq_course_hw_no" json:"course_id"`
	PublisherID uint           `gorm:"column:publisher_id;not null" json:"publisher_id"`
	CourseHwNo  int            `gorm:"column:course_hw_no;not null;uniqueIndex:uq_course_hw_no" json:"course_hw_no"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content     string         `gorm:"column:content;type:text" json:"content"`
	ImageURLs   datatypes.JSON `gorm:"column:image_urls" json:"image_urls,omitempty"`
	Type        *string        `gorm:"column:type;type:varchar(10)" json:"type,omitempty"`
	Deadline    time.Time      `gorm:"column:deadline;not null;index" json:"deadline"`
	CreateTime  time.Time      `gorm:"column:create_time;not null;autoCreateTime" json:"create_time"`

	Course *courseModel.CourseModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (HomeworkModel) TableName() string { return "homeworks" }
