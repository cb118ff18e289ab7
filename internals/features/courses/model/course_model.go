// internals/features/courses/model/course_model.go
package model

import (
	"time"
)

// Course lifecycle status. Only approved courses accept enrollments.
const (
	CourseStatusPending  = "pending"
	CourseStatusApproved = "approved"
	CourseStatusRejected = "rejected"
)

type CourseModel struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	CourseCode  string    `gorm:"column:course_code;type:varchar(20);not null;uniqueIndex" json:"course_code"`
	CourseName  string    `gorm:"column:course_name;type:varchar(100);not null" json:"course_name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Semester    string    `gorm:"column:semester;type:varchar(20);not null" json:"semester"`
	Status      string    `gorm:"column:status;type:varchar(10);not null;default:pending;index" json:"status"`
	CreateTime  time.Time `gorm:"column:create_time;not null;autoCreateTime" json:"create_time"`
}

func (CourseModel) TableName() string { return "courses" }
