// internals/features/courses/model/relation_model.go
package model

import (
	"time"

	staffModel "unihomework_backend/internals/features/users/teachers/model"
	studentModel "unihomework_backend/internals/features/users/students/model"
)

// StudentCourseModel is the enrollment relation. A (student, course) pair
// appears at most once; deleting either side cascades the relation.
type StudentCourseModel struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	StudentID  uint      `gorm:"column:student_id;not null;uniqueIndex:uq_student_course" json:"student_id"`
	CourseID   uint      `gorm:"column:course_id;not null;uniqueIndex:uq_student_course" json:"course_id"`
	EnrollTime time.Time `gorm:"column:enroll_time;not null;autoCreateTime" json:"enroll_time"`

	Student *studentModel.StudentModel `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Course  *CourseModel               `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StudentCourseModel) TableName() string { return "student_course_relations" }

// StaffCourseModel is the teaching relation, unique per (staff, course).
type StaffCourseModel struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"id"`
	StaffID  uint   `gorm:"column:staff_id;not null;uniqueIndex:uq_staff_course" json:"staff_id"`
	CourseID uint   `gorm:"column:course_id;not null;uniqueIndex:uq_staff_course" json:"course_id"`
	Role     string `gorm:"column:role;type:varchar(20);not null" json:"role"`

	Staff  *staffModel.StaffModel `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE" json:"-"`
	Course *CourseModel           `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StaffCourseModel) TableName() string { return "staff_course_relations" }
