// internals/features/users/students/model/student_model.go
package model

import (
	"time"
)

type StudentModel struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	StudentNo  string    `gorm:"column:student_no;type:varchar(30);not null;uniqueIndex" json:"student_no"`
	Name       string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Password   string    `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Phone      *string   `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	Email      *string   `gorm:"column:email;type:varchar(100)" json:"email,omitempty"`
	CreateTime time.Time `gorm:"column:create_time;not null;autoCreateTime" json:"create_time"`
}

func (StudentModel) TableName() string { return "students" }
