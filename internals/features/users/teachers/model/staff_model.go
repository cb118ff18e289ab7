// internals/features/users/teachers/model/staff_model.go
package model

import (
	"time"
)

// Staff role within the institution.
const (
	StaffRoleTeacher = "teacher"
	StaffRoleTA      = "ta"
)

type StaffModel struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	StaffNo    string    `gorm:"column:staff_no;type:varchar(30);not null;uniqueIndex" json:"staff_no"`
	Name       string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Role       string    `gorm:"column:role;type:varchar(10);not null" json:"role"`
	Password   string    `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Phone      *string   `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	Email      *string   `gorm:"column:email;type:varchar(100)" json:"email,omitempty"`
	CreateTime time.Time `gorm:"column:create_time;not null;autoCreateTime" json:"create_time"`
}

func (StaffModel) TableName() string { return "staffs" }
