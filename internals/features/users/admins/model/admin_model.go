// internals/features/users/admins/model/admin_model.go
package model

import (
	"time"
)

type AdminModel struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	Username   string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex" json:"username"`
	Name       string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Password   string    `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Phone      *string   `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	CreateTime time.Time `gorm:"column:create_time;not null;autoCreateTime" json:"create_time"`
}

func (AdminModel) TableName() string { return "admins" }
