// internals/features/users/admins/dto/admin_dto.go
package dto

import (
	"time"

	adminModel "unihomework_backend/internals/features/users/admins/model"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Name     string  `json:"name" validate:"required,min=1,max=50"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
}

type AdminPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ApproveCourseRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

type AdminResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Phone      *string   `json:"phone,omitempty"`
	CreateTime time.Time `json:"create_time"`
}

func FromAdminModel(m adminModel.AdminModel) AdminResponse {
	return AdminResponse{
		ID:         m.ID,
		Username:   m.Username,
		Name:       m.Name,
		Phone:      m.Phone,
		CreateTime: m.CreateTime,
	}
}
