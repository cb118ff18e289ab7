// internals/features/users/students/dto/student_dto.go
package dto

import (
	"time"

	studentModel "unihomework_backend/internals/features/users/students/model"
)

type LoginRequest struct {
	StudentNo string `json:"student_no" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	StudentNo string  `json:"student_no" validate:"required,min=1,max=30"`
	Name      string  `json:"name" validate:"required,min=1,max=50"`
	Password  string  `json:"password" validate:"required,min=8"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// StudentPatch lists the mutable profile fields, each optional.
type StudentPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type EnrollRequest struct {
	CourseCode string `json:"course_code" validate:"required"`
}

type SubmitHomeworkRequest struct {
	TextContent string   `json:"text_content"`
	ImageURLs   []string `json:"image_urls"`
}

type StudentResponse struct {
	ID         uint      `json:"id"`
	StudentNo  string    `json:"student_no"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	CreateTime time.Time `json:"create_time"`
}

func FromStudentModel(m studentModel.StudentModel) StudentResponse {
	return StudentResponse{
		ID:         m.ID,
		StudentNo:  m.StudentNo,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		CreateTime: m.CreateTime,
	}
}
