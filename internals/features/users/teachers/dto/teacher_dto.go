// internals/features/users/teachers/dto/teacher_dto.go
package dto

import (
	"encoding/json"
	"time"

	staffModel "unihomework_backend/internals/features/users/teachers/model"
)

type LoginRequest struct {
	StaffNo  string `json:"staff_no" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	StaffNo  string  `json:"staff_no" validate:"required,min=1,max=30"`
	Name     string  `json:"name" validate:"required,min=1,max=50"`
	Password string  `json:"password" validate:"required,min=8"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
}

// TeacherPatch lists the mutable profile fields, each optional.
type TeacherPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type CreateCourseRequest struct {
	CourseCode  string `json:"course_code" validate:"required,min=1,max=20"`
	CourseName  string `json:"course_name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Semester    string `json:"semester" validate:"required,min=1,max=20"`
}

type CreateHomeworkRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=255"`
	Content    string   `json:"content" validate:"required"`
	ImageURLs  []string `json:"image_urls"`
	Type       *string  `json:"type" validate:"omitempty,oneof=short long"`
	Deadline   string   `json:"deadline" validate:"required"`
	CourseHwNo int      `json:"course_hw_no" validate:"required,min=1"`
}

type GradeRequest struct {
	Score          *int            `json:"score" validate:"required,min=0,max=100"`
	AnnotationData json.RawMessage `json:"annotation_data"`
}

type TeacherResponse struct {
	ID         uint      `json:"id"`
	StaffNo    string    `json:"staff_no"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	CreateTime time.Time `json:"create_time"`
}

func FromStaffModel(m staffModel.StaffModel) TeacherResponse {
	return TeacherResponse{
		ID:         m.ID,
		StaffNo:    m.StaffNo,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		CreateTime: m.CreateTime,
	}
}
