// internals/features/users/students/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	studentDTO "unihomework_backend/internals/features/users/students/dto"
	studentModel "unihomework_backend/internals/features/users/students/model"
	helper "unihomework_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /api/auth/students/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req studentDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var student studentModel.StudentModel
	if err := h.DB.Where("student_no = ?", req.StudentNo).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "wrong student number or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to look up student")
	}
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "wrong student number or password")
	}

	token, err := helper.IssueAccessToken(constants.RoleStudent, student.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "login successful", fiber.Map{
		"access_token": token,
		"student":      studentDTO.FromStudentModel(student),
	})
}

// POST /api/auth/students/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req studentDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.StudentNo = strings.TrimSpace(req.StudentNo)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_no = ?", req.StudentNo).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check student number")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "student number already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	student := studentModel.StudentModel{
		StudentNo: req.StudentNo,
		Name:      req.Name,
		Password:  string(hashed),
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.DB.Create(&student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create student")
	}

	return helper.JsonCreated(c, "registration successful", fiber.Map{
		"student": studentDTO.FromStudentModel(student),
	})
}
