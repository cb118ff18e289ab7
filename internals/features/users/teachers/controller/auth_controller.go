// internals/features/users/teachers/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	teacherDTO "unihomework_backend/internals/features/users/teachers/dto"
	staffModel "unihomework_backend/internals/features/users/teachers/model"
	helper "unihomework_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /api/auth/teachers/login
// Only staff whose role is teacher may log in here.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req teacherDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var staff staffModel.StaffModel
	if err := h.DB.Where("staff_no = ? AND role = ?", req.StaffNo, staffModel.StaffRoleTeacher).
		First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "wrong staff number or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to look up teacher")
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "wrong staff number or password")
	}

	token, err := helper.IssueAccessToken(constants.RoleTeacher, staff.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "login successful", fiber.Map{
		"access_token": token,
		"teacher":      teacherDTO.FromStaffModel(staff),
	})
}

// POST /api/auth/teachers/register
// New staff are registered with the teacher role.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req teacherDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.StaffNo = strings.TrimSpace(req.StaffNo)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&staffModel.StaffModel{}).
		Where("staff_no = ?", req.StaffNo).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check staff number")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "staff number already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	staff := staffModel.StaffModel{
		StaffNo:  req.StaffNo,
		Name:     req.Name,
		Role:     staffModel.StaffRoleTeacher,
		Password: string(hashed),
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := h.DB.Create(&staff).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create teacher")
	}

	return helper.JsonCreated(c, "registration successful", fiber.Map{
		"teacher": teacherDTO.FromStaffModel(staff),
	})
}
