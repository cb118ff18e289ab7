// internals/features/users/admins/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	adminDTO "unihomework_backend/internals/features/users/admins/dto"
	adminModel "unihomework_backend/internals/features/users/admins/model"
	helper "unihomework_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /api/auth/admins/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req adminDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var admin adminModel.AdminModel
	if err := h.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "wrong username or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to look up admin")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "wrong username or password")
	}

	token, err := helper.IssueAccessToken(constants.RoleAdmin, admin.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "login successful", fiber.Map{
		"access_token": token,
		"admin":        adminDTO.FromAdminModel(admin),
	})
}

// POST /api/admins/register
// Only an authenticated admin may create another admin account.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req adminDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&adminModel.AdminModel{}).
		Where("username = ?", req.Username).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check username")
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "username already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	admin := adminModel.AdminModel{
		Username: req.Username,
		Name:     req.Name,
		Password: string(hashed),
		Phone:    req.Phone,
	}
	if err := h.DB.Create(&admin).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create admin")
	}

	return helper.JsonCreated(c, "admin created", fiber.Map{
		"admin": adminDTO.FromAdminModel(admin),
	})
}
