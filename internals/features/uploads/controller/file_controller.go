// internals/features/uploads/controller/file_controller.go
package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihomework_backend/internals/configs"
	uploadService "unihomework_backend/internals/features/uploads/service"
	helper "unihomework_backend/internals/helpers"
	authMw "unihomework_backend/internals/middlewares/auth"
)

type FileController struct {
	DB *gorm.DB
}

// GET /uploads/*
// Serves a stored file after the path-scoped access check. The wildcard is
// the relative storage path, e.g. course/3/hw/1/post/<uuid>.png.
func (h *FileController) Serve(c *fiber.Ctx) error {
	role, _ := c.Locals(helper.LocRole).(string)
	userID, err := authMw.UserID(c)
	if err != nil {
		return err
	}

	relPath := strings.Trim(c.Params("*"), "/")
	if relPath == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, string(uploadService.ReasonInvalidPathFormat))
	}

	if err := uploadService.AuthorizeFileAccess(h.DB, role, userID, relPath); err != nil {
		var denied *uploadService.DeniedError
		if errors.As(err, &denied) {
			return helper.JsonError(c, denied.Status, string(denied.Reason))
		}
		return err
	}

	// Resolve against the upload root and refuse anything escaping it.
	root, err := filepath.Abs(configs.UploadDir)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve upload dir")
	}
	full := filepath.Join(root, filepath.FromSlash(relPath))
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return helper.JsonError(c, fiber.StatusBadRequest, string(uploadService.ReasonInvalidPathFormat))
	}

	if st, err := os.Stat(full); err != nil || st.IsDir() {
		return fiber.NewError(fiber.StatusNotFound, "file not found")
	}
	return c.SendFile(full)
}
