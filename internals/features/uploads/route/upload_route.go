// internals/features/uploads/route/upload_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadController "unihomework_backend/internals/features/uploads/controller"
	authMw "unihomework_backend/internals/middlewares/auth"
)

// UploadRoutes mounts the authenticated file download surface. Writes go
// through the role-specific upload endpoints, reads all come through here.
func UploadRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &uploadController.FileController{DB: db}
	r.Get("/uploads/*", authMw.AuthMiddleware(), ctl.Serve)
}
