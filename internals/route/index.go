// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadRoute "unihomework_backend/internals/features/uploads/route"
	adminRoute "unihomework_backend/internals/features/users/admins/route"
	studentRoute "unihomework_backend/internals/features/users/students/route"
	teacherRoute "unihomework_backend/internals/features/users/teachers/route"
)

var startTime time.Time

// SetupRoutes mounts every route group of the application.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up auth routes...")
	studentRoute.StudentAuthRoutes(app, db)
	teacherRoute.TeacherAuthRoutes(app, db)
	adminRoute.AdminAuthRoutes(app, db)

	log.Println("[INFO] Setting up student routes...")
	studentRoute.StudentRoutes(app, db)

	log.Println("[INFO] Setting up teacher routes...")
	teacherRoute.TeacherRoutes(app, db)

	log.Println("[INFO] Setting up admin routes...")
	adminRoute.AdminRoutes(app, db)

	log.Println("[INFO] Setting up upload routes...")
	uploadRoute.UploadRoutes(app, db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})
}
