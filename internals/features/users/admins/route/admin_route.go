// internals/features/users/admins/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	adminController "unihomework_backend/internals/features/users/admins/controller"
	"unihomework_backend/internals/middlewares"
	authMw "unihomework_backend/internals/middlewares/auth"
)

// AdminAuthRoutes mounts the public admin login endpoint. Registering a new
// admin requires an existing admin token, so it lives on the guarded group.
func AdminAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &adminController.AuthController{DB: db}
	g := r.Group("/api/auth/admins")
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// AdminRoutes mounts the authenticated admin surface.
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	authCtl := &adminController.AuthController{DB: db}
	ctl := &adminController.AdminController{DB: db}
	g := r.Group("/api/admins",
		authMw.AuthMiddleware(),
		authMw.RequireRole(constants.RoleAdmin),
	)
	g.Post("/register", authCtl.Register)
	g.Get("/me", ctl.Me)
	g.Patch("/me", ctl.UpdateMe)
	g.Patch("/me/password", ctl.UpdatePassword)
	g.Get("/teachers", ctl.ListTeachers)
	g.Get("/students", ctl.ListStudents)
	g.Get("/courses", ctl.ListCourses)
	g.Post("/courses/:course_id/approve", ctl.ApproveCourse)
	g.Delete("/users/:user_type/:user_id", ctl.DeleteUser)
}
