// internals/features/users/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	studentController "unihomework_backend/internals/features/users/students/controller"
	"unihomework_backend/internals/middlewares"
	authMw "unihomework_backend/internals/middlewares/auth"
)

// StudentAuthRoutes mounts the public login/register endpoints.
func StudentAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &studentController.AuthController{DB: db}
	g := r.Group("/api/auth/students")
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	g.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
}

// StudentRoutes mounts the authenticated student surface.
func StudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &studentController.StudentController{DB: db}
	g := r.Group("/api/students",
		authMw.AuthMiddleware(),
		authMw.RequireRole(constants.RoleStudent),
	)
	g.Get("/me", ctl.Me)
	g.Patch("/me", ctl.UpdateMe)
	g.Patch("/me/password", ctl.UpdatePassword)
	g.Get("/me/courses", ctl.ListCourses)
	g.Post("/me/courses", ctl.EnrollCourse)
	g.Get("/me/courses/:course_id/homeworks", ctl.ListCourseHomeworks)
	g.Get("/me/homeworks/:homework_id/submission", ctl.GetSubmission)
	g.Post("/me/homeworks/:homework_id/submission", ctl.SubmitHomework)
	g.Post("/me/homeworks/:homework_id/upload-image", ctl.UploadSubmissionImages)
}
