// internals/features/users/teachers/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihomework_backend/internals/constants"
	teacherController "unihomework_backend/internals/features/users/teachers/controller"
	"unihomework_backend/internals/middlewares"
	authMw "unihomework_backend/internals/middlewares/auth"
)

// TeacherAuthRoutes mounts the public login/register endpoints.
func TeacherAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &teacherController.AuthController{DB: db}
	g := r.Group("/api/auth/teachers")
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	g.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
}

// TeacherRoutes mounts the authenticated teacher surface.
func TeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &teacherController.TeacherController{DB: db}
	g := r.Group("/api/teachers",
		authMw.AuthMiddleware(),
		authMw.RequireRole(constants.RoleTeacher),
	)
	g.Get("/me", ctl.Me)
	g.Patch("/me", ctl.UpdateMe)
	g.Patch("/me/password", ctl.UpdatePassword)
	g.Get("/me/courses", ctl.ListCourses)
	g.Post("/me/courses", ctl.CreateCourse)
	g.Patch("/me/courses/:course_id", ctl.UpdateCourse)
	g.Get("/me/courses/:course_id/students", ctl.ListCourseStudents)
	g.Get("/me/courses/:course_id/homeworks", ctl.ListHomeworks)
	g.Post("/me/courses/:course_id/homeworks", ctl.CreateHomework)
	g.Put("/me/courses/:course_id/homeworks/:homework_id", ctl.UpdateHomework)
	g.Delete("/me/courses/:course_id/homeworks/:homework_id", ctl.DeleteHomework)
	g.Get("/me/courses/:course_id/homeworks/:homework_id/submissions", ctl.ListSubmissions)
	g.Post("/me/courses/:course_id/homeworks/:homework_id/upload-image", ctl.UploadPostImages)
	g.Post("/me/submissions/:submission_id/grade", ctl.GradeSubmission)
}
