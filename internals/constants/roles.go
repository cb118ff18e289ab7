package constants

// Identity roles carried in the JWT subject ("role:id").
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Staff roles inside a course.
const (
	StaffRoleTeacher = "teacher"
	StaffRoleTA      = "ta"
)

// Teaching-relation role label stored on StaffCourseModel.
const CourseRoleLead = "lead"

// Upload resource types under course/{id}/hw/{no}/...
const (
	ResourcePost   = "post"
	ResourceSubmit = "submit"
)

// Allowed extensions for uploaded images.
var AllowedImageExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}
