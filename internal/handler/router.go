package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/middleware"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
)

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Students      *StudentHandler
	Departments   *DepartmentHandler
	Courses       *CourseHandler
	Teachers      *TeacherHandler
	Enrollments   *EnrollmentHandler
	Grades        *GradeHandler
	Reports       *LegacyReportHandler
	Credentials   *CredentialHandler
	Exports       *ExportHandler
	Notifications *NotificationHandler
}

// RegisterRoutes mounts the API under prefix. Reads of public catalog data stay anonymous;
// every write needs a staff token.
func RegisterRoutes(router *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	prefix = "/" + strings.Trim(prefix, "/")

	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	router.GET("/metrics", h.Health.Prometheus)

	api := router.Group(prefix)
	api.GET("/health", h.Health.Health)

	authn := middleware.JWT(auth)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	admin := middleware.RequireRoles(models.RoleAdmin)
	self := middleware.SelfOrRoles(models.RoleAdmin, models.RoleTeacher)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/student-login", h.Auth.StudentLogin)
	authGroup.POST("/logout", authn, h.Auth.Logout)
	authGroup.GET("/me", authn, h.Auth.Me)
	authGroup.POST("/change-password", authn, h.Auth.ChangePassword)
	api.POST("/student-login", h.Auth.StudentLogin)

	// public reads
	api.GET("/students", h.Students.List)
	api.GET("/students-with-departments", h.Students.WithDepartments)
	api.GET("/students/:id", h.Students.Get)
	api.GET("/student-grades/:id", h.Students.Grades)
	api.GET("/student-registrations/:id", h.Students.Registrations)
	api.GET("/students-report", h.Reports.ListReports)
	api.GET("/students-report-update", h.Reports.ListUpdates)
	api.GET("/departments", h.Departments.List)
	api.GET("/departments/:id", h.Departments.Get)
	api.GET("/courses", h.Courses.List)
	api.GET("/courses/:id", h.Courses.Get)
	api.GET("/exports/:token", h.Exports.Download)

	protected := api.Group("", authn)
	protected.GET("/students/enhanced", h.Students.List)
	protected.GET("/students/:id/grades", self, h.Students.Grades)
	protected.GET("/students/:id/assessment-grades", self, h.Students.AssessmentGrades)
	protected.GET("/courses/:id/assessments", h.Courses.Assessments)
	protected.GET("/teachers", h.Teachers.List)
	protected.GET("/teachers/:id", h.Teachers.Get)
	protected.GET("/enrollments", h.Enrollments.List)
	protected.GET("/registrations", h.Enrollments.List)

	staffGroup := protected.Group("", staff)
	staffGroup.POST("/students", h.Students.Create)
	staffGroup.POST("/students/enhanced", h.Students.Create)
	staffGroup.PUT("/students/:id", h.Students.Update)
	staffGroup.DELETE("/students/:id", h.Students.Delete)
	staffGroup.POST("/students-report", h.Reports.CreateReport)
	staffGroup.PUT("/students-report/:id", h.Reports.UpdateReport)
	staffGroup.DELETE("/students-report/:id", h.Reports.DeleteReport)
	staffGroup.POST("/students-report-update", h.Reports.CreateUpdate)
	staffGroup.DELETE("/students-report-update/:id", h.Reports.DeleteUpdate)
	staffGroup.POST("/departments", h.Departments.Create)
	staffGroup.PUT("/departments/:id", h.Departments.Update)
	staffGroup.DELETE("/departments/:id", h.Departments.Delete)
	staffGroup.POST("/courses", h.Courses.Create)
	staffGroup.PUT("/courses/:id", h.Courses.Update)
	staffGroup.DELETE("/courses/:id", h.Courses.Delete)
	staffGroup.POST("/assessments", h.Courses.CreateAssessment)
	staffGroup.POST("/enrollments", h.Enrollments.Create)
	staffGroup.POST("/registrations", h.Enrollments.Create)
	staffGroup.DELETE("/enrollments/:id", h.Enrollments.Delete)
	staffGroup.POST("/grades", h.Grades.Upsert)
	staffGroup.POST("/exports", h.Exports.Generate)

	adminGroup := protected.Group("", admin)
	adminGroup.POST("/teachers", h.Teachers.Create)
	adminGroup.PUT("/teachers/:id", h.Teachers.Update)
	adminGroup.DELETE("/teachers/:id", h.Teachers.Delete)
	adminGroup.POST("/student-credentials", h.Credentials.Create)
	adminGroup.POST("/notifications/broadcast", h.Notifications.Broadcast)
}
