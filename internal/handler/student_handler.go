package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
	"github.com/Loggy-dot/Student-Management-system/pkg/response"
)

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students    *service.StudentService
	grades      *service.GradeService
	enrollments *service.EnrollmentService
	uploads     *Uploader
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, grades *service.GradeService, enrollments *service.EnrollmentService, uploads *Uploader) *StudentHandler {
	return &StudentHandler{students: students, grades: grades, enrollments: enrollments, uploads: uploads}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name, email or id"
// @Param departmentId query int false "Filter by department"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.StudentDetail
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		DepartmentID: optionalInt64Query(c, "departmentId"),
		Status:       strings.TrimSpace(c.Query("status")),
		ListParams:   listParams(c),
	}

	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students, pagination)
}

// WithDepartments godoc
// @Summary Student roster joined with departments
// @Tags Students
// @Produce json
// @Success 200 {array} models.StudentWithDepartment
// @Router /students-with-departments [get]
func (h *StudentHandler) WithDepartments(c *gin.Context) {
	rows, err := h.students.ListWithDepartments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, nil)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.StudentDetail
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Description Creates the student and a portal login with the default password
// @Tags Students
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body dto.StudentRequest true "Student payload"
// @Success 201 {object} dto.StudentCreatedResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		h.uploads.Discard(req.ProfilePicture)
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Replace student
// @Tags Students
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param payload body dto.StudentRequest true "Student payload"
// @Success 200 {object} map[string]int64
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	req, err := h.bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		h.uploads.Discard(req.ProfilePicture)
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]int64
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}

// Grades godoc
// @Summary Merged grade view
// @Description Grades from the main report, the update report and registrations
// @Tags Grades
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.StudentGrades
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id}/grades [get]
func (h *StudentHandler) Grades(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	grades, err := h.grades.StudentGrades(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// AssessmentGrades godoc
// @Summary Assessment scores for a student
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {array} models.AssessmentGrade
// @Router /students/{id}/assessment-grades [get]
func (h *StudentHandler) AssessmentGrades(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	grades, err := h.grades.AssessmentGrades(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, grades, nil)
}

// Registrations godoc
// @Summary Courses a student is registered in
// @Tags Enrollments
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {array} models.Registration
// @Router /student-registrations/{id} [get]
func (h *StudentHandler) Registrations(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.enrollments.Registrations(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, nil)
}

func (h *StudentHandler) bind(c *gin.Context) (dto.StudentRequest, error) {
	var req dto.StudentRequest
	if err := c.ShouldBind(&req); err != nil {
		return req, bindError(err, "student")
	}
	picture, err := h.uploads.ProfilePicture(c)
	if err != nil {
		return req, err
	}
	req.ProfilePicture = picture
	return req, nil
}
