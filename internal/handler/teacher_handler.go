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

// TeacherHandler manages teacher endpoints.
type TeacherHandler struct {
	teachers *service.TeacherService
	uploads  *Uploader
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService, uploads *Uploader) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, uploads: uploads}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param status query string false "Active (default), Inactive or all"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.TeacherDetail
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	filter := models.TeacherFilter{
		Status:     strings.TrimSpace(c.Query("status")),
		ListParams: listParams(c),
	}
	rows, pagination, err := h.teachers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, pagination)
}

// Get godoc
// @Summary Get teacher
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.TeacherDetail
// @Failure 404 {object} response.ErrorBody
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Create godoc
// @Summary Create teacher
// @Tags Teachers
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body dto.TeacherRequest true "Teacher payload"
// @Success 201 {object} models.Teacher
// @Failure 409 {object} response.ErrorBody
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	teacher, err := h.teachers.Create(c.Request.Context(), req)
	if err != nil {
		h.uploads.Discard(req.ProfilePicture)
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Update godoc
// @Summary Replace teacher
// @Tags Teachers
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param payload body dto.TeacherRequest true "Teacher payload"
// @Success 200 {object} map[string]int64
// @Router /teachers/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
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
	changes, err := h.teachers.Update(c.Request.Context(), id, req)
	if err != nil {
		h.uploads.Discard(req.ProfilePicture)
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}

// Delete godoc
// @Summary Delete teacher
// @Tags Teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} map[string]int64
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.teachers.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}

func (h *TeacherHandler) bind(c *gin.Context) (dto.TeacherRequest, error) {
	var req dto.TeacherRequest
	if err := c.ShouldBind(&req); err != nil {
		return req, bindError(err, "teacher")
	}
	picture, err := h.uploads.ProfilePicture(c)
	if err != nil {
		return req, err
	}
	req.ProfilePicture = picture
	return req, nil
}
