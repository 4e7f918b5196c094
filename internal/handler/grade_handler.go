package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
	"github.com/Loggy-dot/Student-Management-system/pkg/response"
)

// GradeHandler records assessment scores.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// Upsert godoc
// @Summary Record a grade
// @Description Creates or replaces the score of a student on an assessment
// @Tags Grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.GradeRequest true "Grade payload"
// @Success 201 {object} models.Grade
// @Failure 400 {object} response.ErrorBody
// @Router /grades [post]
func (h *GradeHandler) Upsert(c *gin.Context) {
	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "grade"))
		return
	}
	grade, err := h.grades.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}
