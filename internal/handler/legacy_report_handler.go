package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
	"github.com/Loggy-dot/Student-Management-system/pkg/response"
)

// LegacyReportHandler serves the students-report and students-report-update tables.
type LegacyReportHandler struct {
	reports *service.LegacyReportService
}

// NewLegacyReportHandler constructs LegacyReportHandler.
func NewLegacyReportHandler(reports *service.LegacyReportService) *LegacyReportHandler {
	return &LegacyReportHandler{reports: reports}
}

// ListReports godoc
// @Summary List report rows
// @Tags Reports
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.ReportRow
// @Router /students-report [get]
func (h *LegacyReportHandler) ListReports(c *gin.Context) {
	rows, pagination, err := h.reports.ListReports(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, pagination)
}

// CreateReport godoc
// @Summary Create report row
// @Description Also provisions the department, the student and a portal login in one transaction
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReportRowRequest true "Report payload"
// @Success 201 {object} dto.ReportRowCreatedResponse
// @Failure 409 {object} response.ErrorBody
// @Router /students-report [post]
func (h *LegacyReportHandler) CreateReport(c *gin.Context) {
	var req dto.ReportRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "report"))
		return
	}
	created, err := h.reports.CreateReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateReport godoc
// @Summary Replace report row
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param payload body dto.ReportRowRequest true "Report payload"
// @Success 200 {object} map[string]int64
// @Router /students-report/{id} [put]
func (h *LegacyReportHandler) UpdateReport(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ReportRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "report"))
		return
	}
	changes, err := h.reports.UpdateReport(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}

// DeleteReport godoc
// @Summary Delete report row
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]int64
// @Router /students-report/{id} [delete]
func (h *LegacyReportHandler) DeleteReport(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.reports.DeleteReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}

// ListUpdates godoc
// @Summary List report update rows
// @Tags Reports
// @Produce json
// @Success 200 {array} models.ReportUpdateRow
// @Router /students-report-update [get]
func (h *LegacyReportHandler) ListUpdates(c *gin.Context) {
	rows, pagination, err := h.reports.ListUpdates(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, rows, pagination)
}

// CreateUpdate godoc
// @Summary Append report update row
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReportUpdateRowRequest true "Update payload"
// @Success 201 {object} models.ReportUpdateRow
// @Router /students-report-update [post]
func (h *LegacyReportHandler) CreateUpdate(c *gin.Context) {
	var req dto.ReportUpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "report update"))
		return
	}
	row, err := h.reports.CreateUpdate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// DeleteUpdate godoc
// @Summary Delete report update row
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Row ID"
// @Success 200 {object} map[string]int64
// @Router /students-report-update/{id} [delete]
func (h *LegacyReportHandler) DeleteUpdate(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	changes, err := h.reports.DeleteUpdate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Changes(c, changes)
}
