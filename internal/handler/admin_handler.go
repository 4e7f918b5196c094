package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/service"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
	"github.com/Loggy-dot/Student-Management-system/pkg/response"
)

// CredentialHandler lets admins provision portal logins.
type CredentialHandler struct {
	credentials *service.CredentialService
}

// NewCredentialHandler constructs CredentialHandler.
func NewCredentialHandler(credentials *service.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentials: credentials}
}

// Create godoc
// @Summary Create student credentials
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CredentialRequest true "Credential payload"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} response.ErrorBody
// @Router /student-credentials [post]
func (h *CredentialHandler) Create(c *gin.Context) {
	var req dto.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "credential"))
		return
	}
	if err := h.credentials.Create(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "message": "Student credentials created"})
}

// ExportHandler renders tables and serves signed downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Generate godoc
// @Summary Export a table
// @Tags Exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExportRequest true "Export payload"
// @Success 201 {object} models.ExportResult
// @Router /exports [post]
func (h *ExportHandler) Generate(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "export"))
		return
	}
	result, err := h.exports.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an export
// @Description The token comes from a signed link returned by POST /exports
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 401 {object} response.ErrorBody
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	download, err := h.exports.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal, "failed to read export"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), download.ContentType, download.File, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", download.Filename),
	})
}

// NotificationHandler sends announcements to students.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Broadcast godoc
// @Summary Email many students
// @Description Without recipients every active portal account is addressed
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BroadcastRequest true "Broadcast payload"
// @Success 200 {object} dto.BroadcastResult
// @Router /notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "broadcast"))
		return
	}
	result, err := h.notifications.Broadcast(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
