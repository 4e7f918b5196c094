package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSON sends a success response with the payload as the body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// List sends a collection and exposes pagination metadata through headers.
func List(c *gin.Context, data interface{}, pagination *models.Pagination) {
	if pagination != nil {
		c.Header("X-Total-Count", strconv.Itoa(pagination.TotalCount))
		c.Header("X-Page", strconv.Itoa(pagination.Page))
		c.Header("X-Page-Size", strconv.Itoa(pagination.PageSize))
	}
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Changes reports the number of rows touched by an update or delete.
func Changes(c *gin.Context, n int64) {
	JSON(c, http.StatusOK, gin.H{"changes": n})
}

// Error renders err as {"error","code"}. Causes of 5xx responses are attached to the
// context so the request logger records them; clients only see the generic message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Internal() {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message, Code: appErr.Code})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
