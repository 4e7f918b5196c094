package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Loggy-dot/Student-Management-system/internal/middleware"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims
}

// pathID parses a positive integer route parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Validation("invalid "+name)
	}
	return id, nil
}

// listParams reads page and limit. Without page every row is returned.
func listParams(c *gin.Context) models.ListParams {
	var params models.ListParams
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		params.PageSize = size
	}
	return params
}

func optionalInt64Query(c *gin.Context, name string) *int64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func bindError(err error, payload string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation, "invalid "+payload+" payload")
}
