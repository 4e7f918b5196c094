package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

const dateLayout = "2006-01-02"

// passwordCost is lowered by tests.
var passwordCost = bcrypt.DefaultCost

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error, payload string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation, fmt.Sprintf("invalid %s payload", payload))
	}

	var required, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			required = append(required, fe.Field())
			continue
		}
		invalid = append(invalid, fe.Field())
	}

	parts := make([]string, 0, 2)
	if len(required) > 0 {
		verb := "is"
		if len(required) > 1 {
			verb = "are"
		}
		parts = append(parts, fmt.Sprintf("%s %s required", joinFields(required), verb))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(invalid, ", "))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation, strings.Join(parts, "; "))
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
}

func badRequest(message string) error {
	return appErrors.Validation(message)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal, message)
}

// conflictError maps a unique violation to 409 with a message naming the clashing field.
func conflictError(err error, fallback string) error {
	constraint := repository.DuplicateConstraint(err)
	message := fallback
	switch {
	case strings.Contains(constraint, "email"):
		message = "Email already exists"
	case strings.Contains(constraint, "employee_id"):
		message = "EmployeeId already exists"
	case strings.Contains(constraint, "code"):
		message = "code already exists"
	}
	return appErrors.Wrap(err, appErrors.ErrConflict, message)
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return &t, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// deriveStudentEmail lowercases the name, turns whitespace runs into dots and appends the student domain.
func deriveStudentEmail(name string) string {
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	return local + "@" + models.StudentEmailDomain
}

func paginationFor(params models.ListParams, total int) *models.Pagination {
	if !params.Paginated() {
		return nil
	}
	return &models.Pagination{Page: params.Page, PageSize: params.PageSize, TotalCount: total}
}
