package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

func TestDeriveStudentEmail(t *testing.T) {
	cases := []struct{ name, want string }{
		{"Ada Lovelace", "ada.lovelace@student.edu"},
		{"  Mary   Ann  Evans ", "mary.ann.evans@student.edu"},
		{"PLATO", "plato@student.edu"},
		{"Jean-Luc\tPicard", "jean-luc.picard@student.edu"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveStudentEmail(tc.name), tc.name)
	}
}

func TestValidationErrorMessages(t *testing.T) {
	v := NewValidator()
	type payload struct {
		Name  string `json:"StudentName" validate:"required"`
		Email string `json:"Email" validate:"omitempty,email"`
		Code  string `json:"Code" validate:"required"`
	}

	err := validationError(v.Struct(payload{Email: "bad"}), "student")
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "StudentName and Code are required; invalid Email", appErr.Message)

	err = validationError(errors.New("boom"), "student")
	assert.Equal(t, "invalid student payload", appErrors.FromError(err).Message)
}

func TestConflictErrorMessages(t *testing.T) {
	cases := []struct {
		constraint string
		want       string
	}{
		{"students_email_key", "Email already exists"},
		{"teachers_employee_id_key", "EmployeeId already exists"},
		{"courses_course_code_key", "code already exists"},
		{"students_pkey", "fallback"},
	}
	for _, tc := range cases {
		err := conflictError(fmt.Errorf("insert: %w", &repository.DuplicateError{Constraint: tc.constraint}), "fallback")
		appErr := appErrors.FromError(err)
		assert.Equal(t, 409, appErr.Status)
		assert.Equal(t, tc.want, appErr.Message)
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, got.Day())

	_, err = parseDate("2024-13-01")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestPaginationFor(t *testing.T) {
	assert.Nil(t, paginationFor(models.ListParams{}, 10))
	assert.Equal(t, &models.Pagination{Page: 2, PageSize: 20, TotalCount: 45}, paginationFor(models.ListParams{Page: 2, PageSize: 20}, 45))
}
