package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loggy-dot/Student-Management-system/internal/dto"
	"github.com/Loggy-dot/Student-Management-system/internal/models"
	"github.com/Loggy-dot/Student-Management-system/internal/repository"
	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

type mockTeacherRepo struct {
	rows       map[int64]models.Teacher
	lastFilter models.TeacherFilter
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{rows: map[int64]models.Teacher{}}
}

func (m *mockTeacherRepo) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error) {
	m.lastFilter = filter
	out := make([]models.TeacherDetail, 0, len(m.rows))
	for _, t := range m.rows {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, models.TeacherDetail{Teacher: t})
	}
	return out, len(out), nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	t, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.TeacherDetail{Teacher: t}, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	for _, t := range m.rows {
		if t.EmployeeID == teacher.EmployeeID {
			return &repository.DuplicateError{Constraint: "teachers_employee_id_key"}
		}
		if t.Email == teacher.Email {
			return &repository.DuplicateError{Constraint: "teachers_email_key"}
		}
	}
	teacher.ID = int64(len(m.rows) + 1)
	m.rows[teacher.ID] = *teacher
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) (int64, error) {
	m.rows[teacher.ID] = *teacher
	return 1, nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func sampleTeacher(employeeID, email string) dto.TeacherRequest {
	return dto.TeacherRequest{
		EmployeeID: employeeID,
		FirstName:  "Katherine",
		LastName:   "Johnson",
		Email:      email,
		HireDate:   "2020-08-01",
	}
}

func TestTeacherServiceCreateAndList(t *testing.T) {
	repo := newMockTeacherRepo()
	svc := NewTeacherService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleTeacher("T-001", "kj@school.edu"))
	require.NoError(t, err)
	assert.Equal(t, "Active", created.Status)

	inactive := sampleTeacher("T-002", "dv@school.edu")
	inactive.Status = "Inactive"
	_, err = svc.Create(ctx, inactive)
	require.NoError(t, err)

	active, _, err := svc.List(ctx, models.TeacherFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "Active", repo.lastFilter.Status)

	all, _, err := svc.List(ctx, models.TeacherFilter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Empty(t, repo.lastFilter.Status)
}

func TestTeacherServiceDuplicates(t *testing.T) {
	svc := NewTeacherService(newMockTeacherRepo(), nil, nil)
	ctx := context.Background()
	_, err := svc.Create(ctx, sampleTeacher("T-001", "kj@school.edu"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, sampleTeacher("T-001", "other@school.edu"))
	require.Error(t, err)
	assert.Equal(t, "EmployeeId already exists", appErrors.FromError(err).Message)

	_, err = svc.Create(ctx, sampleTeacher("T-009", "kj@school.edu"))
	require.Error(t, err)
	assert.Equal(t, "Email already exists", appErrors.FromError(err).Message)
}

func TestTeacherServiceUpdateKeepsPictureAndHireDate(t *testing.T) {
	repo := newMockTeacherRepo()
	svc := NewTeacherService(repo, nil, nil)
	ctx := context.Background()
	req := sampleTeacher("T-001", "kj@school.edu")
	req.ProfilePicture = "/uploads/kj.jpg"
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	update := sampleTeacher("T-001", "kj@school.edu")
	update.HireDate = ""
	update.Position = "Head of Mathematics"
	_, err = svc.Update(ctx, created.ID, update)
	require.NoError(t, err)

	stored := repo.rows[created.ID]
	assert.Equal(t, "Head of Mathematics", stored.Position)
	require.NotNil(t, stored.ProfilePicture)
	assert.Equal(t, "/uploads/kj.jpg", *stored.ProfilePicture)
	require.NotNil(t, stored.HireDate)
	assert.Equal(t, time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC), *stored.HireDate)
}

func TestTeacherServiceValidation(t *testing.T) {
	svc := NewTeacherService(newMockTeacherRepo(), nil, nil)

	_, err := svc.Create(context.Background(), dto.TeacherRequest{Email: "x@school.edu"})
	require.Error(t, err)
	assert.Equal(t, "EmployeeId, FirstName and LastName are required", appErrors.FromError(err).Message)

	_, err = svc.Get(context.Background(), 5)
	assert.Equal(t, "Teacher not found", appErrors.FromError(err).Message)
}
